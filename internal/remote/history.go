package remote

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// HistoryRepository records watch history on the service.  Callers treat
// upserts as fire and forget; a failed upsert is logged and never interrupts
// playback.
type HistoryRepository struct {
	client *Client
}

func NewHistoryRepository(client *Client) domain.HistoryRepository {
	return &HistoryRepository{client: client}
}

func (r *HistoryRepository) UpsertWatch(ctx context.Context, entry domain.WatchEntry) error {
	mutation := `
        mutation ($profileId: ID!, $contentId: ID!, $contentType: String!, $episodeId: ID, $durationSeconds: Float!, $watchedAt: String!) {
            upsertWatch(
                profileId: $profileId,
                contentId: $contentId,
                contentType: $contentType,
                episodeId: $episodeId,
                durationSeconds: $durationSeconds,
                watchedAt: $watchedAt
            ) {
                id
            }
        }
    `

	variables := map[string]interface{}{
		"profileId":       entry.ProfileID,
		"contentId":       entry.ContentID,
		"contentType":     entry.ContentType,
		"durationSeconds": entry.DurationSeconds,
		"watchedAt":       entry.WatchedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if entry.EpisodeID != "" {
		variables["episodeId"] = entry.EpisodeID
	}

	var response struct {
		UpsertWatch struct {
			ID string
		}
	}

	if err := r.client.Query(ctx, mutation, variables, &response); err != nil {
		log.Warn("Failed to record watch history", "error", err, "content_id", entry.ContentID)
		return fmt.Errorf("failed to record watch history: %w", err)
	}

	log.Debug("Recorded watch history", "content_id", entry.ContentID, "entry_id", response.UpsertWatch.ID)
	return nil
}
