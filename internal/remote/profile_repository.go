package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

var (
	ErrProfileNameRequired = errors.New("profile name is required")
	ErrProfileLimitReached = fmt.Errorf("an account can have at most %d profiles", domain.MaxProfiles)
)

// ProfileRepository manages viewing profiles on the service
type ProfileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) domain.ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	query := `
        query {
            profiles {
                id
                name
                avatarIndex
                isMain
            }
        }
    `

	var response struct {
		Profiles []struct {
			ID          string
			Name        string
			AvatarIndex int  `json:"avatarIndex"`
			IsMain      bool `json:"isMain"`
		}
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(response.Profiles))
	for _, p := range response.Profiles {
		profiles = append(profiles, &domain.Profile{
			ID:          p.ID,
			Name:        p.Name,
			AvatarIndex: p.AvatarIndex,
			IsMain:      p.IsMain,
		})
	}

	log.Debug("Fetched profiles", "count", len(profiles))
	return profiles, nil
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, name string, avatarIndex int) (*domain.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProfileNameRequired
	}

	// The service enforces the limit too, but checking here gives the user an
	// immediate answer instead of a round trip
	existing, err := r.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) >= domain.MaxProfiles {
		return nil, ErrProfileLimitReached
	}

	mutation := `
        mutation ($name: String!, $avatarIndex: Int!) {
            createProfile(name: $name, avatarIndex: $avatarIndex) {
                id
                name
                avatarIndex
                isMain
            }
        }
    `

	var response struct {
		CreateProfile struct {
			ID          string
			Name        string
			AvatarIndex int  `json:"avatarIndex"`
			IsMain      bool `json:"isMain"`
		}
	}

	variables := map[string]interface{}{
		"name":        name,
		"avatarIndex": avatarIndex,
	}

	if err := r.client.Query(ctx, mutation, variables, &response); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	log.Info("Created profile", "id", response.CreateProfile.ID, "name", response.CreateProfile.Name)
	return &domain.Profile{
		ID:          response.CreateProfile.ID,
		Name:        response.CreateProfile.Name,
		AvatarIndex: response.CreateProfile.AvatarIndex,
		IsMain:      response.CreateProfile.IsMain,
	}, nil
}

func (r *ProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	mutation := `
        mutation ($id: ID!) {
            deleteProfile(id: $id)
        }
    `

	var response struct {
		DeleteProfile bool
	}

	if err := r.client.Query(ctx, mutation, map[string]interface{}{"id": id}, &response); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	log.Info("Deleted profile", "id", id)
	return nil
}
