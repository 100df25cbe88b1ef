package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

type fakeRepo struct {
	content    []domain.Content
	tracks     []domain.Track
	contentErr error
	tracksErr  error
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]domain.Content, error) {
	return f.content, f.contentErr
}

func (f *fakeRepo) ListMusic(ctx context.Context) ([]domain.Track, error) {
	return f.tracks, f.tracksErr
}

func TestLoadCachesSnapshot(t *testing.T) {
	repo := &fakeRepo{
		content: []domain.Content{
			&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "Moana"}},
		},
		tracks: []domain.Track{{ID: "t1", Title: "Midnight City"}},
	}

	svc := NewService(repo)
	assert.False(t, svc.Loaded())

	require.NoError(t, svc.Load(context.Background()))
	assert.True(t, svc.Loaded())
	assert.Len(t, svc.Content(), 1)
	assert.Len(t, svc.Tracks(), 1)

	item, ok := svc.ByID("m1")
	require.True(t, ok)
	assert.Equal(t, "Moana", item.Info().Title)

	_, ok = svc.ByID("nope")
	assert.False(t, ok)
}

func TestLoadDuplicateIDsLastWins(t *testing.T) {
	repo := &fakeRepo{
		content: []domain.Content{
			&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "old"}},
			&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m2", Title: "other"}},
			&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "new"}},
		},
	}

	svc := NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	content := svc.Content()
	require.Len(t, content, 2)
	// The later entry replaces the earlier one in place
	assert.Equal(t, "m1", content[0].Info().ID)
	assert.Equal(t, "new", content[0].Info().Title)
	assert.Equal(t, "m2", content[1].Info().ID)

	item, ok := svc.ByID("m1")
	require.True(t, ok)
	assert.Equal(t, "new", item.Info().Title)
}

func TestLoadErrorKeepsPreviousSnapshot(t *testing.T) {
	repo := &fakeRepo{
		content: []domain.Content{
			&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "Moana"}},
		},
	}

	svc := NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	repo.tracksErr = errors.New("service unavailable")
	assert.Error(t, svc.Load(context.Background()))

	// The earlier snapshot is still served
	assert.True(t, svc.Loaded())
	assert.Len(t, svc.Content(), 1)
}
