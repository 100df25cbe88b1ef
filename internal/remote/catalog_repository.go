package remote

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// CatalogRepository fetches the content and music catalogs from the service
type CatalogRepository struct {
	client *Client
}

func NewCatalogRepository(client *Client) domain.CatalogRepository {
	return &CatalogRepository{client: client}
}

func (r *CatalogRepository) ListAll(ctx context.Context) ([]domain.Content, error) {
	query := `
        query {
            catalog {
                movies {
                    id
                    title
                    description
                    poster
                    backdrop
                    year
                    rating
                    duration
                    genres
                    videoUrl
                }
                series {
                    id
                    title
                    description
                    poster
                    backdrop
                    year
                    rating
                    genres
                    seasonCount
                    episodes {
                        id
                        title
                        description
                        thumbnail
                        duration
                        episodeNumber
                        seasonNumber
                        videoUrl
                    }
                }
            }
        }
    `

	var response struct {
		Catalog struct {
			Movies []struct {
				ID          string
				Title       string
				Description string
				Poster      string
				Backdrop    string
				Year        int
				Rating      string
				Duration    string
				Genres      []string
				VideoURL    string `json:"videoUrl"`
			}
			Series []struct {
				ID          string
				Title       string
				Description string
				Poster      string
				Backdrop    string
				Year        int
				Rating      string
				Genres      []string
				SeasonCount int `json:"seasonCount"`
				Episodes    []struct {
					ID            string
					Title         string
					Description   string
					Thumbnail     string
					Duration      string
					EpisodeNumber int    `json:"episodeNumber"`
					SeasonNumber  int    `json:"seasonNumber"`
					VideoURL      string `json:"videoUrl"`
				}
			}
		}
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	var content []domain.Content

	for _, m := range response.Catalog.Movies {
		content = append(content, &domain.Movie{
			ContentInfo: domain.ContentInfo{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				Poster:      m.Poster,
				Backdrop:    m.Backdrop,
				Year:        m.Year,
				Rating:      m.Rating,
				Genres:      m.Genres,
			},
			Duration: m.Duration,
			VideoURL: m.VideoURL,
		})
	}

	for _, s := range response.Catalog.Series {
		episodes := make([]domain.Episode, 0, len(s.Episodes))
		for _, ep := range s.Episodes {
			episodes = append(episodes, domain.Episode{
				ID:            ep.ID,
				Title:         ep.Title,
				Description:   ep.Description,
				Thumbnail:     ep.Thumbnail,
				Duration:      ep.Duration,
				EpisodeNumber: ep.EpisodeNumber,
				SeasonNumber:  ep.SeasonNumber,
				VideoURL:      ep.VideoURL,
			})
		}
		content = append(content, &domain.Series{
			ContentInfo: domain.ContentInfo{
				ID:          s.ID,
				Title:       s.Title,
				Description: s.Description,
				Poster:      s.Poster,
				Backdrop:    s.Backdrop,
				Year:        s.Year,
				Rating:      s.Rating,
				Genres:      s.Genres,
			},
			SeasonCount: s.SeasonCount,
			Episodes:    episodes,
		})
	}

	log.Info("Fetched content catalog", "count", len(content))
	return content, nil
}

func (r *CatalogRepository) ListMusic(ctx context.Context) ([]domain.Track, error) {
	query := `
        query {
            musicCatalog {
                tracks {
                    id
                    title
                    artist
                    album
                    durationSeconds
                    audioUrl
                    coverImage
                    genre
                    year
                }
            }
        }
    `

	var response struct {
		MusicCatalog struct {
			Tracks []struct {
				ID              string
				Title           string
				Artist          string
				Album           string
				DurationSeconds int    `json:"durationSeconds"`
				AudioURL        string `json:"audioUrl"`
				CoverImage      string `json:"coverImage"`
				Genre           string
				Year            int
			}
		}
	}

	if err := r.client.Query(ctx, query, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch music catalog: %w", err)
	}

	tracks := make([]domain.Track, 0, len(response.MusicCatalog.Tracks))
	for _, t := range response.MusicCatalog.Tracks {
		tracks = append(tracks, domain.Track{
			ID:              t.ID,
			Title:           t.Title,
			Artist:          t.Artist,
			Album:           t.Album,
			DurationSeconds: t.DurationSeconds,
			AudioURL:        t.AudioURL,
			CoverImage:      t.CoverImage,
			Genre:           t.Genre,
			Year:            t.Year,
		})
	}

	log.Info("Fetched music catalog", "count", len(tracks))
	return tracks, nil
}
