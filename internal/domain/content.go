package domain

// ContentKind discriminates the members of the Content union
type ContentKind string

const (
	KindMovie  ContentKind = "movie"
	KindSeries ContentKind = "series"
)

// ContentInfo contains the descriptive fields shared by every catalog entry
type ContentInfo struct {
	// ID is assigned by the catalog service.  It is expected to be unique within a
	// catalog snapshot but the model does not enforce it; see catalog.Service for
	// how duplicates are resolved.
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Poster      string   `json:"poster"`
	Backdrop    string   `json:"backdrop"`
	Year        int      `json:"year"`
	Rating      string   `json:"rating"`
	Genres      []string `json:"genres"`
}

// Content is the closed movie/series union.  Consumers must type switch on the
// concrete type (*Movie or *Series) rather than inspecting URLs or other fields
// to guess what they are holding.
type Content interface {
	Kind() ContentKind
	Info() ContentInfo

	// isContent keeps the union closed to this package
	isContent()
}

// Movie is a single playable feature
type Movie struct {
	ContentInfo
	Duration string `json:"duration"` // Display runtime, e.g. "1h 47m"
	VideoURL string `json:"videoUrl"`
}

func (m *Movie) Kind() ContentKind { return KindMovie }
func (m *Movie) Info() ContentInfo { return m.ContentInfo }
func (m *Movie) isContent()        {}

// Episode belongs to exactly one Series.  Storage order carries no meaning;
// display order is SeasonNumber then EpisodeNumber.
type Episode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Thumbnail     string `json:"thumbnail"`
	Duration      string `json:"duration"`
	EpisodeNumber int    `json:"episodeNumber"`
	SeasonNumber  int    `json:"seasonNumber"`
	VideoURL      string `json:"videoUrl"`
}

// Series is a multi-episode show
type Series struct {
	ContentInfo
	SeasonCount int       `json:"seasons"`
	Episodes    []Episode `json:"episodes"`
}

func (s *Series) Kind() ContentKind { return KindSeries }
func (s *Series) Info() ContentInfo { return s.ContentInfo }
func (s *Series) isContent()        {}
