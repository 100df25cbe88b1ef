package domain

// Track is a single music track from the catalog service
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Album           string `json:"album,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	AudioURL        string `json:"audioUrl"`
	CoverImage      string `json:"coverImage,omitempty"`
	Genre           string `json:"genre,omitempty"`
	Year            int    `json:"year,omitempty"`
}
