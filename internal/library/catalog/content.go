package catalog

import "slices"

// MediaType tags a listing entry with the kind of entity it came from.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// MediaContent is a read-only projection of a Movie or Series used by mixed
// listings (featured view, browse results).
type MediaContent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseYear int       `json:"releaseYear"`
	PosterURL   string    `json:"posterUrl"`
	Genre       []string  `json:"genre"`
	Type        MediaType `json:"type"`
	Featured    bool      `json:"featured"`
}

// Entry is implemented by Movie and Series.
type Entry interface {
	Movie | Series
	Content() MediaContent
}

// Clone returns a deep copy of the entry.
func (c MediaContent) Clone() MediaContent {
	c.Genre = cloneGenre(c.Genre)
	return c
}

func (c MediaContent) equal(other MediaContent) bool {
	return c.ID == other.ID &&
		c.Type == other.Type &&
		c.Title == other.Title &&
		c.Description == other.Description &&
		c.ReleaseYear == other.ReleaseYear &&
		c.PosterURL == other.PosterURL &&
		c.Featured == other.Featured &&
		slices.Equal(c.Genre, other.Genre)
}
