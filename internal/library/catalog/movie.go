package catalog

import "slices"

// Movie represents a movie in the catalog.
type Movie struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	ReleaseYear int      `json:"releaseYear" yaml:"releaseYear"`
	Duration    int      `json:"duration" yaml:"duration" validate:"gt=0"` // minutes
	PosterURL   string   `json:"posterUrl" yaml:"posterUrl"`
	VideoURL    string   `json:"videoUrl" yaml:"videoUrl"`
	Genre       []string `json:"genre" yaml:"genre"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// CreateMovieInput contains fields for creating a movie.
type CreateMovieInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseYear int      `json:"releaseYear"`
	Duration    int      `json:"duration"`
	PosterURL   string   `json:"posterUrl"`
	VideoURL    string   `json:"videoUrl"`
	Genre       []string `json:"genre"`
	Featured    bool     `json:"featured"`
}

// UpdateMovieInput contains fields for updating a movie.
// Nil fields leave the stored value unchanged.
type UpdateMovieInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ReleaseYear *int      `json:"releaseYear,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

func (in CreateMovieInput) toMovie(id string) Movie {
	return Movie{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ReleaseYear: in.ReleaseYear,
		Duration:    in.Duration,
		PosterURL:   in.PosterURL,
		VideoURL:    in.VideoURL,
		Genre:       cloneGenre(in.Genre),
		Featured:    in.Featured,
	}
}

// applyTo merges the patch onto current and returns the result.
func (in UpdateMovieInput) applyTo(current Movie) Movie {
	m := current.Clone()
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.ReleaseYear != nil {
		m.ReleaseYear = *in.ReleaseYear
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.PosterURL != nil {
		m.PosterURL = *in.PosterURL
	}
	if in.VideoURL != nil {
		m.VideoURL = *in.VideoURL
	}
	if in.Genre != nil {
		m.Genre = cloneGenre(*in.Genre)
	}
	if in.Featured != nil {
		m.Featured = *in.Featured
	}
	return m
}

// Clone returns a deep copy of the movie.
func (m Movie) Clone() Movie {
	m.Genre = cloneGenre(m.Genre)
	return m
}

// Content projects the movie into a listing entry.
// The returned Genre shares storage with the movie.
func (m Movie) Content() MediaContent {
	return MediaContent{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		PosterURL:   m.PosterURL,
		Genre:       m.Genre,
		Type:        MediaTypeMovie,
		Featured:    m.Featured,
	}
}

func cloneGenre(genre []string) []string {
	if genre == nil {
		return []string{}
	}
	return slices.Clone(genre)
}
