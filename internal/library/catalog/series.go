package catalog

// Series represents a multi-season series in the catalog.
type Series struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	ReleaseYear int      `json:"releaseYear" yaml:"releaseYear"`
	PosterURL   string   `json:"posterUrl" yaml:"posterUrl"`
	Genre       []string `json:"genre" yaml:"genre"`
	Seasons     []Season `json:"seasons" yaml:"seasons" validate:"dive"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// Season represents a season of a series. Seasons are owned by their series.
type Season struct {
	ID           string    `json:"id" yaml:"id" validate:"required"`
	SeasonNumber int       `json:"seasonNumber" yaml:"seasonNumber" validate:"gt=0"`
	Episodes     []Episode `json:"episodes" yaml:"episodes" validate:"dive"`
}

// Episode represents an episode of a season.
type Episode struct {
	ID            string `json:"id" yaml:"id" validate:"required"`
	Title         string `json:"title" yaml:"title" validate:"required"`
	EpisodeNumber int    `json:"episodeNumber" yaml:"episodeNumber" validate:"gt=0"`
	Duration      int    `json:"duration" yaml:"duration" validate:"gt=0"` // minutes
	VideoURL      string `json:"videoUrl" yaml:"videoUrl"`
	Thumbnail     string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// CreateSeriesInput contains fields for creating a series.
// Seasons and episodes without an id get one assigned.
type CreateSeriesInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseYear int      `json:"releaseYear"`
	PosterURL   string   `json:"posterUrl"`
	Genre       []string `json:"genre"`
	Seasons     []Season `json:"seasons,omitempty"`
	Featured    bool     `json:"featured"`
}

// UpdateSeriesInput contains fields for updating a series.
// A non-nil Seasons replaces the whole season list; there is no nested merge.
type UpdateSeriesInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ReleaseYear *int      `json:"releaseYear,omitempty"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
	Seasons     *[]Season `json:"seasons,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

// CreateEpisodeInput contains fields for appending an episode to a season.
type CreateEpisodeInput struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	VideoURL  string `json:"videoUrl"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

func (in CreateSeriesInput) toSeries(id string) Series {
	return Series{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		ReleaseYear: in.ReleaseYear,
		PosterURL:   in.PosterURL,
		Genre:       cloneGenre(in.Genre),
		Seasons:     cloneSeasons(in.Seasons),
		Featured:    in.Featured,
	}
}

func (in UpdateSeriesInput) applyTo(current Series) Series {
	s := current.Clone()
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.ReleaseYear != nil {
		s.ReleaseYear = *in.ReleaseYear
	}
	if in.PosterURL != nil {
		s.PosterURL = *in.PosterURL
	}
	if in.Genre != nil {
		s.Genre = cloneGenre(*in.Genre)
	}
	if in.Seasons != nil {
		s.Seasons = cloneSeasons(*in.Seasons)
	}
	if in.Featured != nil {
		s.Featured = *in.Featured
	}
	return s
}

// Clone returns a deep copy of the series, including seasons and episodes.
func (s Series) Clone() Series {
	s.Genre = cloneGenre(s.Genre)
	s.Seasons = cloneSeasons(s.Seasons)
	return s
}

// Content projects the series into a listing entry.
// The returned Genre shares storage with the series.
func (s Series) Content() MediaContent {
	return MediaContent{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		ReleaseYear: s.ReleaseYear,
		PosterURL:   s.PosterURL,
		Genre:       s.Genre,
		Type:        MediaTypeSeries,
		Featured:    s.Featured,
	}
}

// EpisodeCount returns the number of episodes across all seasons.
func (s Series) EpisodeCount() int {
	n := 0
	for _, season := range s.Seasons {
		n += len(season.Episodes)
	}
	return n
}

// Clone returns a deep copy of the season.
func (s Season) Clone() Season {
	episodes := make([]Episode, len(s.Episodes))
	copy(episodes, s.Episodes)
	s.Episodes = episodes
	return s
}

func cloneSeasons(seasons []Season) []Season {
	out := make([]Season, len(seasons))
	for i, season := range seasons {
		out[i] = season.Clone()
	}
	return out
}

func (s Season) findEpisode(id string) int {
	for i, ep := range s.Episodes {
		if ep.ID == id {
			return i
		}
	}
	return -1
}

func (s Series) findSeason(id string) int {
	for i, season := range s.Seasons {
		if season.ID == id {
			return i
		}
	}
	return -1
}
