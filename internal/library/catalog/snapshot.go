package catalog

// Snapshot is an immutable, consistent view of the catalog. Every mutation
// publishes a new Snapshot; existing ones never change. Accessors return deep
// copies so callers cannot reach into store state.
type Snapshot struct {
	version  uint64
	movies   []Movie
	series   []Series
	featured []MediaContent
}

// Stats holds catalog counts for the admin dashboard.
type Stats struct {
	Movies   int `json:"movies"`
	Series   int `json:"series"`
	Seasons  int `json:"seasons"`
	Episodes int `json:"episodes"`
	Featured int `json:"featured"`
	Total    int `json:"total"`
}

func newSnapshot(version uint64, movies []Movie, series []Series) *Snapshot {
	return &Snapshot{
		version:  version,
		movies:   movies,
		series:   series,
		featured: computeFeatured(movies, series),
	}
}

// Version increases by one with every successful mutation.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Movies returns all movies in insertion order.
func (s *Snapshot) Movies() []Movie {
	return s.RecentMovies(len(s.movies))
}

// Series returns all series in insertion order.
func (s *Snapshot) Series() []Series {
	return s.RecentSeries(len(s.series))
}

// RecentMovies returns at most n movies from the head of the collection.
func (s *Snapshot) RecentMovies(n int) []Movie {
	n = clampLen(n, len(s.movies))
	out := make([]Movie, n)
	for i := range out {
		out[i] = s.movies[i].Clone()
	}
	return out
}

// RecentSeries returns at most n series from the head of the collection.
func (s *Snapshot) RecentSeries(n int) []Series {
	n = clampLen(n, len(s.series))
	out := make([]Series, n)
	for i := range out {
		out[i] = s.series[i].Clone()
	}
	return out
}

// Featured returns the featured view: featured movies, then featured series,
// each in insertion order.
func (s *Snapshot) Featured() []MediaContent {
	out := make([]MediaContent, len(s.featured))
	for i, c := range s.featured {
		out[i] = c.Clone()
	}
	return out
}

// Movie looks up a movie by id.
func (s *Snapshot) Movie(id string) (Movie, bool) {
	if i := findMovie(s.movies, id); i >= 0 {
		return s.movies[i].Clone(), true
	}
	return Movie{}, false
}

// SeriesByID looks up a series by id.
func (s *Snapshot) SeriesByID(id string) (Series, bool) {
	if i := findSeries(s.series, id); i >= 0 {
		return s.series[i].Clone(), true
	}
	return Series{}, false
}

// Len returns the number of movies and series.
func (s *Snapshot) Len() (movies, series int) {
	return len(s.movies), len(s.series)
}

// Stats counts the catalog content.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		Movies:   len(s.movies),
		Series:   len(s.series),
		Featured: len(s.featured),
	}
	for _, series := range s.series {
		st.Seasons += len(series.Seasons)
		st.Episodes += series.EpisodeCount()
	}
	st.Total = st.Movies + st.Series
	return st
}

func clampLen(n, length int) int {
	if n < 0 {
		return 0
	}
	return min(n, length)
}

func findMovie(movies []Movie, id string) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}

func findSeries(series []Series, id string) int {
	for i := range series {
		if series[i].ID == id {
			return i
		}
	}
	return -1
}
