// Package catalog owns the canonical movie and series collections, derives
// the featured view from them, and serializes every write.
//
// Writers take Store.mu, build new collection slices (the previous ones are
// never modified), and publish a new Snapshot with an atomic pointer swap.
// Readers load the current Snapshot without locking and always see a movie
// collection and series collection from the same write.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rebzseven/rebzseven/internal/metrics"
)

// Broadcaster receives catalog change events. The websocket hub implements it.
type Broadcaster interface {
	Broadcast(msgType string, payload any) error
}

// Event types published to the Broadcaster.
const (
	EventMovieAdded      = "movie:added"
	EventMovieUpdated    = "movie:updated"
	EventMovieDeleted    = "movie:deleted"
	EventSeriesAdded     = "series:added"
	EventSeriesUpdated   = "series:updated"
	EventSeriesDeleted   = "series:deleted"
	EventFeaturedUpdated = "featured:updated"
)

type event struct {
	msgType string
	payload any
}

// Store holds the catalog. It is created once at startup and shared by
// every consumer.
type Store struct {
	mu      sync.Mutex
	closed  bool
	current atomic.Pointer[Snapshot]

	ids    IDAllocator
	hub    Broadcaster
	logger zerolog.Logger
}

// NewStore validates the seed and creates a store holding it. A nil ids
// defaults to UUIDAllocator; a nil hub disables change events.
func NewStore(seed Seed, ids IDAllocator, hub Broadcaster, logger zerolog.Logger) (*Store, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	if ids == nil {
		ids = UUIDAllocator{}
	}

	movies := make([]Movie, len(seed.Movies))
	for i, m := range seed.Movies {
		movies[i] = m.Clone()
	}
	series := make([]Series, len(seed.Series))
	for i, sr := range seed.Series {
		series[i] = sr.Clone()
	}

	if obs, ok := ids.(idObserver); ok {
		observeSeedIDs(obs, movies, series)
	}

	s := &Store{
		ids:    ids,
		hub:    hub,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
	snap := newSnapshot(0, movies, series)
	s.current.Store(snap)
	recordSize(snap)

	s.logger.Info().
		Int("movies", len(movies)).
		Int("series", len(series)).
		Int("featured", len(snap.featured)).
		Msg("Catalog seeded")

	return s, nil
}

// Snapshot returns the current immutable catalog view.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Featured returns the current featured view.
func (s *Store) Featured() []MediaContent {
	return s.Snapshot().Featured()
}

// GetMovie looks up a movie by id.
func (s *Store) GetMovie(id string) (Movie, bool) {
	return s.Snapshot().Movie(id)
}

// GetSeries looks up a series by id.
func (s *Store) GetSeries(id string) (Series, bool) {
	return s.Snapshot().SeriesByID(id)
}

// AddMovie allocates an id for the movie and appends it to the catalog.
func (s *Store) AddMovie(input CreateMovieInput) (movie Movie, err error) {
	var events []event
	defer func() { s.finish("add", "movie", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Movie{}, ErrStoreClosed
	}

	cur := s.current.Load()
	movie = input.toMovie(s.ids.Next())
	if findMovie(cur.movies, movie.ID) >= 0 {
		return Movie{}, fmt.Errorf("movie %s: %w", movie.ID, ErrIDCollision)
	}
	if err := validateMovie(movie); err != nil {
		return Movie{}, err
	}

	movies := append(slices.Clone(cur.movies), movie)
	events = append(events, event{EventMovieAdded, movie.Clone()})
	events = s.commit(cur, movies, cur.series, events)

	s.logger.Info().Str("id", movie.ID).Str("title", movie.Title).Msg("Created movie")
	return movie.Clone(), nil
}

// UpdateMovie merges the non-nil fields of input onto the movie.
func (s *Store) UpdateMovie(id string, input UpdateMovieInput) (movie Movie, err error) {
	var events []event
	defer func() { s.finish("update", "movie", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Movie{}, ErrStoreClosed
	}

	cur := s.current.Load()
	i := findMovie(cur.movies, id)
	if i < 0 {
		return Movie{}, ErrMovieNotFound
	}

	movie = input.applyTo(cur.movies[i])
	if err := validateMovie(movie); err != nil {
		return Movie{}, err
	}

	movies := slices.Clone(cur.movies)
	movies[i] = movie
	events = append(events, event{EventMovieUpdated, movie.Clone()})
	events = s.commit(cur, movies, cur.series, events)

	s.logger.Info().Str("id", id).Str("title", movie.Title).Msg("Updated movie")
	return movie.Clone(), nil
}

// DeleteMovie removes a movie. Deleting an absent id returns ErrMovieNotFound.
func (s *Store) DeleteMovie(id string) (err error) {
	var events []event
	defer func() { s.finish("delete", "movie", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	cur := s.current.Load()
	i := findMovie(cur.movies, id)
	if i < 0 {
		return ErrMovieNotFound
	}

	movies := slices.Delete(slices.Clone(cur.movies), i, i+1)
	events = append(events, event{EventMovieDeleted, map[string]string{"id": id}})
	events = s.commit(cur, movies, cur.series, events)

	s.logger.Info().Str("id", id).Msg("Deleted movie")
	return nil
}

// AddSeries allocates an id for the series and appends it to the catalog.
// Seasons default to an empty list; nested seasons and episodes without an
// id get one assigned.
func (s *Store) AddSeries(input CreateSeriesInput) (series Series, err error) {
	var events []event
	defer func() { s.finish("add", "series", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Series{}, ErrStoreClosed
	}

	cur := s.current.Load()
	series = input.toSeries(s.ids.Next())
	if findSeries(cur.series, series.ID) >= 0 {
		return Series{}, fmt.Errorf("series %s: %w", series.ID, ErrIDCollision)
	}
	s.assignNestedIDs(&series)
	if err := validateSeries(series); err != nil {
		return Series{}, err
	}

	list := append(slices.Clone(cur.series), series)
	events = append(events, event{EventSeriesAdded, series.Clone()})
	events = s.commit(cur, cur.movies, list, events)

	s.logger.Info().
		Str("id", series.ID).
		Str("title", series.Title).
		Int("seasons", len(series.Seasons)).
		Msg("Created series")
	return series.Clone(), nil
}

// UpdateSeries merges the non-nil fields of input onto the series. A non-nil
// Seasons replaces the entire season list.
func (s *Store) UpdateSeries(id string, input UpdateSeriesInput) (series Series, err error) {
	var events []event
	defer func() { s.finish("update", "series", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Series{}, ErrStoreClosed
	}

	cur := s.current.Load()
	i := findSeries(cur.series, id)
	if i < 0 {
		return Series{}, ErrSeriesNotFound
	}

	series = input.applyTo(cur.series[i])
	s.assignNestedIDs(&series)
	if err := validateSeries(series); err != nil {
		return Series{}, err
	}

	list := slices.Clone(cur.series)
	list[i] = series
	events = append(events, event{EventSeriesUpdated, series.Clone()})
	events = s.commit(cur, cur.movies, list, events)

	s.logger.Info().Str("id", id).Str("title", series.Title).Msg("Updated series")
	return series.Clone(), nil
}

// DeleteSeries removes a series together with its seasons and episodes.
func (s *Store) DeleteSeries(id string) (err error) {
	var events []event
	defer func() { s.finish("delete", "series", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	cur := s.current.Load()
	i := findSeries(cur.series, id)
	if i < 0 {
		return ErrSeriesNotFound
	}

	removed := cur.series[i]
	list := slices.Delete(slices.Clone(cur.series), i, i+1)
	events = append(events, event{EventSeriesDeleted, map[string]string{"id": id}})
	events = s.commit(cur, cur.movies, list, events)

	s.logger.Info().
		Str("id", id).
		Int("seasons", len(removed.Seasons)).
		Int("episodes", removed.EpisodeCount()).
		Msg("Deleted series")
	return nil
}

// Close marks the store as shut down. Later mutations fail with
// ErrStoreClosed; reads keep serving the last snapshot.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Info().Uint64("version", s.current.Load().version).Msg("Catalog closed")
}

// commit publishes a snapshot built from the given collections and appends
// a featured event when the featured view changed. Caller holds s.mu.
func (s *Store) commit(cur *Snapshot, movies []Movie, series []Series, events []event) []event {
	next := newSnapshot(cur.version+1, movies, series)
	s.current.Store(next)
	recordSize(next)

	if !sameFeatured(cur.featured, next.featured) {
		events = append(events, event{EventFeaturedUpdated, next.Featured()})
	}
	return events
}

// assignNestedIDs gives an id to every season and episode that lacks one.
func (s *Store) assignNestedIDs(series *Series) {
	for i := range series.Seasons {
		season := &series.Seasons[i]
		if season.ID == "" {
			season.ID = s.ids.Next()
		}
		if season.Episodes == nil {
			season.Episodes = []Episode{}
		}
		for j := range season.Episodes {
			if season.Episodes[j].ID == "" {
				season.Episodes[j].ID = s.ids.Next()
			}
		}
	}
}

// finish records the mutation outcome and, on success, publishes its events.
// It runs after s.mu is released.
func (s *Store) finish(operation, kind string, err error, events []event) {
	metrics.RecordMutation(operation, kind, resultLabel(err))
	if err != nil {
		s.logger.Debug().Err(err).Str("operation", operation).Str("kind", kind).Msg("Catalog mutation rejected")
		return
	}
	if s.hub == nil {
		return
	}
	for _, e := range events {
		if err := s.hub.Broadcast(e.msgType, e.payload); err != nil {
			s.logger.Warn().Err(err).Str("event", e.msgType).Msg("Failed to broadcast catalog event")
		}
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrInvalidInput):
		return metrics.ResultInvalid
	case errors.Is(err, ErrIDCollision):
		return metrics.ResultCollision
	default:
		return metrics.ResultError
	}
}

func recordSize(snap *Snapshot) {
	st := snap.Stats()
	metrics.SetCatalogSize(st.Movies, st.Series, st.Seasons, st.Episodes, st.Featured)
}

func observeSeedIDs(obs idObserver, movies []Movie, series []Series) {
	for _, m := range movies {
		obs.Observe(m.ID)
	}
	for _, sr := range series {
		obs.Observe(sr.ID)
		for _, season := range sr.Seasons {
			obs.Observe(season.ID)
			for _, ep := range season.Episodes {
				obs.Observe(ep.ID)
			}
		}
	}
}
