package query

import (
	"golang.org/x/text/cases"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

// DefaultSimilarLimit is the number of recommendations shown under a title.
const DefaultSimilarLimit = 6

// Similar returns up to limit entries of pool that share at least one genre
// tag with reference, in pool order. The reference itself is excluded by id.
// Tags compare case-insensitively. A limit <= 0 uses DefaultSimilarLimit.
func Similar[T catalog.Entry](reference T, pool []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	fold := cases.Fold()
	ref := reference.Content()
	tags := make(map[string]struct{}, len(ref.Genre))
	for _, tag := range ref.Genre {
		tags[fold.String(tag)] = struct{}{}
	}

	out := make([]T, 0, min(limit, len(pool)))
	for _, candidate := range pool {
		if len(out) == limit {
			break
		}
		c := candidate.Content()
		if c.ID == ref.ID {
			continue
		}
		for _, tag := range c.Genre {
			if _, ok := tags[fold.String(tag)]; ok {
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}

// SimilarMovies returns the movies similar to the movie with the given id,
// using the engine's limit when limit <= 0.
func (e *Engine) SimilarMovies(snap *catalog.Snapshot, id string, limit int) ([]catalog.Movie, error) {
	movie, ok := snap.Movie(id)
	if !ok {
		return nil, catalog.ErrMovieNotFound
	}
	return Similar(movie, snap.Movies(), e.limit(limit)), nil
}

// SimilarSeries returns the series similar to the series with the given id.
func (e *Engine) SimilarSeries(snap *catalog.Snapshot, id string, limit int) ([]catalog.Series, error) {
	series, ok := snap.SeriesByID(id)
	if !ok {
		return nil, catalog.ErrSeriesNotFound
	}
	return Similar(series, snap.Series(), e.limit(limit)), nil
}

func (e *Engine) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return e.similarLimit
}
