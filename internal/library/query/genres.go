package query

import (
	"slices"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

// DistinctGenres returns the union of all genre tags, sorted. Tags are
// compared case-sensitively, so "Drame" and "drame" are both listed.
func DistinctGenres(movies []catalog.Movie, series []catalog.Series) []string {
	seen := make(map[string]struct{})
	for _, m := range movies {
		addTags(seen, m.Genre)
	}
	for _, s := range series {
		addTags(seen, s.Genre)
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	slices.Sort(genres)
	return genres
}

// GenreOptions returns DistinctGenres preceded by the empty "all genres" option.
func GenreOptions(movies []catalog.Movie, series []catalog.Series) []string {
	return append([]string{""}, DistinctGenres(movies, series)...)
}

func addTags(seen map[string]struct{}, tags []string) {
	for _, t := range tags {
		if t != "" {
			seen[t] = struct{}{}
		}
	}
}
