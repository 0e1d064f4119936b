package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

func TestSimilar_SharesTagAndExcludesReference(t *testing.T) {
	snap := newTestStore(t).Snapshot()
	reference, ok := snap.Movie("2") // Science-Fiction, Drame
	require.True(t, ok)

	got := Similar(reference, snap.Movies(), 0)

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"4", "6"}, ids)
}

func TestSimilar_CaseInsensitiveTags(t *testing.T) {
	reference := catalog.Movie{ID: "a", Genre: []string{"Drame"}}
	pool := []catalog.Movie{
		{ID: "b", Genre: []string{"DRAME"}},
		{ID: "c", Genre: []string{"Comédie"}},
	}

	got := Similar(reference, pool, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestSimilar_Limit(t *testing.T) {
	reference := catalog.Series{ID: "ref", Genre: []string{"Drame"}}
	pool := []catalog.Series{reference}
	for i := range 10 {
		pool = append(pool, catalog.Series{ID: fmt.Sprint(i), Genre: []string{"Drame"}})
	}

	got := Similar(reference, pool, 0)
	require.Len(t, got, DefaultSimilarLimit)
	assert.Equal(t, "0", got[0].ID)
	assert.Equal(t, "5", got[5].ID)

	assert.Len(t, Similar(reference, pool, 3), 3)
	assert.Len(t, Similar(reference, pool, -1), DefaultSimilarLimit)
}

func TestSimilar_NoTags(t *testing.T) {
	reference := catalog.Movie{ID: "a"}
	pool := []catalog.Movie{{ID: "b", Genre: []string{"Drame"}}, {ID: "c"}}

	got := Similar(reference, pool, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEngine_SimilarSeries(t *testing.T) {
	engine := NewEngine(language.French, 0)
	snap := newTestStore(t).Snapshot()

	// Series 2 (Espionnage, Drame) shares Drame with series 3 only.
	got, err := engine.SimilarSeries(snap, "2", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	_, err = engine.SimilarSeries(snap, "99", 0)
	assert.ErrorIs(t, err, catalog.ErrSeriesNotFound)
}

func TestEngine_SimilarMovies_ConfiguredLimit(t *testing.T) {
	engine := NewEngine(language.French, 1)
	snap := newTestStore(t).Snapshot()

	got, err := engine.SimilarMovies(snap, "2", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = engine.SimilarMovies(snap, "2", 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = engine.SimilarMovies(snap, "99", 0)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDistinctGenres(t *testing.T) {
	snap := newTestStore(t).Snapshot()

	got := DistinctGenres(snap.Movies(), snap.Series())
	assert.Equal(t, []string{
		"Action", "Aventure", "Crime", "Drame", "Espionnage", "Fantastique",
		"Historique", "Musique", "Romance", "Science-Fiction", "Thriller",
	}, got)
}

func TestDistinctGenres_CaseSensitive(t *testing.T) {
	movies := []catalog.Movie{{Genre: []string{"drame", "Drame", ""}}}
	assert.Equal(t, []string{"Drame", "drame"}, DistinctGenres(movies, nil))
}

func TestGenreOptions(t *testing.T) {
	movies := []catalog.Movie{{Genre: []string{"Thriller", "Crime"}}}
	assert.Equal(t, []string{"", "Crime", "Thriller"}, GenreOptions(movies, nil))
	assert.Equal(t, []string{""}, GenreOptions(nil, nil))
}
