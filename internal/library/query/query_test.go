package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
	"github.com/rebzseven/rebzseven/internal/library/seed"
	"github.com/rebzseven/rebzseven/internal/testutil"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := seed.Default()
	require.NoError(t, err)
	store, err := catalog.NewStore(s, catalog.NewSequenceAllocator("", 0), nil, testutil.NopLogger())
	require.NoError(t, err)
	return store
}

type ref struct {
	Type catalog.MediaType
	ID   string
}

func refs(items []catalog.MediaContent) []ref {
	out := make([]ref, len(items))
	for i, c := range items {
		out[i] = ref{c.Type, c.ID}
	}
	return out
}

func movieRef(id string) ref { return ref{catalog.MediaTypeMovie, id} }
func seriesRef(id string) ref { return ref{catalog.MediaTypeSeries, id} }

func TestBrowse_DefaultsToAllByYear(t *testing.T) {
	engine := NewEngine(language.French, 0)
	items, err := engine.Browse(newTestStore(t).Snapshot(), BrowseOptions{})
	require.NoError(t, err)

	// Equal years keep base-set order: movies first, then series.
	want := []ref{
		movieRef("1"), movieRef("4"), seriesRef("3"),
		movieRef("2"), movieRef("5"), seriesRef("1"),
		movieRef("3"), movieRef("6"), seriesRef("2"),
	}
	assert.Equal(t, want, refs(items))
}

func TestBrowse_Tabs(t *testing.T) {
	engine := NewEngine(language.French, 0)
	snap := newTestStore(t).Snapshot()

	movies, err := engine.Browse(snap, BrowseOptions{Tab: TabMovie})
	require.NoError(t, err)
	assert.Len(t, movies, 6)
	for _, c := range movies {
		assert.Equal(t, catalog.MediaTypeMovie, c.Type)
	}

	seriesOnly, err := engine.Browse(snap, BrowseOptions{Tab: TabSeries})
	require.NoError(t, err)
	assert.Len(t, seriesOnly, 3)
	for _, c := range seriesOnly {
		assert.Equal(t, catalog.MediaTypeSeries, c.Type)
	}

	// Request values arrive as plain strings.
	for raw, want := range map[string]int{"all": 9, "movie": 6, "series": 3} {
		items, err := engine.Browse(snap, BrowseOptions{Tab: Tab(raw)})
		require.NoError(t, err, raw)
		assert.Len(t, items, want, raw)
	}

	_, err = engine.Browse(snap, BrowseOptions{Tab: Tab("movies")})
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestBrowse_GenreIsCaseInsensitive(t *testing.T) {
	engine := NewEngine(language.French, 0)
	snap := newTestStore(t).Snapshot()

	items, err := engine.Browse(snap, BrowseOptions{Genre: "ACTION"})
	require.NoError(t, err)
	assert.Equal(t, []ref{movieRef("5")}, refs(items))

	items, err = engine.Browse(snap, BrowseOptions{Genre: "drame"})
	require.NoError(t, err)
	assert.Equal(t, []ref{movieRef("4"), seriesRef("3"), movieRef("2"), movieRef("6"), seriesRef("2")}, refs(items))
}

func TestBrowse_GenreIsExactTag(t *testing.T) {
	engine := NewEngine(language.French, 0)
	items, err := engine.Browse(newTestStore(t).Snapshot(), BrowseOptions{Genre: "Dram"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBrowse_Search(t *testing.T) {
	engine := NewEngine(language.French, 0)
	snap := newTestStore(t).Snapshot()

	tests := []struct {
		search string
		want   []ref
	}{
		{"ombres", []ref{movieRef("3")}},
		{"OMBRES DU", []ref{movieRef("3")}},
		{"musique", []ref{movieRef("6")}},
		{"guerre froide", []ref{seriesRef("2")}},
		{"introuvable", []ref{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, err := engine.Browse(snap, BrowseOptions{Search: tt.search})
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Equal(t, tt.want, refs(items))
		})
	}
}

func TestBrowse_GenreAndSearchCombine(t *testing.T) {
	engine := NewEngine(language.French, 0)
	items, err := engine.Browse(newTestStore(t).Snapshot(), BrowseOptions{
		Tab:    TabMovie,
		Genre:  "crime",
		Search: "ville",
	})
	require.NoError(t, err)
	assert.Equal(t, []ref{movieRef("5")}, refs(items))
}

func TestBrowse_TitleSortMixesKinds(t *testing.T) {
	engine := NewEngine(language.French, 0)
	items, err := engine.Browse(newTestStore(t).Snapshot(), BrowseOptions{SortBy: SortTitle})
	require.NoError(t, err)

	titles := make([]string, len(items))
	for i, c := range items {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{
		"Cité des Ténèbres",
		"Destins Croisés",
		"Horizons Lointains",
		"La Voie de l'Aventure",
		"Les Chroniques du Temps",
		"Les Échos du Silence",
		"Ombres du Passé",
		"Rêves Éternels",
		"Royaume des Espions",
	}, titles)
}

func TestBrowse_YearSortIsStable(t *testing.T) {
	store := newTestStore(t)
	for _, title := range []string{"Premier", "Deuxième", "Troisième"} {
		_, err := store.AddMovie(catalog.CreateMovieInput{Title: title, ReleaseYear: 1999, Duration: 90})
		require.NoError(t, err)
	}

	items, err := NewEngine(language.French, 0).Browse(store.Snapshot(), BrowseOptions{Tab: TabMovie, SortBy: SortYear})
	require.NoError(t, err)

	tail := items[len(items)-3:]
	assert.Equal(t, "Premier", tail[0].Title)
	assert.Equal(t, "Deuxième", tail[1].Title)
	assert.Equal(t, "Troisième", tail[2].Title)
}

func TestBrowse_InvalidOptions(t *testing.T) {
	engine := NewEngine(language.French, 0)
	snap := newTestStore(t).Snapshot()

	_, err := engine.Browse(snap, BrowseOptions{Tab: "documentaries"})
	var verr *catalog.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "tab", verr.Field)
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = engine.Browse(snap, BrowseOptions{SortBy: "rating"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sortBy", verr.Field)
}

func TestBrowse_ReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	engine := NewEngine(language.French, 0)

	items, err := engine.Browse(store.Snapshot(), BrowseOptions{Genre: "Action"})
	require.NoError(t, err)
	items[0].Genre[0] = "Mutated"

	m, _ := store.GetMovie("5")
	assert.Equal(t, "Action", m.Genre[0])
}

func TestParseTabAndSort(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabAll, tab)

	tab, err = ParseTab("series")
	require.NoError(t, err)
	assert.Equal(t, TabSeries, tab)

	tab, err = ParseTab("movie")
	require.NoError(t, err)
	assert.Equal(t, TabMovie, tab)

	sortBy, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortYear, sortBy)

	sortBy, err = ParseSort("title")
	require.NoError(t, err)
	assert.Equal(t, SortTitle, sortBy)

	_, err = ParseSort("Title")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}
