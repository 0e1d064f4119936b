// Package query implements browsing, genre listing and similar-content
// lookups over an immutable catalog snapshot.
package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

// Tab selects the base set of a browse query.
type Tab string

const (
	TabAll    Tab = "all"
	TabMovie  Tab = "movie"
	TabSeries Tab = "series"
)

// SortBy selects the browse ordering.
type SortBy string

const (
	// SortYear orders by release year, newest first. Ties keep base-set order.
	SortYear SortBy = "year"
	// SortTitle orders by title using the engine's collation.
	SortTitle SortBy = "title"
)

// BrowseOptions are the parameters of a browse query. Empty Genre and
// Search disable their filters; empty Tab and SortBy use the defaults.
type BrowseOptions struct {
	Tab    Tab
	Genre  string
	Search string
	SortBy SortBy
}

// Engine runs queries against catalog snapshots. It holds no catalog state
// and is safe for concurrent use.
type Engine struct {
	lang         language.Tag
	similarLimit int
}

// NewEngine creates an engine that collates titles for lang. A
// similarLimit <= 0 uses DefaultSimilarLimit.
func NewEngine(lang language.Tag, similarLimit int) *Engine {
	if similarLimit <= 0 {
		similarLimit = DefaultSimilarLimit
	}
	return &Engine{lang: lang, similarLimit: similarLimit}
}

// ParseTab converts a request value into a Tab. The empty string means TabAll.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case "":
		return TabAll, nil
	case TabAll, TabMovie, TabSeries:
		return t, nil
	default:
		return "", &catalog.ValidationError{Field: "tab", Reason: "must be one of [all movie series], got " + strconv.Quote(s)}
	}
}

// ParseSort converts a request value into a SortBy. The empty string means SortYear.
func ParseSort(s string) (SortBy, error) {
	switch sb := SortBy(s); sb {
	case "":
		return SortYear, nil
	case SortYear, SortTitle:
		return sb, nil
	default:
		return "", &catalog.ValidationError{Field: "sortBy", Reason: "must be one of [year title], got " + strconv.Quote(s)}
	}
}

// Browse selects the base set by tab, filters by genre and search text,
// sorts, and projects the result to listing entries.
func (e *Engine) Browse(snap *catalog.Snapshot, opts BrowseOptions) ([]catalog.MediaContent, error) {
	tab, err := ParseTab(string(opts.Tab))
	if err != nil {
		return nil, err
	}
	sortBy, err := ParseSort(string(opts.SortBy))
	if err != nil {
		return nil, err
	}

	items := baseSet(snap, tab)

	fold := cases.Fold()
	if opts.Genre != "" {
		genre := fold.String(opts.Genre)
		items = slices.DeleteFunc(items, func(c catalog.MediaContent) bool {
			return !hasTag(fold, c.Genre, genre)
		})
	}
	if opts.Search != "" {
		needle := fold.String(opts.Search)
		items = slices.DeleteFunc(items, func(c catalog.MediaContent) bool {
			return !matchesSearch(fold, c, needle)
		})
	}

	switch sortBy {
	case SortTitle:
		col := collate.New(e.lang)
		slices.SortStableFunc(items, func(a, b catalog.MediaContent) int {
			return col.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(items, func(a, b catalog.MediaContent) int {
			return cmp.Compare(b.ReleaseYear, a.ReleaseYear)
		})
	}
	return items, nil
}

// baseSet returns movies then series, in insertion order.
func baseSet(snap *catalog.Snapshot, tab Tab) []catalog.MediaContent {
	var items []catalog.MediaContent
	if tab == TabAll || tab == TabMovie {
		for _, m := range snap.Movies() {
			items = append(items, m.Content())
		}
	}
	if tab == TabAll || tab == TabSeries {
		for _, s := range snap.Series() {
			items = append(items, s.Content())
		}
	}
	if items == nil {
		items = []catalog.MediaContent{}
	}
	return items
}

func hasTag(fold cases.Caser, tags []string, folded string) bool {
	for _, tag := range tags {
		if fold.String(tag) == folded {
			return true
		}
	}
	return false
}

func matchesSearch(fold cases.Caser, c catalog.MediaContent, needle string) bool {
	if strings.Contains(fold.String(c.Title), needle) || strings.Contains(fold.String(c.Description), needle) {
		return true
	}
	for _, tag := range c.Genre {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}
