package query

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
	"github.com/rebzseven/rebzseven/internal/metrics"
)

// SnapshotSource provides the current catalog snapshot. *catalog.Store implements it.
type SnapshotSource interface {
	Snapshot() *catalog.Snapshot
}

// Handlers provides HTTP handlers for catalog queries. Each request reads a
// single snapshot.
type Handlers struct {
	source SnapshotSource
	engine *Engine
}

// NewHandlers creates new query handlers.
func NewHandlers(source SnapshotSource, engine *Engine) *Handlers {
	return &Handlers{source: source, engine: engine}
}

// RegisterRoutes registers the query routes on the API group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/browse", h.Browse)
	g.GET("/featured", h.Featured)
	g.GET("/genres", h.Genres)
	g.GET("/movies/:id/similar", h.SimilarMovies)
	g.GET("/series/:id/similar", h.SimilarSeries)
}

// Browse runs a browse query. tab is all, movie or series; sort is year or title.
// GET /api/v1/browse?tab=&genre=&search=&sort=
func (h *Handlers) Browse(c echo.Context) error {
	defer metrics.ObserveQuery("browse", time.Now())

	items, err := h.engine.Browse(h.source.Snapshot(), BrowseOptions{
		Tab:    Tab(c.QueryParam("tab")),
		Genre:  c.QueryParam("genre"),
		Search: c.QueryParam("search"),
		SortBy: SortBy(c.QueryParam("sort")),
	})
	if err != nil {
		return catalog.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Featured returns the featured view.
// GET /api/v1/featured
func (h *Handlers) Featured(c echo.Context) error {
	defer metrics.ObserveQuery("featured", time.Now())
	return c.JSON(http.StatusOK, h.source.Snapshot().Featured())
}

// Genres returns the distinct genre tags. With options=true the list starts
// with the empty "all genres" option.
// GET /api/v1/genres
func (h *Handlers) Genres(c echo.Context) error {
	defer metrics.ObserveQuery("genres", time.Now())

	snap := h.source.Snapshot()
	if c.QueryParam("options") == "true" {
		return c.JSON(http.StatusOK, GenreOptions(snap.Movies(), snap.Series()))
	}
	return c.JSON(http.StatusOK, DistinctGenres(snap.Movies(), snap.Series()))
}

// SimilarMovies returns movies sharing a genre with the given movie.
// GET /api/v1/movies/:id/similar?limit=n
func (h *Handlers) SimilarMovies(c echo.Context) error {
	defer metrics.ObserveQuery("similar", time.Now())

	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	movies, err := h.engine.SimilarMovies(h.source.Snapshot(), c.Param("id"), limit)
	if err != nil {
		return catalog.HTTPError(err)
	}
	return c.JSON(http.StatusOK, movies)
}

// SimilarSeries returns series sharing a genre with the given series.
// GET /api/v1/series/:id/similar?limit=n
func (h *Handlers) SimilarSeries(c echo.Context) error {
	defer metrics.ObserveQuery("similar", time.Now())

	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	series, err := h.engine.SimilarSeries(h.source.Snapshot(), c.Param("id"), limit)
	if err != nil {
		return catalog.HTTPError(err)
	}
	return c.JSON(http.StatusOK, series)
}

func limitParam(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return n, nil
}
