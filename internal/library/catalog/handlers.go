package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for catalog reads and writes.
type Handlers struct {
	store *Store
}

// NewHandlers creates new catalog handlers.
func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

// RegisterRoutes registers the movie, series and stats routes on the API group.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	movies := g.Group("/movies")
	movies.GET("", h.ListMovies)
	movies.POST("", h.CreateMovie)
	movies.GET("/:id", h.GetMovie)
	movies.PUT("/:id", h.UpdateMovie)
	movies.DELETE("/:id", h.DeleteMovie)

	series := g.Group("/series")
	series.GET("", h.ListSeries)
	series.POST("", h.CreateSeries)
	series.GET("/:id", h.GetSeries)
	series.PUT("/:id", h.UpdateSeries)
	series.DELETE("/:id", h.DeleteSeries)
	series.POST("/:id/seasons", h.AddSeason)
	series.POST("/:id/seasons/:seasonId/episodes", h.AddEpisode)

	g.GET("/stats", h.Stats)
}

// HTTPError maps a catalog error onto an echo HTTP error.
func HTTPError(err error) *echo.HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"message": verr.Error(),
			"field":   verr.Field,
			"reason":  verr.Reason,
		})
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrIDCollision):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrStoreClosed):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// ListMovies returns movies in insertion order.
// GET /api/v1/movies?limit=n
func (h *Handlers) ListMovies(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	snap := h.store.Snapshot()
	if limit > 0 {
		return c.JSON(http.StatusOK, snap.RecentMovies(limit))
	}
	return c.JSON(http.StatusOK, snap.Movies())
}

// GetMovie returns a single movie.
// GET /api/v1/movies/:id
func (h *Handlers) GetMovie(c echo.Context) error {
	movie, ok := h.store.GetMovie(c.Param("id"))
	if !ok {
		return HTTPError(ErrMovieNotFound)
	}
	return c.JSON(http.StatusOK, movie)
}

// CreateMovie creates a movie from a JSON body or the admin form.
// POST /api/v1/movies
func (h *Handlers) CreateMovie(c echo.Context) error {
	var input CreateMovieInput
	if isForm(c) {
		var form movieForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		input = form.input()
	} else if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.store.AddMovie(input)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusCreated, movie)
}

// UpdateMovie patches an existing movie.
// PUT /api/v1/movies/:id
func (h *Handlers) UpdateMovie(c echo.Context) error {
	var input UpdateMovieInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.store.UpdateMovie(c.Param("id"), input)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie deletes a movie.
// DELETE /api/v1/movies/:id
func (h *Handlers) DeleteMovie(c echo.Context) error {
	if err := h.store.DeleteMovie(c.Param("id")); err != nil {
		return HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSeries returns series in insertion order.
// GET /api/v1/series?limit=n
func (h *Handlers) ListSeries(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	snap := h.store.Snapshot()
	if limit > 0 {
		return c.JSON(http.StatusOK, snap.RecentSeries(limit))
	}
	return c.JSON(http.StatusOK, snap.Series())
}

// GetSeries returns a single series with its seasons and episodes.
// GET /api/v1/series/:id
func (h *Handlers) GetSeries(c echo.Context) error {
	series, ok := h.store.GetSeries(c.Param("id"))
	if !ok {
		return HTTPError(ErrSeriesNotFound)
	}
	return c.JSON(http.StatusOK, series)
}

// CreateSeries creates a series from a JSON body or the admin form.
// POST /api/v1/series
func (h *Handlers) CreateSeries(c echo.Context) error {
	var input CreateSeriesInput
	if isForm(c) {
		var form seriesForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		input = form.input()
	} else if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	series, err := h.store.AddSeries(input)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusCreated, series)
}

// UpdateSeries patches an existing series.
// PUT /api/v1/series/:id
func (h *Handlers) UpdateSeries(c echo.Context) error {
	var input UpdateSeriesInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	series, err := h.store.UpdateSeries(c.Param("id"), input)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, series)
}

// DeleteSeries deletes a series and everything it owns.
// DELETE /api/v1/series/:id
func (h *Handlers) DeleteSeries(c echo.Context) error {
	if err := h.store.DeleteSeries(c.Param("id")); err != nil {
		return HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddSeason appends the next season to a series.
// POST /api/v1/series/:id/seasons
func (h *Handlers) AddSeason(c echo.Context) error {
	season, err := h.store.AddSeason(c.Param("id"))
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusCreated, season)
}

// AddEpisode appends the next episode to a season.
// POST /api/v1/series/:id/seasons/:seasonId/episodes
func (h *Handlers) AddEpisode(c echo.Context) error {
	var input CreateEpisodeInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ep, err := h.store.AddEpisode(c.Param("id"), c.Param("seasonId"), input)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusCreated, ep)
}

// Stats returns the dashboard counts.
// GET /api/v1/stats
func (h *Handlers) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Snapshot().Stats())
}

func limitParam(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return n, nil
}

func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// movieForm is the admin form payload; genre arrives as "Action, Crime".
type movieForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	ReleaseYear int    `form:"releaseYear"`
	Duration    int    `form:"duration"`
	PosterURL   string `form:"posterUrl"`
	VideoURL    string `form:"videoUrl"`
	Genre       string `form:"genre"`
	Featured    bool   `form:"featured"`
}

func (f movieForm) input() CreateMovieInput {
	return CreateMovieInput{
		Title:       f.Title,
		Description: f.Description,
		ReleaseYear: f.ReleaseYear,
		Duration:    f.Duration,
		PosterURL:   f.PosterURL,
		VideoURL:    f.VideoURL,
		Genre:       ParseGenres(f.Genre),
		Featured:    f.Featured,
	}
}

type seriesForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	ReleaseYear int    `form:"releaseYear"`
	PosterURL   string `form:"posterUrl"`
	Genre       string `form:"genre"`
	Featured    bool   `form:"featured"`
}

func (f seriesForm) input() CreateSeriesInput {
	return CreateSeriesInput{
		Title:       f.Title,
		Description: f.Description,
		ReleaseYear: f.ReleaseYear,
		PosterURL:   f.PosterURL,
		Genre:       ParseGenres(f.Genre),
		Featured:    f.Featured,
	}
}
