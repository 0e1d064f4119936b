package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func setupTestServer(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	store, _ := newTestStore(t)
	e := echo.New()
	NewHandlers(store).RegisterRoutes(e.Group("/api/v1"))
	return e, store
}

func doRequest(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_CreateAndGetMovie(t *testing.T) {
	e, _ := setupTestServer(t)

	body := `{"title":"Rêves Éternels","releaseYear":2023,"duration":135,"genre":["Romance","Drame"]}`
	rec := doRequest(e, http.MethodPost, "/api/v1/movies", echo.MIMEApplicationJSON, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /movies status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.ID == "" || created.Title != "Rêves Éternels" {
		t.Errorf("created = %+v", created)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/movies/"+created.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /movies/%s status = %d", created.ID, rec.Code)
	}
	var got Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if got.Duration != 135 {
		t.Errorf("Duration = %d, want 135", got.Duration)
	}
}

func TestHandlers_CreateMovie_Form(t *testing.T) {
	e, _ := setupTestServer(t)

	form := url.Values{}
	form.Set("title", "Cité des Ténèbres")
	form.Set("duration", "152")
	form.Set("genre", "Action, Crime")
	rec := doRequest(e, http.MethodPost, "/api/v1/movies", echo.MIMEApplicationForm, form.Encode())
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /movies (form) status = %d: %s", rec.Code, rec.Body.String())
	}

	var created Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(created.Genre) != 2 || created.Genre[0] != "Action" || created.Genre[1] != "Crime" {
		t.Errorf("Genre = %v, want [Action Crime]", created.Genre)
	}
}

func TestHandlers_CreateMovie_Invalid(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/movies", echo.MIMEApplicationJSON, `{"title":"Sans durée"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var verr ValidationError
	if err := json.Unmarshal(rec.Body.Bytes(), &verr); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if verr.Field != "duration" {
		t.Errorf("field = %q, want %q", verr.Field, "duration")
	}
}

func TestHandlers_NotFound(t *testing.T) {
	e, _ := setupTestServer(t)

	tests := []struct {
		method, target, body string
	}{
		{http.MethodGet, "/api/v1/movies/404", ""},
		{http.MethodPut, "/api/v1/movies/404", `{"title":"x"}`},
		{http.MethodDelete, "/api/v1/movies/404", ""},
		{http.MethodGet, "/api/v1/series/404", ""},
		{http.MethodDelete, "/api/v1/series/404", ""},
		{http.MethodPost, "/api/v1/series/404/seasons", ""},
		{http.MethodPost, "/api/v1/series/1/seasons/s9/episodes", `{"title":"x","duration":10}`},
	}
	for _, tt := range tests {
		rec := doRequest(e, tt.method, tt.target, echo.MIMEApplicationJSON, tt.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.target, rec.Code, http.StatusNotFound)
		}
	}
}

func TestHandlers_UpdateAndDeleteMovie(t *testing.T) {
	e, store := setupTestServer(t)

	rec := doRequest(e, http.MethodPut, "/api/v1/movies/2", echo.MIMEApplicationJSON, `{"featured":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.Featured()) != 3 {
		t.Errorf("Featured() len = %d, want 3", len(store.Featured()))
	}

	rec = doRequest(e, http.MethodDelete, "/api/v1/movies/2", "", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if _, ok := store.GetMovie("2"); ok {
		t.Error("movie 2 still present after DELETE")
	}
}

func TestHandlers_SeasonsAndEpisodes(t *testing.T) {
	e, store := setupTestServer(t)

	rec := doRequest(e, http.MethodPost, "/api/v1/series/1/seasons", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST seasons status = %d: %s", rec.Code, rec.Body.String())
	}
	var season Season
	if err := json.Unmarshal(rec.Body.Bytes(), &season); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if season.SeasonNumber != 2 {
		t.Errorf("SeasonNumber = %d, want 2", season.SeasonNumber)
	}

	rec = doRequest(e, http.MethodPost, "/api/v1/series/1/seasons/"+season.ID+"/episodes",
		echo.MIMEApplicationJSON, `{"title":"Retour","duration":50}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST episodes status = %d: %s", rec.Code, rec.Body.String())
	}

	if st := store.Snapshot().Stats(); st.Seasons != 2 || st.Episodes != 3 {
		t.Errorf("Stats() = %+v, want 2 seasons and 3 episodes", st)
	}
}

func TestHandlers_ListWithLimit(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/movies?limit=1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var movies []Movie
	if err := json.Unmarshal(rec.Body.Bytes(), &movies); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("len = %d, want 1", len(movies))
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/series?limit=abc", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandlers_ClosedStore(t *testing.T) {
	e, store := setupTestServer(t)
	store.Close()

	rec := doRequest(e, http.MethodDelete, "/api/v1/movies/1", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHandlers_Stats(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/stats", "", "")
	var st Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if st.Total != 3 || st.Episodes != 2 {
		t.Errorf("Stats = %+v", st)
	}
}
