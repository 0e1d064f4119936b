package seed

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	require.Len(t, s.Movies, 6)
	require.Len(t, s.Series, 3)
	require.NoError(t, catalog.ValidateSeed(s))

	assert.Equal(t, "La Voie de l'Aventure", s.Movies[0].Title)
	assert.True(t, s.Movies[0].Featured)
	assert.True(t, s.Movies[4].Featured)
	assert.False(t, s.Movies[1].Featured)
	assert.Equal(t, []string{"Action", "Crime"}, s.Movies[4].Genre)

	spies := s.Series[1]
	require.Len(t, spies.Seasons, 1)
	require.Len(t, spies.Seasons[0].Episodes, 2)
	assert.Equal(t, "Mission: Berlin", spies.Seasons[0].Episodes[1].Title)
	assert.Equal(t, 56, spies.Seasons[0].Episodes[1].Duration)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Len(t, s.Movies, 6)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{"movies":[{"id":"m1","title":"Test","duration":90,"genre":["Drame"]}],"series":[]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Movies, 1)
	assert.Equal(t, "m1", s.Movies[0].ID)
	assert.Empty(t, s.Series)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("movies:\n  - id: \"1\"\n    titel: typo\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Movies)
	assert.Empty(t, s.Series)
}

func TestWriteRoundTrip(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s, again)
}
