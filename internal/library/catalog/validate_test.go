package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateSeed(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Seed)
		wantErr   bool
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(*Seed) {},
		},
		{
			name:   "empty",
			mutate: func(s *Seed) { *s = Seed{} },
		},
		{
			name:      "missing movie id",
			mutate:    func(s *Seed) { s.Movies[0].ID = "" },
			wantErr:   true,
			wantField: "id",
		},
		{
			name:      "duplicate series id",
			mutate:    func(s *Seed) { s.Series = append(s.Series, Series{ID: "1", Title: "Copie"}) },
			wantErr:   true,
			wantField: "id",
		},
		{
			name:      "non-positive episode duration",
			mutate:    func(s *Seed) { s.Series[0].Seasons[0].Episodes[1].Duration = 0 },
			wantErr:   true,
			wantField: "seasons[0].episodes[1].duration",
		},
		{
			name: "duplicate season number",
			mutate: func(s *Seed) {
				s.Series[0].Seasons = append(s.Series[0].Seasons, Season{ID: "s2", SeasonNumber: 1})
			},
			wantErr:   true,
			wantField: "seasons[1].seasonNumber",
		},
		{
			name: "duplicate episode id",
			mutate: func(s *Seed) {
				s.Series[0].Seasons[0].Episodes[1].ID = "e1"
			},
			wantErr:   true,
			wantField: "seasons[0].episodes[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := testSeed()
			tt.mutate(&seed)

			err := ValidateSeed(seed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSeed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not a *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSeed_ReportsPosition(t *testing.T) {
	seed := testSeed()
	seed.Movies[1].Title = ""

	err := ValidateSeed(seed)
	if err == nil || !strings.HasPrefix(err.Error(), "movies[1]:") {
		t.Errorf("ValidateSeed() error = %v, want movies[1] prefix", err)
	}
}

func TestParseGenres(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Action, Crime", []string{"Action", "Crime"}},
		{" Drame ,, Musique ,", []string{"Drame", "Musique"}},
		{"", []string{}},
		{"  ", []string{}},
	}
	for _, tt := range tests {
		got := ParseGenres(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseGenres(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseGenres(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
