package catalog

import (
	"errors"
	"fmt"

	"github.com/rebzseven/rebzseven/internal/validation"
)

// Seed is the initial catalog content handed to NewStore.
type Seed struct {
	Movies []Movie  `json:"movies" yaml:"movies"`
	Series []Series `json:"series" yaml:"series"`
}

// ValidateSeed checks that every record satisfies the catalog invariants:
// unique ids per collection, positive durations, and strictly increasing
// season and episode numbers.
func ValidateSeed(seed Seed) error {
	movieIDs := make(map[string]struct{}, len(seed.Movies))
	for i, m := range seed.Movies {
		if err := validateMovie(m); err != nil {
			return fmt.Errorf("movies[%d]: %w", i, err)
		}
		if _, dup := movieIDs[m.ID]; dup {
			return fmt.Errorf("movies[%d]: %w", i, invalid("id", "duplicate movie id %q", m.ID))
		}
		movieIDs[m.ID] = struct{}{}
	}

	seriesIDs := make(map[string]struct{}, len(seed.Series))
	for i, s := range seed.Series {
		if err := validateSeries(s); err != nil {
			return fmt.Errorf("series[%d]: %w", i, err)
		}
		if _, dup := seriesIDs[s.ID]; dup {
			return fmt.Errorf("series[%d]: %w", i, invalid("id", "duplicate series id %q", s.ID))
		}
		seriesIDs[s.ID] = struct{}{}
	}
	return nil
}

func validateMovie(m Movie) error {
	return fromValidation(validation.ValidateStruct(&m))
}

func validateSeries(s Series) error {
	if err := fromValidation(validation.ValidateStruct(&s)); err != nil {
		return err
	}
	return checkSeasons(s.Seasons)
}

// checkSeasons enforces the structural invariants of a season list that the
// struct tags cannot express.
func checkSeasons(seasons []Season) error {
	seasonIDs := make(map[string]struct{}, len(seasons))
	for i, season := range seasons {
		field := fmt.Sprintf("seasons[%d]", i)
		if _, dup := seasonIDs[season.ID]; dup {
			return invalid(field+".id", "duplicate season id %q", season.ID)
		}
		seasonIDs[season.ID] = struct{}{}
		if i > 0 && season.SeasonNumber <= seasons[i-1].SeasonNumber {
			return invalid(field+".seasonNumber", "season numbers must be strictly increasing, got %d after %d",
				season.SeasonNumber, seasons[i-1].SeasonNumber)
		}

		episodeIDs := make(map[string]struct{}, len(season.Episodes))
		for j, ep := range season.Episodes {
			epField := fmt.Sprintf("%s.episodes[%d]", field, j)
			if _, dup := episodeIDs[ep.ID]; dup {
				return invalid(epField+".id", "duplicate episode id %q", ep.ID)
			}
			episodeIDs[ep.ID] = struct{}{}
			if j > 0 && ep.EpisodeNumber <= season.Episodes[j-1].EpisodeNumber {
				return invalid(epField+".episodeNumber", "episode numbers must be strictly increasing, got %d after %d",
					ep.EpisodeNumber, season.Episodes[j-1].EpisodeNumber)
			}
		}
	}
	return nil
}

// fromValidation reports the first field failure as a ValidationError.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field, Reason: fe.Message()}
	}
	return &ValidationError{Field: "unknown", Reason: err.Error()}
}
