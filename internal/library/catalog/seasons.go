package catalog

import (
	"fmt"
	"slices"

	"github.com/rebzseven/rebzseven/internal/validation"
)

// AddSeason appends an empty season to a series. The season number is one
// past the highest existing number, or 1 for the first season.
func (s *Store) AddSeason(seriesID string) (season Season, err error) {
	var events []event
	defer func() { s.finish("add", "season", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Season{}, ErrStoreClosed
	}

	cur := s.current.Load()
	i := findSeries(cur.series, seriesID)
	if i < 0 {
		return Season{}, ErrSeriesNotFound
	}

	series := cur.series[i].Clone()
	season = Season{
		ID:           s.ids.Next(),
		SeasonNumber: 1,
		Episodes:     []Episode{},
	}
	if n := len(series.Seasons); n > 0 {
		season.SeasonNumber = series.Seasons[n-1].SeasonNumber + 1
	}
	if series.findSeason(season.ID) >= 0 {
		return Season{}, fmt.Errorf("season %s: %w", season.ID, ErrIDCollision)
	}
	series.Seasons = append(series.Seasons, season)

	list := slices.Clone(cur.series)
	list[i] = series
	events = append(events, event{EventSeriesUpdated, series.Clone()})
	events = s.commit(cur, cur.movies, list, events)

	s.logger.Info().
		Str("seriesId", seriesID).
		Str("seasonId", season.ID).
		Int("seasonNumber", season.SeasonNumber).
		Msg("Added season")
	return season.Clone(), nil
}

// AddEpisode appends an episode to a season. The episode number is one past
// the highest existing number in that season, or 1.
func (s *Store) AddEpisode(seriesID, seasonID string, input CreateEpisodeInput) (ep Episode, err error) {
	var events []event
	defer func() { s.finish("add", "episode", err, events) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Episode{}, ErrStoreClosed
	}

	cur := s.current.Load()
	i := findSeries(cur.series, seriesID)
	if i < 0 {
		return Episode{}, ErrSeriesNotFound
	}
	series := cur.series[i].Clone()
	j := series.findSeason(seasonID)
	if j < 0 {
		return Episode{}, ErrSeasonNotFound
	}
	season := &series.Seasons[j]

	ep = Episode{
		ID:            s.ids.Next(),
		Title:         input.Title,
		EpisodeNumber: 1,
		Duration:      input.Duration,
		VideoURL:      input.VideoURL,
		Thumbnail:     input.Thumbnail,
	}
	if n := len(season.Episodes); n > 0 {
		ep.EpisodeNumber = season.Episodes[n-1].EpisodeNumber + 1
	}
	if season.findEpisode(ep.ID) >= 0 {
		return Episode{}, fmt.Errorf("episode %s: %w", ep.ID, ErrIDCollision)
	}
	if err := fromValidation(validation.ValidateStruct(&ep)); err != nil {
		return Episode{}, err
	}
	season.Episodes = append(season.Episodes, ep)

	list := slices.Clone(cur.series)
	list[i] = series
	events = append(events, event{EventSeriesUpdated, series.Clone()})
	events = s.commit(cur, cur.movies, list, events)

	s.logger.Info().
		Str("seriesId", seriesID).
		Str("seasonId", seasonID).
		Str("episodeId", ep.ID).
		Int("episodeNumber", ep.EpisodeNumber).
		Msg("Added episode")
	return ep, nil
}
