package pipeline

import (
	"context"
	"log/slog"
	"time"

	"f1calendar/calendar"
	"f1calendar/metrics"
	"f1calendar/model"
	"f1calendar/season"
)

// Fetcher returns the raw schedule response for a season.
type Fetcher interface {
	Fetch(ctx context.Context, season string) ([]byte, error)
}

// Generator runs fetch, decode, build, render and write as one linear pass.
type Generator struct {
	Fetcher      Fetcher
	Output       string
	Season       string // empty means the season of the run's timestamp
	CalendarName string
	Policy       calendar.Policy
}

// Run generates the calendar file. now is the run's current timestamp: it picks the default
// season and is written as DTSTAMP. Nothing is written unless every earlier step succeeded.
func (g *Generator) Run(ctx context.Context, now time.Time) (model.Schedule, error) {
	schedule, err := g.run(ctx, now.UTC())
	if err != nil {
		metrics.Generations.WithLabelValues(metrics.ResultFailure).Inc()
		return model.Schedule{}, err
	}
	metrics.Generations.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.Events.Set(float64(len(schedule.Events)))
	metrics.SkippedRaces.Set(float64(schedule.Skipped))
	metrics.LastSuccess.Set(float64(now.Unix()))
	return schedule, nil
}

func (g *Generator) run(ctx context.Context, now time.Time) (model.Schedule, error) {
	seasonID := g.Season
	if seasonID == "" {
		seasonID = season.SeasonFor(now)
	}

	fetchStart := time.Now()
	body, err := g.Fetcher.Fetch(ctx, seasonID)
	metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return model.Schedule{}, err
	}

	table, err := season.Decode(body)
	if err != nil {
		return model.Schedule{}, err
	}
	slog.Debug("Decoded race table", "season", seasonID, "races", len(table.Races))

	events, skipped, err := calendar.BuildEvents(table.Races, g.Policy)
	if err != nil {
		return model.Schedule{}, err
	}

	data := calendar.Render(g.CalendarName, events, now)
	if err := calendar.WriteFile(g.Output, []byte(data)); err != nil {
		return model.Schedule{}, err
	}

	slog.Info("Successfully loaded F1 events", "season", seasonID, "events", len(events), "skipped", skipped, "output", g.Output)
	return model.Schedule{
		Season:      seasonID,
		Events:      events,
		Skipped:     skipped,
		GeneratedAt: now,
	}, nil
}
