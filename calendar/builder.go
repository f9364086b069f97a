package calendar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"f1calendar/model"

	"github.com/google/uuid"
)

// EventDuration is the fixed length of every race event. Actual race length is not modeled.
const EventDuration = 2 * time.Hour

const startLayout = "2006-01-02 15:04:05"

// Policy decides what BuildEvents does with a race whose start cannot be parsed.
type Policy int

const (
	// PolicyStrict fails the whole build on the first bad race.
	PolicyStrict Policy = iota
	// PolicySkip logs the race's season and round and leaves it out.
	PolicySkip
)

// ParseStart combines an API date ("2024-03-02") and time ("05:00:00Z") into a UTC instant.
// Any trailing zone designator without whitespace ("Z", "+01:00", "Europe/London") is
// accepted but never applied: the wall clock is always read as UTC.
func ParseStart(date, clock string) (time.Time, error) {
	combined := date + " " + clock
	if len(combined) < len(startLayout) {
		return time.Time{}, fmt.Errorf("%q does not match %q", combined, startLayout)
	}

	naive, zone := combined[:len(startLayout)], combined[len(startLayout):]
	if strings.ContainsFunc(zone, unicode.IsSpace) {
		return time.Time{}, fmt.Errorf("unrecognised zone designator %q", zone)
	}

	t, err := time.ParseInLocation(startLayout, naive, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// EventUID is stable for a given season and round so calendar clients update events in place.
func EventUID(season, round string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("f1calendar:"+season+"/"+round)).String()
}

// BuildEvent converts one race into a calendar event.
func BuildEvent(race model.Race) (model.Event, error) {
	start, err := ParseStart(race.Date, race.Time)
	if err != nil {
		return model.Event{}, &TimeParseError{
			Season: race.Season,
			Round:  race.Round,
			Value:  race.Date + " " + race.Time,
			Err:    err,
		}
	}

	loc := race.Circuit.Location
	return model.Event{
		UID:       EventUID(race.Season, race.Round),
		Summary:   race.RaceName,
		Location:  fmt.Sprintf("%s, %s", loc.Locality, loc.Country),
		URL:       race.URL,
		StartTime: start,
		EndTime:   start.Add(EventDuration),
	}, nil
}

// BuildEvents converts races in order. It returns the events and how many races were skipped,
// which is always zero under PolicyStrict.
func BuildEvents(races []model.Race, policy Policy) ([]model.Event, int, error) {
	events := make([]model.Event, 0, len(races))
	skipped := 0
	for _, race := range races {
		event, err := BuildEvent(race)
		if err != nil {
			if policy != PolicySkip {
				return nil, 0, err
			}
			slog.Warn("Skipping race with unparseable start", "season", race.Season, "round", race.Round, "race", race.RaceName, "error", err)
			skipped++
			continue
		}
		events = append(events, event)
	}
	return events, skipped, nil
}
