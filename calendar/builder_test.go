package calendar

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"f1calendar/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func race(round, date, clock string) model.Race {
	return model.Race{
		Season:   "2024",
		Round:    round,
		URL:      "https://en.wikipedia.org/wiki/2024_Bahrain_Grand_Prix",
		RaceName: "Bahrain Grand Prix",
		Date:     date,
		Time:     clock,
		Circuit: model.Circuit{
			CircuitID:   "bahrain",
			CircuitName: "Bahrain International Circuit",
			Location: model.Location{
				Lat:      "26.0325",
				Long:     "50.5106",
				Locality: "Sakhir",
				Country:  "Bahrain",
			},
		},
	}
}

func TestBuildEventBahrain(t *testing.T) {
	event, err := BuildEvent(race("1", "2024-03-02", "05:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC), event.StartTime)
	assert.Equal(t, time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC), event.EndTime)
	assert.Equal(t, "Bahrain Grand Prix", event.Summary)
	assert.Equal(t, "Sakhir, Bahrain", event.Location)
	assert.Equal(t, "https://en.wikipedia.org/wiki/2024_Bahrain_Grand_Prix", event.URL)
	assert.Equal(t, EventUID("2024", "1"), event.UID)
}

func TestParseStart(t *testing.T) {
	want := time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC)
	cases := []struct {
		clock string
		ok    bool
	}{
		{"05:00:00Z", true},
		{"05:00:00", true},
		{"05:00:00UTC", true},
		// the designator is consumed, never applied
		{"05:00:00+01:00", true},
		{"05:00:00-0530", true},
		{"05:00:00+03", true},
		{"05:00:00+05:30:00", true},
		{"05:00:00Europe/London", true},
		{"05:00:00.000Z", true},
		{"invalid", false},
		{"", false},
		{"25:00:00Z", false},
		{"05:00:00 Z", false},
		{"05:00:00Z ", false},
		{"05:00", false},
	}
	for _, c := range cases {
		t.Run(c.clock, func(t *testing.T) {
			got, err := ParseStart("2024-03-02", c.clock)
			if !c.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseStart("2024-3-2", "05:00:00Z")
	assert.Error(t, err)
}

func TestEventWindowIsAlwaysTwoHours(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 366*24; h += 7 {
		ts := start.Add(time.Duration(h) * time.Hour)
		r := race(fmt.Sprint(h), ts.Format("2006-01-02"), ts.Format("15:04:05")+"Z")

		event, err := BuildEvent(r)
		require.NoError(t, err)
		require.Equal(t, 2*time.Hour, event.EndTime.Sub(event.StartTime), "race at %s", ts)
		require.True(t, ts.Equal(event.StartTime))
	}
}

func TestLocationFormatting(t *testing.T) {
	cases := []struct {
		locality, country, want string
	}{
		{"Sakhir", "Bahrain", "Sakhir, Bahrain"},
		{"Jeddah", "Saudi Arabia", "Jeddah, Saudi Arabia"},
		{"São Paulo", "Brazil", "São Paulo, Brazil"},
		{"", "", ", "},
	}
	for _, c := range cases {
		r := race("1", "2024-03-02", "05:00:00Z")
		r.Circuit.Location.Locality = c.locality
		r.Circuit.Location.Country = c.country

		event, err := BuildEvent(r)
		require.NoError(t, err)
		assert.Equal(t, c.want, event.Location)
	}
}

func TestBuildEventInvalidTime(t *testing.T) {
	_, err := BuildEvent(race("7", "2024-03-02", "invalid"))

	var parseErr *TimeParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "2024", parseErr.Season)
	assert.Equal(t, "7", parseErr.Round)
	assert.Equal(t, "2024-03-02 invalid", parseErr.Value)
}

func TestBuildEventsKeepsOrder(t *testing.T) {
	races := []model.Race{
		race("3", "2024-03-24", "04:00:00Z"),
		race("1", "2024-03-02", "15:00:00Z"),
		race("2", "2024-03-09", "17:00:00Z"),
	}

	events, skipped, err := BuildEvents(races, PolicyStrict)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, events, 3)
	for i, r := range races {
		assert.Equal(t, EventUID(r.Season, r.Round), events[i].UID)
	}
}

func TestBuildEventsStrictFailsWholeRun(t *testing.T) {
	races := []model.Race{
		race("1", "2024-03-02", "15:00:00Z"),
		race("2", "2024-03-09", "invalid"),
		race("3", "2024-03-24", "04:00:00Z"),
	}

	events, _, err := BuildEvents(races, PolicyStrict)
	var parseErr *TimeParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "2", parseErr.Round)
	assert.Nil(t, events)
}

func TestBuildEventsSkip(t *testing.T) {
	races := []model.Race{
		race("1", "2024-03-02", "15:00:00Z"),
		race("2", "2024-03-09", "invalid"),
		race("3", "2024-03-24", "04:00:00Z"),
	}

	events, skipped, err := BuildEvents(races, PolicySkip)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, events, 2)
	assert.Equal(t, EventUID("2024", "1"), events[0].UID)
	assert.Equal(t, EventUID("2024", "3"), events[1].UID)
}

func TestEventUID(t *testing.T) {
	assert.Equal(t, EventUID("2024", "1"), EventUID("2024", "1"))
	assert.NotEqual(t, EventUID("2024", "1"), EventUID("2024", "2"))
	assert.NotEqual(t, EventUID("2024", "1"), EventUID("2023", "1"))
}
