package model

import "time"

// Event represents a single race on the generated calendar.
type Event struct {
	UID       string    `json:"uid"`
	Summary   string    `json:"summary"`
	Location  string    `json:"location"`
	URL       string    `json:"url,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"` // always StartTime + 2h
}

// Schedule holds the events produced by one generation run.
type Schedule struct {
	Season      string    `json:"season"`
	Events      []Event   `json:"events"`
	Skipped     int       `json:"skipped,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}
