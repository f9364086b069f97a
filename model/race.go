package model

// Race is one entry of MRData.RaceTable.Races as sent by the Ergast API.
type Race struct {
	Season   string  `json:"season"`
	Round    string  `json:"round"`
	URL      string  `json:"url"`
	RaceName string  `json:"raceName"`
	Circuit  Circuit `json:"Circuit"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Time     string  `json:"time"` // HH:MM:SS with a trailing zone, usually Z
}

type Circuit struct {
	CircuitID   string   `json:"circuitId"`
	URL         string   `json:"url"`
	CircuitName string   `json:"circuitName"`
	Location    Location `json:"Location"`
}

type Location struct {
	Lat      string `json:"lat"`
	Long     string `json:"long"`
	Locality string `json:"locality"`
	Country  string `json:"country"`
}

// RaceTable keeps races in API order, which is not guaranteed to be chronological.
type RaceTable struct {
	Season string `json:"season,omitempty"`
	Races  []Race `json:"Races"`
}
