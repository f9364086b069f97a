package season

import (
	"encoding/json"
	"errors"
	"fmt"

	"f1calendar/model"

	"github.com/tidwall/gjson"
)

const raceTablePath = "MRData.RaceTable"

var (
	ErrInvalidJSON  = errors.New("body is not valid JSON")
	ErrMissingField = errors.New("missing required field")
	ErrWrongType    = errors.New("unexpected type")
)

// Every race must carry all of these as JSON strings.
var requiredRaceFields = []string{
	"season",
	"round",
	"url",
	"raceName",
	"date",
	"time",
	"Circuit.circuitId",
	"Circuit.url",
	"Circuit.circuitName",
	"Circuit.Location.lat",
	"Circuit.Location.long",
	"Circuit.Location.locality",
	"Circuit.Location.country",
}

// Decode extracts MRData.RaceTable from an API response. It is all or nothing:
// one race with a missing or mistyped field fails the whole decode.
func Decode(body []byte) (model.RaceTable, error) {
	if !gjson.ValidBytes(body) {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: "body", Err: ErrInvalidJSON}
	}

	table := gjson.GetBytes(body, raceTablePath)
	if !table.Exists() {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: raceTablePath, Err: ErrMissingField}
	}
	if !table.IsObject() {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: raceTablePath, Err: fmt.Errorf("%w: want object", ErrWrongType)}
	}

	races := table.Get("Races")
	if !races.Exists() {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: raceTablePath + ".Races", Err: ErrMissingField}
	}
	if !races.IsArray() {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: raceTablePath + ".Races", Err: fmt.Errorf("%w: want array", ErrWrongType)}
	}

	for i, race := range races.Array() {
		if !race.IsObject() {
			return model.RaceTable{}, &DecodeError{Index: i, Field: "race", Err: fmt.Errorf("%w: want object", ErrWrongType)}
		}
		for _, path := range requiredRaceFields {
			v := race.Get(path)
			if !v.Exists() {
				return model.RaceTable{}, &DecodeError{Index: i, Field: path, Err: ErrMissingField}
			}
			if v.Type != gjson.String {
				return model.RaceTable{}, &DecodeError{Index: i, Field: path, Err: fmt.Errorf("%w: want string, got %s", ErrWrongType, v.Type)}
			}
		}
	}

	var rt model.RaceTable
	if err := json.Unmarshal([]byte(table.Raw), &rt); err != nil {
		return model.RaceTable{}, &DecodeError{Index: -1, Field: raceTablePath, Err: err}
	}
	return rt, nil
}
