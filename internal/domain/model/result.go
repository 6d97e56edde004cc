package model

import (
	"bytes"
	"encoding/json"
)

// ErrorDescriptor stands in for an enrichment that could not be produced.
type ErrorDescriptor struct {
	Message string `json:"error"`
}

// Describe turns err into an ErrorDescriptor. A nil error yields nil.
func Describe(err error) *ErrorDescriptor {
	if err == nil {
		return nil
	}
	return &ErrorDescriptor{Message: err.Error()}
}

// Result is the merged response for one query.
type Result struct {
	Flight         *FlightRecord    `json:"flight"`
	Telemetry      *TelemetryRecord `json:"telemetry,omitempty"`
	TelemetryError *ErrorDescriptor `json:"telemetry_error,omitempty"`
	METAR          *METAR           `json:"metar,omitempty"`
}

// METAR groups the weather of both ends of the flight. A leg is nil when the
// flight record carries no ICAO code for it.
type METAR struct {
	Departure *WeatherResult `json:"departure,omitempty"`
	Arrival   *WeatherResult `json:"arrival,omitempty"`
}

// WeatherResult is either a report or the reason it is missing. It encodes as
// whichever of the two is set.
type WeatherResult struct {
	Record *WeatherRecord
	Err    *ErrorDescriptor
}

// Available reports whether the leg carries a report.
func (w *WeatherResult) Available() bool {
	return w != nil && w.Record != nil && w.Err == nil
}

func (w WeatherResult) MarshalJSON() ([]byte, error) {
	if w.Err != nil {
		return json.Marshal(w.Err)
	}
	return json.Marshal(w.Record)
}

func (w *WeatherResult) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*w = WeatherResult{}
		return nil
	}
	var head struct {
		Message *string `json:"error"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.Message != nil {
		*w = WeatherResult{Err: &ErrorDescriptor{Message: *head.Message}}
		return nil
	}
	var rec WeatherRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*w = WeatherResult{Record: &rec}
	return nil
}
