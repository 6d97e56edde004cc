package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of FlightQuery.Date.
const DateLayout = "2006-01-02"

// FlightQuery selects a flight by number, airport pair, date, or any
// combination of them.
type FlightQuery struct {
	Flight    string // IATA flight number, e.g. "IBE6848"
	Departure string // departure airport IATA code
	Arrival   string // arrival airport IATA code
	Date      string // YYYY-MM-DD
}

// Normalize trims whitespace from every field.
func (q FlightQuery) Normalize() FlightQuery {
	return FlightQuery{
		Flight:    strings.TrimSpace(q.Flight),
		Departure: strings.TrimSpace(q.Departure),
		Arrival:   strings.TrimSpace(q.Arrival),
		Date:      strings.TrimSpace(q.Date),
	}
}

// IsEmpty reports whether no field is populated.
func (q FlightQuery) IsEmpty() bool {
	q = q.Normalize()
	return q.Flight == "" && q.Departure == "" && q.Arrival == "" && q.Date == ""
}

// Validate rejects empty queries and malformed dates.
func (q FlightQuery) Validate() error {
	if q.IsEmpty() {
		return NewProviderError("", ErrInvalidQuery,
			"Debes proporcionar al menos un parámetro de búsqueda (vuelo, salida, llegada o fecha)", nil)
	}
	if d := strings.TrimSpace(q.Date); d != "" {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return NewProviderError("", ErrInvalidQuery,
				fmt.Sprintf("Fecha %q no válida, usa el formato AAAA-MM-DD", d), nil)
		}
	}
	return nil
}

// String renders the populated fields as key=value pairs.
func (q FlightQuery) String() string {
	q = q.Normalize()
	parts := make([]string, 0, 4)
	if q.Flight != "" {
		parts = append(parts, "flight="+q.Flight)
	}
	if q.Departure != "" {
		parts = append(parts, "departure="+q.Departure)
	}
	if q.Arrival != "" {
		parts = append(parts, "arrival="+q.Arrival)
	}
	if q.Date != "" {
		parts = append(parts, "date="+q.Date)
	}
	return strings.Join(parts, " ")
}
