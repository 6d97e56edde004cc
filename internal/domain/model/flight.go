// Package model contains domain models passed between layers.
package model

import "strings"

// FlightRecord mirrors one element of the flight-data provider's data array.
// Optional values are pointers so a provider null survives a re-encode.
type FlightRecord struct {
	FlightDate   *string       `json:"flight_date"`
	FlightStatus *string       `json:"flight_status"`
	Departure    *Leg          `json:"departure"`
	Arrival      *ArrivalLeg   `json:"arrival"`
	Airline      *Airline      `json:"airline"`
	Flight       *FlightNumber `json:"flight"`
	Aircraft     *Aircraft     `json:"aircraft"`
	Live         *Live         `json:"live"`
}

// Leg describes one end of the flight.
type Leg struct {
	Airport         *string `json:"airport"`
	Timezone        *string `json:"timezone"`
	IATA            *string `json:"iata"`
	ICAO            *string `json:"icao"`
	Terminal        *string `json:"terminal"`
	Gate            *string `json:"gate"`
	Delay           *int    `json:"delay"`
	Scheduled       *string `json:"scheduled"`
	Estimated       *string `json:"estimated"`
	Actual          *string `json:"actual"`
	EstimatedRunway *string `json:"estimated_runway"`
	ActualRunway    *string `json:"actual_runway"`
}

// ArrivalLeg adds the baggage claim to a Leg.
type ArrivalLeg struct {
	Leg
	Baggage *string `json:"baggage"`
}

// Airline identifies the operating carrier.
type Airline struct {
	Name *string `json:"name"`
	IATA *string `json:"iata"`
	ICAO *string `json:"icao"`
}

// FlightNumber holds the commercial identifiers of the flight.
type FlightNumber struct {
	Number     *string    `json:"number"`
	IATA       *string    `json:"iata"`
	ICAO       *string    `json:"icao"`
	Codeshared *Codeshare `json:"codeshared"`
}

// Codeshare names the marketing carrier when the flight is operated by another.
type Codeshare struct {
	AirlineName  *string `json:"airline_name"`
	AirlineIATA  *string `json:"airline_iata"`
	AirlineICAO  *string `json:"airline_icao"`
	FlightNumber *string `json:"flight_number"`
	FlightIATA   *string `json:"flight_iata"`
	FlightICAO   *string `json:"flight_icao"`
}

// Aircraft identifies the airframe. ICAO24 is the transponder address.
type Aircraft struct {
	Registration *string `json:"registration"`
	IATA         *string `json:"iata"`
	ICAO         *string `json:"icao"`
	ICAO24       *string `json:"icao24"`
}

// Live is the provider's own (often empty) position block.
type Live struct {
	Updated         *string  `json:"updated"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Altitude        *float64 `json:"altitude"`
	Direction       *float64 `json:"direction"`
	SpeedHorizontal *float64 `json:"speed_horizontal"`
	SpeedVertical   *float64 `json:"speed_vertical"`
	IsGround        *bool    `json:"is_ground"`
}

// ICAO24 returns the aircraft transponder address, if the record has one.
func (r *FlightRecord) ICAO24() (string, bool) {
	if r == nil || r.Aircraft == nil {
		return "", false
	}
	return nonEmpty(r.Aircraft.ICAO24)
}

// DepartureICAO returns the departure airport's ICAO code, if known.
func (r *FlightRecord) DepartureICAO() (string, bool) {
	if r == nil || r.Departure == nil {
		return "", false
	}
	return nonEmpty(r.Departure.ICAO)
}

// ArrivalICAO returns the arrival airport's ICAO code, if known.
func (r *FlightRecord) ArrivalICAO() (string, bool) {
	if r == nil || r.Arrival == nil {
		return "", false
	}
	return nonEmpty(r.Arrival.ICAO)
}

func nonEmpty(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	s := strings.TrimSpace(*p)
	return s, s != ""
}
