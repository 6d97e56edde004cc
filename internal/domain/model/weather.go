package model

// WeatherRecord is a decoded METAR report for one airport.
type WeatherRecord struct {
	ICAO           string       `json:"icao"`
	RawText        string       `json:"raw_text,omitempty"`
	Observed       string       `json:"observed,omitempty"`
	FlightCategory string       `json:"flight_category,omitempty"`
	Station        *Station     `json:"station,omitempty"`
	Elevation      *Elevation   `json:"elevation,omitempty"`
	Ceiling        *Cloud       `json:"ceiling,omitempty"`
	Conditions     []Condition  `json:"conditions,omitempty"`
	Wind           *Wind        `json:"wind,omitempty"`
	Visibility     *Visibility  `json:"visibility,omitempty"`
	Temperature    *Temperature `json:"temperature,omitempty"`
	Dewpoint       *Temperature `json:"dewpoint,omitempty"`
	Barometer      *Barometer   `json:"barometer,omitempty"`
	Humidity       *Humidity    `json:"humidity,omitempty"`
	Clouds         []Cloud      `json:"clouds,omitempty"`
}

type Station struct {
	Name     string    `json:"name,omitempty"`
	Location string    `json:"location,omitempty"`
	Type     string    `json:"type,omitempty"`
	Geometry *Geometry `json:"geometry,omitempty"`
}

// Geometry is a GeoJSON point; Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type Elevation struct {
	Feet   *float64 `json:"feet,omitempty"`
	Meters *float64 `json:"meters,omitempty"`
}

// Condition is one present-weather group, e.g. {"code":"RA","text":"Rain"}.
type Condition struct {
	Code string `json:"code"`
	Text string `json:"text,omitempty"`
}

type Wind struct {
	Degrees  *int `json:"degrees,omitempty"`
	SpeedKts *int `json:"speed_kts,omitempty"`
	SpeedKph *int `json:"speed_kph,omitempty"`
	GustKts  *int `json:"gust_kts,omitempty"`
	GustKph  *int `json:"gust_kph,omitempty"`

	SpeedMph *float64 `json:"speed_mph,omitempty"`
	SpeedMps *float64 `json:"speed_mps,omitempty"`
	GustMph  *float64 `json:"gust_mph,omitempty"`
	GustMps  *float64 `json:"gust_mps,omitempty"`
}

type Visibility struct {
	Miles       string   `json:"miles,omitempty"`
	MilesFloat  *float64 `json:"miles_float,omitempty"`
	Meters      string   `json:"meters,omitempty"`
	MetersFloat *float64 `json:"meters_float,omitempty"`
}

type Temperature struct {
	Celsius    *float64 `json:"celsius,omitempty"`
	Fahrenheit *float64 `json:"fahrenheit,omitempty"`
}

type Barometer struct {
	Hg  *float64 `json:"hg,omitempty"`
	Hpa *float64 `json:"hpa,omitempty"`
	Kpa *float64 `json:"kpa,omitempty"`
	Mb  *float64 `json:"mb,omitempty"`
}

type Humidity struct {
	Percent *float64 `json:"percent,omitempty"`
}

// Cloud is one reported cloud layer, e.g. {"code":"BKN","feet":2500}.
// The ceiling uses the same shape.
type Cloud struct {
	Code          string   `json:"code"`
	Text          string   `json:"text,omitempty"`
	Feet          *float64 `json:"feet,omitempty"`
	Meters        *float64 `json:"meters,omitempty"`
	BaseFeetAGL   *float64 `json:"base_feet_agl,omitempty"`
	BaseMetersAGL *float64 `json:"base_meters_agl,omitempty"`
}
