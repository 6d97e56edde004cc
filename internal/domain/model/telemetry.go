package model

// TelemetryRecord is the live state of one aircraft taken from the global
// state-vector snapshot. Numeric fields are nil when the feed reports null.
type TelemetryRecord struct {
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	BaroAltitudeMeters *float64 `json:"baro_altitude_meters"`
	VelocityMPS        *float64 `json:"velocity_mps"`
	TrueTrackDegrees   *float64 `json:"true_track_degrees"`
	VerticalRateMPS    *float64 `json:"vertical_rate_mps"`
	OnGround           bool     `json:"on_ground"`
}
