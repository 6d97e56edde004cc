// Package report assembles resolution results and renders them for people.
package report

import (
	"math"
	"strings"

	"github.com/okian/aeris/internal/domain/model"
)

// TelemetryUnavailable prefixes the marker set when a telemetry lookup was
// attempted and failed.
const TelemetryUnavailable = "telemetry unavailable"

// Compose builds the result for a resolved flight. telemetryErr is only
// consulted when telemetry is nil. A nil metar leaves the key out entirely.
func Compose(flight *model.FlightRecord, telemetry *model.TelemetryRecord, telemetryErr error, metar *model.METAR) *model.Result {
	res := &model.Result{Flight: flight, METAR: metar}
	switch {
	case telemetry != nil:
		res.Telemetry = telemetry
	case telemetryErr != nil:
		res.TelemetryError = &model.ErrorDescriptor{Message: TelemetryUnavailable + ": " + telemetryErr.Error()}
	}
	return res
}

// DisplayTime makes a provider timestamp readable:
// "2024-05-01T16:00:00+00:00" becomes "2024-05-01 16:00:00 UTC".
func DisplayTime(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "T", " "), "+00:00", " UTC")
}

// KMH converts metres per second to kilometres per hour, rounded to two
// decimals.
func KMH(mps float64) float64 {
	return math.Round(mps*3.6*100) / 100
}
