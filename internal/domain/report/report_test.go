package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func flight() *model.FlightRecord {
	return &model.FlightRecord{
		FlightStatus: str("ACTIVE"),
		Departure: &model.Leg{
			Airport:   str("Madrid Barajas"),
			Terminal:  str("4S"),
			Scheduled: str("2024-05-01T16:00:00+00:00"),
			ICAO:      str("LEMD"),
		},
		Arrival: &model.ArrivalLeg{
			Leg:     model.Leg{Airport: str("John F Kennedy International"), Gate: str("B22")},
			Baggage: str("5"),
		},
		Airline: &model.Airline{Name: str("Iberia")},
		Flight:  &model.FlightNumber{IATA: str("IB6848")},
	}
}

func TestHelpers(t *testing.T) {
	Convey("DisplayTime rewrites the separator and the UTC offset", t, func() {
		So(report.DisplayTime("2024-05-01T16:00:00+00:00"), ShouldEqual, "2024-05-01 16:00:00 UTC")
		So(report.DisplayTime("2024-05-01T16:00:00+02:00"), ShouldEqual, "2024-05-01 16:00:00+02:00")
		So(report.DisplayTime("No disponible"), ShouldEqual, "No disponible")
	})

	Convey("KMH multiplies by 3.6 and rounds to two decimals", t, func() {
		So(report.KMH(251.5), ShouldEqual, 905.4)
		So(report.KMH(10.123), ShouldEqual, 36.44)
		So(report.KMH(0), ShouldEqual, 0.0)
	})
}

func TestCompose(t *testing.T) {
	Convey("Given a flight record", t, func() {
		f := flight()

		Convey("When telemetry is present", func() {
			res := report.Compose(f, &model.TelemetryRecord{VelocityMPS: num(1)}, errors.New("ignored"), nil)

			Convey("Then no error marker is set", func() {
				So(res.Telemetry, ShouldNotBeNil)
				So(res.TelemetryError, ShouldBeNil)
				So(res.METAR, ShouldBeNil)
			})
		})

		Convey("When telemetry failed", func() {
			res := report.Compose(f, nil, errors.New("snapshot empty"), &model.METAR{})

			Convey("Then the marker names the cause", func() {
				So(res.TelemetryError.Message, ShouldEqual, "telemetry unavailable: snapshot empty")
				raw, err := json.Marshal(res)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"telemetry_error":{"error":"telemetry unavailable: snapshot empty"}`)
				So(string(raw), ShouldEndWith, `"metar":{}}`)
			})
		})

		Convey("When composed twice from the same inputs", func() {
			metar := &model.METAR{Departure: &model.WeatherResult{Record: &model.WeatherRecord{ICAO: "LEMD"}}}
			a, _ := json.Marshal(report.Compose(f, nil, nil, metar))
			b, _ := json.Marshal(report.Compose(f, nil, nil, metar))

			Convey("Then the encodings are identical", func() {
				So(bytes.Equal(a, b), ShouldBeTrue)
			})
		})
	})
}

func TestText(t *testing.T) {
	Convey("Given a result", t, func() {
		var buf bytes.Buffer

		Convey("When it has telemetry", func() {
			res := report.Compose(flight(), &model.TelemetryRecord{
				Latitude: num(45.2), Longitude: num(-20.1), BaroAltitudeMeters: num(11277.6), VelocityMPS: num(251.5),
			}, nil, nil)
			So(report.Text(&buf, res), ShouldBeNil)
			out := buf.String()

			Convey("Then the summary and sections are printed", func() {
				So(out, ShouldContainSubstring, "Resumen del Vuelo IB6848 - Iberia | Estado: Active")
				So(out, ShouldContainSubstring, "Salida:")
				So(out, ShouldContainSubstring, "Llegada:")
				So(out, ShouldContainSubstring, "Aeropuerto: Madrid Barajas")
				So(out, ShouldContainSubstring, "Terminal: 4S | Puerta: No disponible")
				So(out, ShouldContainSubstring, "Hora Programada: 2024-05-01 16:00:00 UTC")
				So(out, ShouldContainSubstring, "Hora Estimada:   No disponible")
				So(out, ShouldContainSubstring, "Recogida Equipaje: 5")
			})

			Convey("Then the position block is printed in km/h", func() {
				So(out, ShouldContainSubstring, "Datos de Posicionamiento en Vivo (OpenSky):\n")
				So(out, ShouldContainSubstring, "Latitud: 45.2 | Longitud: -20.1")
				So(out, ShouldContainSubstring, "Altitud: 11277.6 metros")
				So(out, ShouldContainSubstring, "Velocidad: 905.4 km/h")
			})

			Convey("Then no escape codes are written to a buffer", func() {
				So(strings.Contains(out, "\x1b["), ShouldBeFalse)
			})
		})

		Convey("When telemetry and status are missing", func() {
			f := flight()
			f.FlightStatus = nil
			f.Arrival = nil
			So(report.Text(&buf, report.Compose(f, nil, errors.New("x"), nil)), ShouldBeNil)
			out := buf.String()

			Convey("Then placeholders are used", func() {
				So(out, ShouldContainSubstring, "Estado: Desconocido")
				So(out, ShouldContainSubstring, "Recogida Equipaje: No disponible")
				So(out, ShouldContainSubstring, "Datos de Posicionamiento en Vivo (OpenSky): No disponibles")
				So(out, ShouldNotContainSubstring, "METAR")
			})
		})

		Convey("When weather is attached", func() {
			metar := &model.METAR{
				Departure: &model.WeatherResult{Record: &model.WeatherRecord{ICAO: "LEMD", RawText: "LEMD 011600Z 22008KT CAVOK 24/06 Q1016"}},
				Arrival:   &model.WeatherResult{Err: &model.ErrorDescriptor{Message: "No se encontraron datos METAR para KJFK"}},
			}
			So(report.Text(&buf, report.Compose(flight(), nil, nil, metar)), ShouldBeNil)
			out := buf.String()

			Convey("Then both legs are listed", func() {
				So(out, ShouldContainSubstring, "Salida: LEMD 011600Z 22008KT CAVOK 24/06 Q1016")
				So(out, ShouldContainSubstring, "Llegada: No se encontraron datos METAR para KJFK")
			})
		})
	})
}
