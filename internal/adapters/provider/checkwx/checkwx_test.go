package checkwx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/okian/aeris/internal/adapters/provider/checkwx"
	"github.com/okian/aeris/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const eddf = `{"results":1,"data":[{
"icao":"EDDF","raw_text":"EDDF 011620Z 24012KT 9999 FEW035 18/09 Q1014 NOSIG",
"observed":"2024-05-01T16:20:00","flight_category":"VFR",
"station":{"name":"Frankfurt am Main"},
"wind":{"degrees":240,"speed_kts":12,"speed_kph":22},
"visibility":{"miles":"Greater than 10 miles","meters":"10,000+ meters"},
"temperature":{"celsius":18,"fahrenheit":64},
"dewpoint":{"celsius":9,"fahrenheit":48},
"barometer":{"hg":29.94,"hpa":1014},
"humidity":{"percent":56},
"clouds":[{"code":"FEW","text":"Few","feet":3500,"base_feet_agl":3500}]}]}`

func newServer(hits *atomic.Int32, gotKey *atomic.Value, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotKey.Store(r.Header.Get("X-API-Key"))
		if r.URL.Path != "/metar/EDDF/decoded" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"results":0,"data":[]}`))
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestClientMETAR(t *testing.T) {
	Convey("Given a CheckWX client backed by a test server", t, func() {
		ctx := context.Background()
		var hits atomic.Int32
		var gotKey atomic.Value

		Convey("When the station reports", func() {
			srv := newServer(&hits, &gotKey, http.StatusOK, eddf)
			defer srv.Close()
			c := checkwx.New(checkwx.WithAPIKey("wx-key"), checkwx.WithBaseURL(srv.URL))

			rec, err := c.METAR(ctx, " eddf ")

			Convey("Then the decoded report is returned", func() {
				So(err, ShouldBeNil)
				So(rec.ICAO, ShouldEqual, "EDDF")
				So(rec.FlightCategory, ShouldEqual, "VFR")
				So(*rec.Wind.Degrees, ShouldEqual, 240)
				So(*rec.Temperature.Celsius, ShouldEqual, 18.0)
				So(rec.Clouds, ShouldHaveLength, 1)
				So(rec.Clouds[0].Code, ShouldEqual, "FEW")
			})

			Convey("And the key travels in the header", func() {
				So(gotKey.Load(), ShouldEqual, "wx-key")
			})
		})

		Convey("When the station has no report", func() {
			srv := newServer(&hits, &gotKey, http.StatusOK, eddf)
			defer srv.Close()
			c := checkwx.New(checkwx.WithAPIKey("wx-key"), checkwx.WithBaseURL(srv.URL))

			_, err := c.METAR(ctx, "XXXX")

			Convey("Then it is not found", func() {
				So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "No se encontraron datos METAR para XXXX")
			})
		})

		Convey("When the key is missing", func() {
			srv := newServer(&hits, &gotKey, http.StatusOK, eddf)
			defer srv.Close()
			c := checkwx.New(checkwx.WithBaseURL(srv.URL))

			_, err := c.METAR(ctx, "EDDF")

			Convey("Then no request is made", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "Clave de API de CheckWX no encontrada.")
				So(hits.Load(), ShouldEqual, 0)
			})
		})

		Convey("When the ICAO code is blank", func() {
			c := checkwx.New(checkwx.WithAPIKey("wx-key"))

			_, err := c.METAR(ctx, "  ")

			Convey("Then the query is invalid", func() {
				So(errors.Is(err, model.ErrInvalidQuery), ShouldBeTrue)
			})
		})

		Convey("When the service rejects the key", func() {
			srv := newServer(&hits, &gotKey, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
			defer srv.Close()
			c := checkwx.New(checkwx.WithAPIKey("bad"), checkwx.WithBaseURL(srv.URL))

			_, err := c.METAR(ctx, "EDDF")

			Convey("Then it is reported as unavailable", func() {
				So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "Error al conectar con la API de CheckWX: ")
			})
		})
	})
}

const kjfk = `{"results":1,"data":[{
"icao":"KJFK","raw_text":"KJFK 011651Z 19015G22KT 3SM -RA BR OVC008 14/13 A2990",
"observed":"2024-05-01T16:51:00","flight_category":"IFR",
"station":{"name":"John F Kennedy International Airport","location":"New York, NY, USA","type":"Airport",
"geometry":{"type":"Point","coordinates":[-73.779317,40.639447]}},
"elevation":{"feet":13,"meters":3.96},
"ceiling":{"code":"OVC","text":"Overcast","feet":800,"meters":244,"base_feet_agl":800,"base_meters_agl":243.84},
"conditions":[{"code":"-RA","text":"Light Rain"},{"code":"BR","text":"Mist"}],
"wind":{"degrees":190,"speed_kph":28,"speed_kts":15,"speed_mph":17,"speed_mps":7.72,"gust_kph":41,"gust_kts":22,"gust_mph":25,"gust_mps":11.32},
"clouds":[{"code":"OVC","text":"Overcast","feet":800,"meters":244,"base_feet_agl":800,"base_meters_agl":243.84}]}]}`

func TestClientMETAR_FullReport(t *testing.T) {
	Convey("Given a station report with every decoded group", t, func() {
		var hits atomic.Int32
		var gotKey atomic.Value
		srv := newServer(&hits, &gotKey, http.StatusOK, kjfk)
		defer srv.Close()
		c := checkwx.New(checkwx.WithAPIKey("wx-key"), checkwx.WithBaseURL(srv.URL))

		rec, err := c.METAR(context.Background(), "KJFK")
		So(err, ShouldBeNil)

		Convey("Then ceiling, conditions and elevation are decoded", func() {
			So(rec.Ceiling.Code, ShouldEqual, "OVC")
			So(*rec.Ceiling.Meters, ShouldEqual, 244.0)
			So(rec.Conditions, ShouldResemble, []model.Condition{
				{Code: "-RA", Text: "Light Rain"},
				{Code: "BR", Text: "Mist"},
			})
			So(*rec.Elevation.Meters, ShouldEqual, 3.96)
			So(rec.Station.Geometry.Coordinates, ShouldResemble, []float64{-73.779317, 40.639447})
			So(*rec.Wind.SpeedMps, ShouldEqual, 7.72)
			So(*rec.Clouds[0].Meters, ShouldEqual, 244.0)
		})

		Convey("Then re-encoding keeps every group of the upstream report", func() {
			out, err := json.Marshal(rec)
			So(err, ShouldBeNil)

			var got, want map[string]any
			So(json.Unmarshal(out, &got), ShouldBeNil)
			var body struct {
				Data []map[string]any `json:"data"`
			}
			So(json.Unmarshal([]byte(kjfk), &body), ShouldBeNil)
			want = body.Data[0]
			So(got, ShouldResemble, want)
		})
	})
}
