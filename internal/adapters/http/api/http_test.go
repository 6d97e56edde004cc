package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/okian/aeris/internal/adapters/http/api"
	service "github.com/okian/aeris/internal/app"
	"github.com/okian/aeris/internal/config"
	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

type mockDependencies struct {
	res    *model.Result
	err    error
	asked  []string
	gotRID string
}

func (m *mockDependencies) LookupFlight(ctx context.Context, number string) (*model.Result, error) {
	m.asked = append(m.asked, number)
	m.gotRID = logger.RequestID(ctx)
	return m.res, m.err
}

type mockStatsProvider struct{}

func (mockStatsProvider) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "lookups": 3}
}

func newRouter(deps api.Dependencies) *mux.Router {
	r := mux.NewRouter()
	api.NewServer(deps, mockStatsProvider{}).Register(context.Background(), r)
	return r
}

func serve(h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API router", t, func() {
		deps := &mockDependencies{res: &model.Result{Flight: &model.FlightRecord{}}}
		r := newRouter(deps)

		Convey("Then /healthz reports ok", func() {
			w := serve(r, http.MethodGet, "/healthz", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"status":"ok"}`)
		})

		Convey("Then /metrics exposes the gateway metrics", func() {
			_ = serve(r, http.MethodGet, "/healthz", nil)
			w := serve(r, http.MethodGet, "/metrics", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "aeris_gateway_http_requests_total")
		})

		Convey("Then /stats returns the provider's numbers", func() {
			w := serve(r, http.MethodGet, "/stats", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["lookups"], ShouldEqual, 3.0)
		})

		Convey("Then other methods are rejected", func() {
			w := serve(r, http.MethodPost, "/api/flight/IBE6848", nil)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(deps.asked, ShouldBeEmpty)
		})

		Convey("Then every response carries a request ID", func() {
			w := serve(r, http.MethodGet, "/api/flight/IBE6848", nil)
			So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			So(deps.gotRID, ShouldEqual, w.Header().Get(api.RequestIDHeader))
		})

		Convey("Then an incoming request ID is kept", func() {
			w := serve(r, http.MethodGet, "/api/flight/IBE6848", http.Header{api.RequestIDHeader: {"abc-123"}})
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			So(deps.gotRID, ShouldEqual, "abc-123")
		})
	})
}

func TestFlightHandler_HandleGetFlight(t *testing.T) {
	Convey("Given the flight endpoint", t, func() {
		deps := &mockDependencies{}
		r := newRouter(deps)

		Convey("When the lookup succeeds", func() {
			status := "active"
			deps.res = &model.Result{
				Flight: &model.FlightRecord{FlightStatus: &status},
				METAR:  &model.METAR{},
			}
			w := serve(r, http.MethodGet, "/api/flight/IBE6848", nil)

			Convey("Then the result is returned with 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.asked, ShouldResemble, []string{"IBE6848"})
				So(w.Body.String(), ShouldContainSubstring, `"flight_status":"active"`)
				So(w.Body.String(), ShouldContainSubstring, `"metar":{}`)
			})
		})

		Convey("When the lookup fails", func() {
			deps.err = model.NewProviderError("aviationstack", model.ErrUpstreamUnavailable,
				"Error al conectar con la API externa", errors.New("dial tcp: refused"))
			w := serve(r, http.MethodGet, "/api/flight/IBE6848", nil)

			Convey("Then the message is returned with 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body, ShouldResemble, map[string]string{
					"error": "Error al conectar con la API externa: dial tcp: refused",
				})
			})
		})
	})
}

// fakeUpstream serves AviationStack and CheckWX for the end-to-end scenarios.
func fakeUpstream(flights string) *httptest.Server {
	m := http.NewServeMux()
	m.HandleFunc("/as/flights", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flights))
	})
	m.HandleFunc("/wx/metar/", func(w http.ResponseWriter, r *http.Request) {
		icao := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/wx/metar/"), "/decoded")
		_, _ = w.Write([]byte(`{"results":1,"data":[{"icao":"` + icao + `","raw_text":"` + icao + ` 011620Z AUTO"}]}`))
	})
	m.HandleFunc("/sky/states/all", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"time":1,"states":[]}`))
	})
	return httptest.NewServer(m)
}

func startService(base string) *service.Service {
	cfg := config.New()
	cfg.AviationStackAPIKey = "k"
	cfg.AviationStackBaseURL = base + "/as"
	cfg.CheckWXAPIKey = "k"
	cfg.CheckWXBaseURL = base + "/wx"
	cfg.OpenSkyBaseURL = base + "/sky"
	svc := service.New(service.WithConfig(cfg))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestFlightEndpointEndToEnd(t *testing.T) {
	Convey("Given the API backed by the real service and fake providers", t, func() {

		Convey("When the flight is unknown", func() {
			up := fakeUpstream(`{"data":[]}`)
			defer up.Close()
			svc := startService(up.URL)
			defer svc.Stop()

			w := serve(newRouter(svc), http.MethodGet, "/api/flight/IBE6848", nil)

			Convey("Then the error document is returned with 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual,
					`{"error":"No se encontraron datos para el vuelo IBE6848"}`)
			})
		})

		Convey("When the flight has both ICAO codes", func() {
			up := fakeUpstream(`{"data":[{"flight_status":"scheduled",
"departure":{"icao":"EDDF"},"arrival":{"icao":"KJFK"},
"aircraft":{"icao24":"3c4b26"}}]}`)
			defer up.Close()
			svc := startService(up.URL)
			defer svc.Stop()

			w := serve(newRouter(svc), http.MethodGet, "/api/flight/LH400", nil)

			Convey("Then both METAR legs come from the weather provider", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					METAR struct {
						Departure map[string]any `json:"departure"`
						Arrival   map[string]any `json:"arrival"`
					} `json:"metar"`
					Telemetry      map[string]any    `json:"telemetry"`
					TelemetryError map[string]string `json:"telemetry_error"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.METAR.Departure["icao"], ShouldEqual, "EDDF")
				So(body.METAR.Arrival["icao"], ShouldEqual, "KJFK")
				So(body.Telemetry, ShouldBeNil)
				So(body.TelemetryError["error"], ShouldStartWith, "telemetry unavailable")
			})

			Convey("And a repeated request gives the same bytes", func() {
				again := serve(newRouter(svc), http.MethodGet, "/api/flight/LH400", nil)
				So(again.Body.String(), ShouldEqual, w.Body.String())
			})
		})
	})
}
