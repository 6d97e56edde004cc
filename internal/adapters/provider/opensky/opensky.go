// Package opensky finds an aircraft in the OpenSky Network state-vector
// snapshot.
package opensky

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/okian/aeris/internal/adapters/provider"
	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/logger"
)

// Name labels this provider in errors, logs and metrics.
const Name = "opensky"

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://opensky-network.org/api"

	// DefaultUserAgent is sent because OpenSky rejects some library agents.
	DefaultUserAgent = "Mozilla/5.0 (compatible; aeris/1.0)"

	msgUnavailable = "Error al conectar con la API de OpenSky"
)

// Positions inside one state vector.
const (
	idxICAO24       = 0
	idxLongitude    = 5
	idxLatitude     = 6
	idxBaroAltitude = 7
	idxOnGround     = 8
	idxVelocity     = 9
	idxTrueTrack    = 10
	idxVerticalRate = 11

	minStateFields = 12
)

// Client reads /states/all.
type Client struct {
	baseURL   string
	userAgent string
	http      provider.Doer
	log       logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(d provider.Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		http:      provider.NewHTTPClient(0),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statesResponse mirrors the JSON shape returned by /states/all.
type statesResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}

// State returns the live state of the aircraft with the given transponder
// address. The whole snapshot is fetched and scanned in order.
func (c *Client) State(ctx context.Context, icao24 string) (rec *model.TelemetryRecord, err error) {
	want := strings.ToLower(strings.TrimSpace(icao24))
	if want == "" {
		return nil, model.NewProviderError(Name, model.ErrInvalidQuery, "Identificador icao24 vacío", nil)
	}

	start := time.Now()
	defer func() { provider.Observe(Name, start, err) }()

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)

	var body statesResponse
	if err := provider.GetJSON(ctx, c.http, c.baseURL+"/states/all", header, &body); err != nil {
		c.log.Warn(ctx, "state snapshot failed", logger.String("icao24", want), logger.Error(err))
		return nil, model.NewProviderError(Name, model.ErrUpstreamUnavailable, msgUnavailable, err)
	}

	c.log.Debug(ctx, "state snapshot received", logger.Int("states", len(body.States)))
	if rec, ok := find(body.States, want); ok {
		return rec, nil
	}
	return nil, model.NewProviderError(Name, model.ErrNotFound,
		"No se encontraron datos de OpenSky para "+strings.TrimSpace(icao24), nil)
}

func find(states [][]any, want string) (*model.TelemetryRecord, bool) {
	for _, s := range states {
		if len(s) < minStateFields {
			continue
		}
		id, _ := s[idxICAO24].(string)
		if strings.ToLower(strings.TrimSpace(id)) != want {
			continue
		}
		return decode(s), true
	}
	return nil, false
}

func decode(s []any) *model.TelemetryRecord {
	onGround, _ := s[idxOnGround].(bool)
	return &model.TelemetryRecord{
		Latitude:           floatVal(s[idxLatitude]),
		Longitude:          floatVal(s[idxLongitude]),
		BaroAltitudeMeters: floatVal(s[idxBaroAltitude]),
		VelocityMPS:        floatVal(s[idxVelocity]),
		TrueTrackDegrees:   floatVal(s[idxTrueTrack]),
		VerticalRateMPS:    floatVal(s[idxVerticalRate]),
		OnGround:           onGround,
	}
}

func floatVal(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
