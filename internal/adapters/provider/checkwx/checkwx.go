// Package checkwx fetches decoded METAR reports from CheckWX.
package checkwx

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/aeris/internal/adapters/provider"
	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/logger"
)

// Name labels this provider in errors, logs and metrics.
const Name = "checkwx"

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.checkwx.com"

const (
	apiKeyHeader   = "X-API-Key"
	msgMissingKey  = "Clave de API de CheckWX no encontrada."
	msgUnavailable = "Error al conectar con la API de CheckWX"
)

// Client fetches one METAR per call.
type Client struct {
	apiKey  string
	baseURL string
	http    provider.Doer
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
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
		baseURL: DefaultBaseURL,
		http:    provider.NewHTTPClient(0),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type metarResponse struct {
	Results int                   `json:"results"`
	Data    []model.WeatherRecord `json:"data"`
}

// METAR returns the latest decoded report for the airport.
func (c *Client) METAR(ctx context.Context, icao string) (rec *model.WeatherRecord, err error) {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	if icao == "" {
		return nil, model.NewProviderError(Name, model.ErrInvalidQuery, "Código ICAO vacío", nil)
	}
	if c.apiKey == "" {
		return nil, model.NewProviderError(Name, model.ErrConfiguration, msgMissingKey, nil)
	}

	start := time.Now()
	defer func() { provider.Observe(Name, start, err) }()

	endpoint := c.baseURL + "/metar/" + url.PathEscape(icao) + "/decoded"
	header := http.Header{}
	header.Set(apiKeyHeader, c.apiKey)

	var body metarResponse
	if err := provider.GetJSON(ctx, c.http, endpoint, header, &body); err != nil {
		c.log.Warn(ctx, "metar lookup failed", logger.String("icao", icao), logger.Error(err))
		return nil, model.NewProviderError(Name, model.ErrUpstreamUnavailable, msgUnavailable, err)
	}
	if len(body.Data) == 0 {
		return nil, model.NewProviderError(Name, model.ErrNotFound, "No se encontraron datos METAR para "+icao, nil)
	}

	return &body.Data[0], nil
}
