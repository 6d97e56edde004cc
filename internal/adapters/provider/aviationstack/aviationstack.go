// Package aviationstack looks up flight status records from the
// AviationStack flights endpoint.
package aviationstack

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/okian/aeris/internal/adapters/provider"
	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/logger"
)

// Name labels this provider in errors, logs and metrics.
const Name = "aviationstack"

// DefaultBaseURL is the public API root. The free plan is HTTP only.
const DefaultBaseURL = "http://api.aviationstack.com/v1"

const (
	msgMissingKey  = "Clave de API de AviationStack no encontrada."
	msgUnavailable = "Error al conectar con la API externa"
)

// Client queries the flights endpoint. The zero value is not usable; use New.
type Client struct {
	apiKey  string
	baseURL string
	http    provider.Doer
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the access key sent with every request.
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

type flightsResponse struct {
	Data  []model.FlightRecord `json:"data"`
	Error *apiError            `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Flight returns the first record matching q.
func (c *Client) Flight(ctx context.Context, q model.FlightQuery) (rec *model.FlightRecord, err error) {
	if err := q.Validate(); err != nil {
		return nil, withProvider(err)
	}
	if c.apiKey == "" {
		return nil, model.NewProviderError(Name, model.ErrConfiguration, msgMissingKey, nil)
	}

	q = q.Normalize()
	start := time.Now()
	defer func() { provider.Observe(Name, start, err) }()

	var body flightsResponse
	if err := provider.GetJSON(ctx, c.http, c.endpoint(q), nil, &body); err != nil {
		err = provider.Redact(err, c.apiKey)
		c.log.Warn(ctx, "flight lookup failed", logger.String("query", q.String()), logger.Error(err))
		return nil, model.NewProviderError(Name, model.ErrUpstreamUnavailable, msgUnavailable, err)
	}
	if body.Error != nil {
		c.log.Warn(ctx, "flight lookup rejected", logger.String("query", q.String()), logger.Error(body.Error))
		return nil, model.NewProviderError(Name, model.ErrUpstreamUnavailable, msgUnavailable, body.Error)
	}
	if len(body.Data) == 0 {
		return nil, model.NewProviderError(Name, model.ErrNotFound, notFoundMessage(q), nil)
	}

	c.log.Debug(ctx, "flight found", logger.String("query", q.String()))
	return &body.Data[0], nil
}

func (c *Client) endpoint(q model.FlightQuery) string {
	v := url.Values{}
	v.Set("access_key", c.apiKey)
	v.Set("limit", "1")
	if q.Flight != "" {
		v.Set("flight_iata", q.Flight)
	}
	if q.Departure != "" {
		v.Set("dep_iata", q.Departure)
	}
	if q.Arrival != "" {
		v.Set("arr_iata", q.Arrival)
	}
	if q.Date != "" {
		v.Set("flight_date", q.Date)
	}
	return c.baseURL + "/flights?" + v.Encode()
}

func notFoundMessage(q model.FlightQuery) string {
	if q.Flight != "" {
		return "No se encontraron datos para el vuelo " + q.Flight
	}
	return fmt.Sprintf("No se encontraron datos para la búsqueda (%s)", q.String())
}

// withProvider tags a validation error with this provider's name.
func withProvider(err error) error {
	var pe *model.ProviderError
	if errors.As(err, &pe) {
		cp := *pe
		cp.Provider = Name
		return &cp
	}
	return err
}
