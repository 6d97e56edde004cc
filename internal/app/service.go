// Package service wires configuration, provider clients and the resolver
// into the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/aeris/internal/adapters/provider"
	"github.com/okian/aeris/internal/adapters/provider/aviationstack"
	"github.com/okian/aeris/internal/adapters/provider/checkwx"
	"github.com/okian/aeris/internal/adapters/provider/opensky"
	"github.com/okian/aeris/internal/config"
	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/internal/domain/resolver"
	"github.com/okian/aeris/pkg/logger"
)

// ErrNotStarted is returned by lookups made before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API and CLI dependencies.
type Service struct {
	mu sync.RWMutex

	cfg        *config.Config
	httpClient provider.Doer

	// Sources; built from cfg in Start unless injected.
	flights   resolver.FlightSource
	telemetry resolver.TelemetrySource
	weather   resolver.WeatherSource

	// web resolves with METAR, cli without.
	web *resolver.Resolver
	cli *resolver.Resolver

	started bool

	lookups  atomic.Int64
	failures atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration the provider clients are built from.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithHTTPClient shares one HTTP client between all provider clients.
func WithHTTPClient(d provider.Doer) Option {
	return func(s *Service) {
		if d != nil {
			s.httpClient = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFlightSource replaces the AviationStack client.
func WithFlightSource(src resolver.FlightSource) Option {
	return func(s *Service) { s.flights = src }
}

// WithTelemetrySource replaces the OpenSky client.
func WithTelemetrySource(src resolver.TelemetrySource) Option {
	return func(s *Service) { s.telemetry = src }
}

// WithWeatherSource replaces the CheckWX client.
func WithWeatherSource(src resolver.WeatherSource) Option {
	return func(s *Service) { s.weather = src }
}

// New constructs a Service. Call Start before any lookup.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    config.New(),
		logger: nil, // replaced in Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the provider clients and resolvers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.httpClient == nil {
		s.httpClient = provider.NewHTTPClient(s.cfg.HTTPTimeout)
	}

	if s.flights == nil {
		s.flights = aviationstack.New(
			aviationstack.WithAPIKey(s.cfg.AviationStackAPIKey),
			aviationstack.WithBaseURL(s.cfg.AviationStackBaseURL),
			aviationstack.WithHTTPClient(s.httpClient),
			aviationstack.WithLogger(s.logger.Named(aviationstack.Name)),
		)
	}
	if s.telemetry == nil {
		s.telemetry = opensky.New(
			opensky.WithBaseURL(s.cfg.OpenSkyBaseURL),
			opensky.WithUserAgent(s.cfg.OpenSkyUserAgent),
			opensky.WithHTTPClient(s.httpClient),
			opensky.WithLogger(s.logger.Named(opensky.Name)),
		)
	}
	if s.weather == nil {
		s.weather = checkwx.New(
			checkwx.WithAPIKey(s.cfg.CheckWXAPIKey),
			checkwx.WithBaseURL(s.cfg.CheckWXBaseURL),
			checkwx.WithHTTPClient(s.httpClient),
			checkwx.WithLogger(s.logger.Named(checkwx.Name)),
		)
	}

	// Missing keys fail each request, not startup.
	for _, name := range s.cfg.MissingCredentials() {
		s.logger.Warn(ctx, "provider credential not configured", logger.String("provider", name))
	}

	rlog := s.logger.Named("resolver")
	s.web = resolver.New(s.flights, s.telemetry, s.weather, resolver.WithLogger(rlog))
	s.cli = resolver.New(s.flights, s.telemetry, nil, resolver.WithLogger(rlog))

	s.started = true
	s.logger.Info(ctx, "flight service started",
		logger.Duration("httpTimeout", s.cfg.HTTPTimeout),
		logger.Int("missingCredentials", len(s.cfg.MissingCredentials())),
	)
	return nil
}

// Stop marks the service as stopped. Lookups in flight finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "flight service stopped")
}

// LookupFlight resolves a flight number with telemetry and METAR for both
// airports. This is what the web API serves.
func (s *Service) LookupFlight(ctx context.Context, number string) (*model.Result, error) {
	r, err := s.resolver(true)
	if err != nil {
		return nil, err
	}
	q := model.FlightQuery{Flight: strings.ToUpper(strings.TrimSpace(number))}
	return s.track(r.Resolve(ctx, q))
}

// Search resolves an arbitrary query with telemetry only. This is what the
// CLI prints. The flight number is upper-cased like in LookupFlight.
func (s *Service) Search(ctx context.Context, q model.FlightQuery) (*model.Result, error) {
	r, err := s.resolver(false)
	if err != nil {
		return nil, err
	}
	q = q.Normalize()
	q.Flight = strings.ToUpper(q.Flight)
	return s.track(r.Resolve(ctx, q))
}

func (s *Service) resolver(withWeather bool) (*resolver.Resolver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	if withWeather {
		return s.web, nil
	}
	return s.cli, nil
}

func (s *Service) track(res *model.Result, err error) (*model.Result, error) {
	s.lookups.Add(1)
	if err != nil {
		s.failures.Add(1)
	}
	return res, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	missing := s.cfg.MissingCredentials()
	if missing == nil {
		missing = []string{}
	}
	return map[string]interface{}{
		"started":            s.started,
		"lookups":            s.lookups.Load(),
		"failures":           s.failures.Load(),
		"missingCredentials": missing,
	}
}
