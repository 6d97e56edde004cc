// Package resolver turns a flight query into a merged result. It finds the
// flight first and then uses the identifiers in that record to look up
// telemetry and weather. Only the flight lookup can fail the resolution.
package resolver

import (
	"context"
	"time"

	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/internal/domain/report"
	"github.com/okian/aeris/pkg/logger"
	"github.com/okian/aeris/pkg/metrics"
)

// Degradation kinds reported to metrics.
const (
	KindTelemetry      = "telemetry"
	KindMETARDeparture = "metar_departure"
	KindMETARArrival   = "metar_arrival"
)

// FlightSource finds the primary flight record.
type FlightSource interface {
	Flight(ctx context.Context, q model.FlightQuery) (*model.FlightRecord, error)
}

// TelemetrySource finds the live state of an aircraft by transponder address.
type TelemetrySource interface {
	State(ctx context.Context, icao24 string) (*model.TelemetryRecord, error)
}

// WeatherSource finds the METAR of an airport by ICAO code.
type WeatherSource interface {
	METAR(ctx context.Context, icao string) (*model.WeatherRecord, error)
}

// Resolver orchestrates the lookups. Calls are made one after another.
type Resolver struct {
	flights   FlightSource
	telemetry TelemetrySource
	weather   WeatherSource
	weatherOn bool
	log       logger.Logger
}

// New builds a Resolver. telemetry may be nil, which skips live positions;
// weather may be nil, which disables METAR lookups.
func New(flights FlightSource, telemetry TelemetrySource, weather WeatherSource, opts ...Option) *Resolver {
	r := &Resolver{
		flights:   flights,
		telemetry: telemetry,
		weather:   weather,
		weatherOn: weather != nil,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.weather == nil {
		r.weatherOn = false
	}
	return r
}

// Resolve looks up the flight and enriches it. A flight lookup error is
// returned unchanged and no partial result is built.
func (r *Resolver) Resolve(ctx context.Context, q model.FlightQuery) (*model.Result, error) {
	start := time.Now()

	if err := q.Validate(); err != nil {
		metrics.RecordResolution(metrics.OutcomeInvalid, elapsedMs(start))
		return nil, err
	}

	r.log.Info(ctx, "Buscando datos generales del vuelo", logger.String("query", q.String()))
	flight, err := r.flights.Flight(ctx, q)
	if err != nil {
		r.log.Warn(ctx, "flight lookup failed", logger.String("query", q.String()), logger.Error(err))
		metrics.RecordResolution(outcome(err), elapsedMs(start))
		return nil, err
	}
	r.log.Info(ctx, "¡Datos generales encontrados!", logger.String("query", q.String()))

	state, stateErr := r.state(ctx, flight)
	var metar *model.METAR
	if r.weatherOn {
		metar = r.metar(ctx, flight)
	}

	metrics.RecordResolution(metrics.OutcomeOK, elapsedMs(start))
	return report.Compose(flight, state, stateErr, metar), nil
}

// state returns (nil, nil) when there is no telemetry source or the record
// has no transponder address.
func (r *Resolver) state(ctx context.Context, flight *model.FlightRecord) (*model.TelemetryRecord, error) {
	if r.telemetry == nil {
		r.log.Debug(ctx, "no telemetry source configured, skipping telemetry")
		return nil, nil
	}
	icao24, ok := flight.ICAO24()
	if !ok {
		r.log.Debug(ctx, "no icao24 on flight record, skipping telemetry")
		return nil, nil
	}

	state, err := r.telemetry.State(ctx, icao24)
	if err != nil {
		r.log.Warn(ctx, "telemetry enrichment degraded", logger.String("icao24", icao24), logger.Error(err))
		metrics.RecordEnrichmentDegraded(KindTelemetry)
		return nil, err
	}
	return state, nil
}

// metar always returns a non-nil METAR so the web payload carries the key.
func (r *Resolver) metar(ctx context.Context, flight *model.FlightRecord) *model.METAR {
	m := &model.METAR{}
	if icao, ok := flight.DepartureICAO(); ok {
		m.Departure = r.leg(ctx, icao, KindMETARDeparture)
	}
	if icao, ok := flight.ArrivalICAO(); ok {
		m.Arrival = r.leg(ctx, icao, KindMETARArrival)
	}
	return m
}

func (r *Resolver) leg(ctx context.Context, icao, kind string) *model.WeatherResult {
	rec, err := r.weather.METAR(ctx, icao)
	if err != nil {
		r.log.Warn(ctx, "weather enrichment degraded", logger.String("icao", icao), logger.String("leg", kind), logger.Error(err))
		metrics.RecordEnrichmentDegraded(kind)
		return &model.WeatherResult{Err: model.Describe(err)}
	}
	return &model.WeatherResult{Record: rec}
}

func outcome(err error) string {
	switch model.KindOf(err) {
	case model.ErrNotFound:
		return metrics.OutcomeNotFound
	case model.ErrConfiguration:
		return metrics.OutcomeConfig
	case model.ErrInvalidQuery:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeUnavailable
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
