package resolver

import "github.com/okian/aeris/pkg/logger"

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for degraded enrichments.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithWeather toggles the METAR enrichment. It is ignored when the resolver
// has no weather source.
func WithWeather(enabled bool) Option {
	return func(r *Resolver) {
		r.weatherOn = enabled
	}
}
