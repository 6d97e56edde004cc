package model

import (
	"errors"
)

// Sentinel kinds shared by every provider and the resolver. Callers match
// them with errors.Is regardless of which provider produced the failure.
var (
	ErrInvalidQuery        = errors.New("invalid flight query")
	ErrConfiguration       = errors.New("configuration error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrNotFound            = errors.New("not found")
)

// ProviderError carries a user-facing message together with its kind and the
// underlying cause.
type ProviderError struct {
	Provider string // e.g. "aviationstack", "checkwx", "opensky"
	Kind     error  // one of the sentinel kinds above
	Message  string
	Err      error
}

// NewProviderError builds a ProviderError. An empty message falls back to the
// kind's text.
func NewProviderError(provider string, kind error, message string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Message: message, Err: cause}
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ProviderError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports the sentinel kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidQuery, ErrConfiguration, ErrUpstreamUnavailable, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
