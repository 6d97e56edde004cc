package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/okian/aeris/pkg/logger"
)

// FlightHandler serves merged flight lookups.
type FlightHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewFlightHandler creates a new flight handler.
func NewFlightHandler(deps Dependencies, log logger.Logger) *FlightHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FlightHandler{deps: deps, log: log}
}

// HandleGetFlight handles GET /api/flight/{flightNumber}. Any failure of the
// flight lookup itself is a 500 carrying the message; enrichment failures are
// embedded in a 200 body.
func (h *FlightHandler) HandleGetFlight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	number := strings.TrimSpace(mux.Vars(r)["flightNumber"])

	h.log.Info(ctx, "flight lookup requested", logger.String("flight", number))
	res, err := h.deps.LookupFlight(ctx, number)
	if err != nil {
		h.log.Warn(ctx, "flight lookup failed", logger.String("flight", number), logger.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
