// Package site serves the embedded landing page.
package site

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Register attaches the landing page at /. It catches every path not
// claimed earlier, so register it after the API routes.
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.PathPrefix("/").Handler(NewRootHandler()).Methods(http.MethodGet, http.MethodHead)
}

// RootHandler serves the embedded static files.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
