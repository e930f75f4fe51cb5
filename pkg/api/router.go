// Package api wires the HTTP surface: imports, conversation management,
// analysis views and invite administration, all under /v1.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/api/handlers"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
)

// NewRouter assembles the mux router with all application routes. Probe
// and metrics endpoints live at the root; everything else under /v1.
func NewRouter(opts handlers.Options) *mux.Router {
	r := mux.NewRouter()

	// Registered on the router so route matching has happened and the
	// metrics middleware can label by path template, not raw path.
	r.Use(telemetry.Middleware)

	r.HandleFunc("/healthz", handlers.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", telemetry.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	handlers.RegisterImports(v1, opts)
	handlers.RegisterConversations(v1, opts)
	handlers.RegisterAnalysis(v1, opts)
	handlers.RegisterInvites(v1, opts)
	return r
}
