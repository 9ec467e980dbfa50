// Package api wires the HTTP surface: chi router, middleware, and the
// tool, audit, and token handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/api/handlers"
	apmiddleware "github.com/mwozniczak/agenttools/internal/api/middleware"
	"github.com/mwozniczak/agenttools/internal/domain/audit"
	"github.com/mwozniczak/agenttools/internal/domain/tool"
	pkgauth "github.com/mwozniczak/agenttools/pkg/auth"
)

// Deps carries the services the router exposes. Recorder and
// Authenticator are optional: without a recorder the audit endpoint is
// absent, without an authenticator /api/v1/* is open.
type Deps struct {
	Registry      *tool.Registry
	Recorder      *audit.Recorder
	Authenticator *pkgauth.Authenticator
	APIKeyHash    string
	Log           zerolog.Logger
}

// NewRouter creates and configures the chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apmiddleware.RequestLogger(deps.Log))
	r.Use(chimw.Recoverer)

	// Health check — unauthenticated, used by load balancers and probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	// Token endpoint — public, exchanges the configured API key for a JWT
	if deps.Authenticator != nil {
		tokenHandler := handlers.NewTokenHandler(deps.Authenticator, deps.APIKeyHash)
		r.Post("/auth/token", tokenHandler.IssueToken)
	}

	toolHandler := handlers.NewToolHandler(deps.Registry)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Authenticator != nil {
			r.Use(apmiddleware.Auth(deps.Authenticator))
		}

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", toolHandler.ListTools)                 // GET /api/v1/tools
			r.Get("/{name}", toolHandler.GetTool)             // GET /api/v1/tools/{name}
			r.Post("/{name}/invoke", toolHandler.InvokeTool)  // POST /api/v1/tools/{name}/invoke
		})

		if deps.Recorder != nil {
			auditHandler := handlers.NewAuditHandler(deps.Recorder)
			r.Get("/invocations", auditHandler.ListInvocations) // GET /api/v1/invocations
		}
	})

	return r
}
