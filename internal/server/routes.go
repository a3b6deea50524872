package server

import (
	"log/slog"
	"net/http"

	"planet-designer/internal/auth"
	"planet-designer/internal/live"
	"planet-designer/internal/middleware"
	"planet-designer/internal/planet"
	planetHandlers "planet-designer/internal/planet/handlers"
	"planet-designer/internal/preset"
	presetHandlers "planet-designer/internal/preset/handlers"
	serverHandlers "planet-designer/internal/server/handlers"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/cookies"
	"planet-designer/internal/shared/database"
	"planet-designer/internal/shared/metrics"
)

type Routes struct {
	cfg           *config.Config
	db            *database.DB
	planetService *planet.Service
	catalog       *preset.Catalog
	tokens        *auth.TokenIssuer
	metrics       *metrics.Collector
}

func NewRoutes(cfg *config.Config, db *database.DB, planetService *planet.Service, catalog *preset.Catalog, tokens *auth.TokenIssuer, m *metrics.Collector) *Routes {
	return &Routes{
		cfg:           cfg,
		db:            db,
		planetService: planetService,
		catalog:       catalog,
		tokens:        tokens,
		metrics:       m,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService, cookies.FromConfig(r.cfg))
	presetHandler := presetHandlers.NewPresetHandler(r.catalog)
	liveHandler := live.NewHandler(r.planetService, r.metrics, r.cfg.Live, r.cfg.Frontend.URL)
	requireEditToken := middleware.RequireEditToken(r.tokens)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/planets/evaluate", planetHandler.Evaluate)
	mux.HandleFunc("/api/planets/validate", planetHandler.Validate)
	mux.HandleFunc("/api/presets", presetHandler.List)
	mux.HandleFunc("/api/presets/{name}", presetHandler.Get)
	mux.Handle("GET /api/live", liveHandler)

	// Saved designs
	mux.HandleFunc("POST /api/designs", planetHandler.CreateDesign)
	mux.HandleFunc("GET /api/designs", planetHandler.ListDesigns)
	mux.HandleFunc("GET /api/designs/{id}", planetHandler.GetDesign)
	mux.HandleFunc("GET /api/designs/{id}/report", planetHandler.GetDesignReport)

	// Edit-token protected endpoints
	mux.Handle("PUT /api/designs/{id}", requireEditToken(http.HandlerFunc(planetHandler.UpdateDesign)))
	mux.Handle("DELETE /api/designs/{id}", requireEditToken(http.HandlerFunc(planetHandler.DeleteDesign)))

	if r.cfg.Metrics.Enabled {
		mux.Handle("GET "+r.cfg.Metrics.Path, r.metrics.Handler())
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/planets/evaluate", "/api/planets/validate", "/api/presets", "/api/live"},
		"design_endpoints", []string{"/api/designs", "/api/designs/{id}", "/api/designs/{id}/report"},
		"protected_endpoints", []string{"PUT /api/designs/{id}", "DELETE /api/designs/{id}"},
		"metrics_enabled", r.cfg.Metrics.Enabled,
	)

	return mux
}
