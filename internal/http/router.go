package httpx

import (
	"encoding/json"
	"net/http"

	"checkroute/internal/config"
	"checkroute/internal/http/handlers"
	middlewarex "checkroute/internal/http/middleware"
	"checkroute/internal/services/catalog"
	"checkroute/internal/services/merchant"
	"checkroute/internal/services/resolve"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config          config.Cfg
	MerchantService *merchant.Service
	ResolveService  *resolve.Service
	CatalogService  *catalog.Service
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
		})
	})

	// Admin routes (protected by admin auth)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarex.AdminAuth(deps.Config))

		// Merchant onboarding
		r.Post("/onboard", handlers.OnboardMerchant(deps.MerchantService))
	})

	// API routes (protected by API key auth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.APIKeyAuth(deps.MerchantService))

		// Routing
		r.Post("/resolve", handlers.Resolve(deps.ResolveService))

		// Catalog
		r.Get("/resolutions", handlers.ListResolutions(deps.CatalogService))
		r.Get("/widgets", handlers.ListWidgets(deps.CatalogService))
		r.Get("/usage", handlers.Usage(deps.CatalogService))

		// Widget lifecycle forwarding
		r.Post("/payments/initialize", handlers.InitializePayment(deps.ResolveService))
		r.Post("/payments/deinitialize", handlers.DeinitializePayment(deps.ResolveService))
		r.Post("/customer/initialize", handlers.InitializeCustomer(deps.ResolveService))
		r.Post("/customer/deinitialize", handlers.DeinitializeCustomer(deps.ResolveService))
	})

	return r
}
