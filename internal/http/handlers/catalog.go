package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	middlewarex "checkroute/internal/http/middleware"
	"checkroute/internal/services/catalog"
)

// ListResolutions handles resolution-history listing for a merchant
func ListResolutions(catalogService *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := middlewarex.MerchantID(r.Context())
		if !ok {
			http.Error(w, "merchant not found", http.StatusUnauthorized)
			return
		}

		req := parseListRequest(r)

		response, err := catalogService.ListResolutions(r.Context(), merchantID, req)
		if err != nil {
			if serviceErr, ok := err.(*catalog.ServiceError); ok {
				http.Error(w, "failed to list resolutions: "+serviceErr.Error(), http.StatusInternalServerError)
			} else {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}

// ListWidgets returns registered integrations and known widget kinds
func ListWidgets(catalogService *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(catalogService.ListWidgets(r.Context()))
	}
}

// Usage returns per-widget resolution counters for a merchant
func Usage(catalogService *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := middlewarex.MerchantID(r.Context())
		if !ok {
			http.Error(w, "merchant not found", http.StatusUnauthorized)
			return
		}

		usage, err := catalogService.Usage(r.Context(), merchantID)
		if err != nil {
			http.Error(w, "failed to load usage", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"usage": usage})
	}
}

// parseListRequest parses HTTP query parameters into ListRequest
func parseListRequest(r *http.Request) catalog.ListRequest {
	req := catalog.ListRequest{}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Offset = n
		}
	}

	return req
}
