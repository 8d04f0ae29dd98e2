package handlers

import (
	"encoding/json"
	"net/http"

	"checkroute/internal/domain/method"
	middlewarex "checkroute/internal/http/middleware"
	"checkroute/internal/services/resolve"
)

type resolveReq struct {
	ID      string `json:"id"`
	Gateway string `json:"gateway,omitempty"`
	Type    string `json:"type,omitempty"`
	Method  string `json:"method,omitempty"`
}

// Resolve routes a payment-method descriptor to a widget. An unmatched
// descriptor is a 200 with matched=false, never an error.
func Resolve(resolveService *resolve.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, ok := middlewarex.MerchantID(r.Context())
		if !ok {
			http.Error(w, "merchant not found", http.StatusUnauthorized)
			return
		}

		var in resolveReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		d, err := method.NewDescriptor(in.ID, in.Gateway, in.Type, in.Method)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := resolveService.Resolve(r.Context(), merchantID, d)
		if err != nil {
			http.Error(w, "resolve failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}
