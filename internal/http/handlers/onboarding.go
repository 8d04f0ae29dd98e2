package handlers

import (
	"encoding/json"
	"net/http"

	"checkroute/internal/services/merchant"
)

// OnboardMerchant handles merchant onboarding. Admin auth is applied by
// the router; the handler only validates and delegates.
func OnboardMerchant(merchantService *merchant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in merchant.OnboardingRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		resp, err := merchantService.Onboard(r.Context(), in)
		if err != nil {
			http.Error(w, "onboarding failed: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
