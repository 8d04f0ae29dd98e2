package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"checkroute/internal/domain/method"
	middlewarex "checkroute/internal/http/middleware"
	"checkroute/internal/services/resolve"
	"checkroute/internal/widget"

	"github.com/rs/zerolog/log"
)

type lifecycleReq struct {
	ID      string            `json:"id"`
	Gateway string            `json:"gateway,omitempty"`
	Type    string            `json:"type,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// InitializePayment forwards payment setup through the routed widget
func InitializePayment(resolveService *resolve.Service) http.HandlerFunc {
	return initHandler("payment", func(ctx context.Context, s *resolve.Service, merchantID int64, d method.Descriptor, params map[string]string) (*widget.LifecycleResp, error) {
		return s.InitializePayment(ctx, merchantID, d, params)
	}, resolveService)
}

// InitializeCustomer forwards customer setup through the routed widget
func InitializeCustomer(resolveService *resolve.Service) http.HandlerFunc {
	return initHandler("customer", func(ctx context.Context, s *resolve.Service, merchantID int64, d method.Descriptor, params map[string]string) (*widget.LifecycleResp, error) {
		return s.InitializeCustomer(ctx, merchantID, d, params)
	}, resolveService)
}

// DeinitializePayment forwards payment teardown through the routed widget
func DeinitializePayment(resolveService *resolve.Service) http.HandlerFunc {
	return deinitHandler("payment", func(ctx context.Context, s *resolve.Service, merchantID int64, d method.Descriptor, params map[string]string) error {
		return s.DeinitializePayment(ctx, merchantID, d, params)
	}, resolveService)
}

// DeinitializeCustomer forwards customer teardown through the routed widget
func DeinitializeCustomer(resolveService *resolve.Service) http.HandlerFunc {
	return deinitHandler("customer", func(ctx context.Context, s *resolve.Service, merchantID int64, d method.Descriptor, params map[string]string) error {
		return s.DeinitializeCustomer(ctx, merchantID, d, params)
	}, resolveService)
}

type initFn func(context.Context, *resolve.Service, int64, method.Descriptor, map[string]string) (*widget.LifecycleResp, error)
type deinitFn func(context.Context, *resolve.Service, int64, method.Descriptor, map[string]string) error

func initHandler(target string, fn initFn, resolveService *resolve.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, d, params, ok := parseLifecycle(w, r)
		if !ok {
			return
		}

		// Short, bounded context for the upstream forward
		ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
		defer cancel()

		resp, err := fn(ctx, resolveService, merchantID, d, params)
		if err != nil {
			writeLifecycleError(w, target, merchantID, d, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func deinitHandler(target string, fn deinitFn, resolveService *resolve.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, d, params, ok := parseLifecycle(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
		defer cancel()

		if err := fn(ctx, resolveService, merchantID, d, params); err != nil {
			writeLifecycleError(w, target, merchantID, d, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": widget.StatusTornDown})
	}
}

func parseLifecycle(w http.ResponseWriter, r *http.Request) (int64, method.Descriptor, map[string]string, bool) {
	merchantID, ok := middlewarex.MerchantID(r.Context())
	if !ok {
		http.Error(w, "merchant not found", http.StatusUnauthorized)
		return 0, method.Descriptor{}, nil, false
	}

	var in lifecycleReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return 0, method.Descriptor{}, nil, false
	}

	d, err := method.NewDescriptor(in.ID, in.Gateway, in.Type, in.Method)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, method.Descriptor{}, nil, false
	}

	return merchantID, d, in.Params, true
}

func writeLifecycleError(w http.ResponseWriter, target string, merchantID int64, d method.Descriptor, err error) {
	log.Error().Err(err).
		Int64("merchant_id", merchantID).
		Str("method_id", d.ID).
		Str("target", target).
		Msg("lifecycle call failed")

	var werr *widget.Error
	if errors.As(err, &werr) {
		status := http.StatusBadGateway
		if werr.Code == widget.ErrWidgetNotFound {
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(werr)
		return
	}

	http.Error(w, "lifecycle call failed", http.StatusBadGateway)
}
