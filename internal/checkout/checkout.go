// Package checkout abstracts the external checkout-state service that
// owns payment and customer lifecycle. The routing service only forwards
// lifecycle calls and queries initialization status; it never awaits the
// checkout's own setup work.
package checkout

import "context"

// Options carries the parameters of one forwarded lifecycle call
type Options struct {
	MethodID  string            `json:"method_id"`
	GatewayID string            `json:"gateway_id,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// State is the injected checkout collaborator
type State interface {
	InitializeCustomer(ctx context.Context, opts Options) error
	DeinitializeCustomer(ctx context.Context, opts Options) error
	InitializePayment(ctx context.Context, opts Options) error
	DeinitializePayment(ctx context.Context, opts Options) error
	IsPaymentInitializing(methodID string) bool
}
