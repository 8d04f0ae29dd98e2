package main

import (
	"context"
	"testing"

	"checkroute/internal/checkout"
	"checkroute/internal/domain/method"
	"checkroute/internal/selector"
	"checkroute/internal/widget"
	"checkroute/internal/widget/creditcard"
	"checkroute/internal/widget/hosted"
)

// noopState satisfies checkout.State without a real upstream
type noopState struct{}

func (noopState) InitializeCustomer(ctx context.Context, opts checkout.Options) error   { return nil }
func (noopState) DeinitializeCustomer(ctx context.Context, opts checkout.Options) error { return nil }
func (noopState) InitializePayment(ctx context.Context, opts checkout.Options) error    { return nil }
func (noopState) DeinitializePayment(ctx context.Context, opts checkout.Options) error  { return nil }
func (noopState) IsPaymentInitializing(methodID string) bool                            { return false }

// TestRoutingIntegration wires the selector and registry together the
// way cmd/api does and checks the full path from descriptor to
// integration.
func TestRoutingIntegration(t *testing.T) {
	state := noopState{}

	registry := widget.NewRegistry()
	registry.Register(creditcard.New(state))
	registry.Register(hosted.New(widget.KindHosted, "Hosted Payment Page", state))
	registry.Register(hosted.New(widget.KindPPSDK, "Payments SDK", state))
	registry.Register(hosted.New(widget.KindKlarna, "Klarna", state))

	sel := selector.New()

	tests := []struct {
		name string
		d    method.Descriptor
		want widget.Kind
	}{
		{"ppsdk type", method.Descriptor{ID: "anything", Type: method.TypePPSDK}, widget.KindPPSDK},
		{"dedicated klarna", method.Descriptor{ID: "klarna"}, widget.KindKlarna},
		{"checkoutcom card", method.Descriptor{ID: "card", Gateway: "checkoutcom"}, widget.KindCreditCard},
		{"paypal modality", method.Descriptor{ID: "x", Method: method.ModalityPaypal}, widget.KindHosted},
		{"card fallback", method.Descriptor{ID: "x", Method: method.ModalityCreditCard}, widget.KindCreditCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := sel.Select(tt.d)
			if !ok || kind != tt.want {
				t.Fatalf("Select(%+v) = (%s, %v), want (%s, true)", tt.d, kind, ok, tt.want)
			}

			integration, err := registry.Get(kind)
			if err != nil {
				t.Fatalf("registry has no backend for %s: %v", kind, err)
			}

			resp, err := integration.InitializePayment(context.Background(), widget.LifecycleReq{
				MerchantID: 1,
				Descriptor: tt.d,
			})
			if err != nil {
				t.Fatalf("InitializePayment through %s: %v", kind, err)
			}
			if resp.Status != widget.StatusReady {
				t.Fatalf("status = %s, want %s", resp.Status, widget.StatusReady)
			}

			if err := integration.DeinitializePayment(context.Background(), widget.LifecycleReq{
				MerchantID: 1,
				Descriptor: tt.d,
			}); err != nil {
				t.Fatalf("DeinitializePayment through %s: %v", kind, err)
			}
		})
	}
}

// TestUnroutedDescriptorIsTerminal checks that a descriptor matching no
// rule yields no widget and no error anywhere in the path.
func TestUnroutedDescriptorIsTerminal(t *testing.T) {
	sel := selector.New()

	kind, ok := sel.Select(method.Descriptor{ID: "giftcertificate", Type: method.TypeOffline})
	if ok {
		t.Fatalf("expected no match, got %s", kind)
	}
}
