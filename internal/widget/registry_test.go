package widget

import (
	"context"
	"errors"
	"testing"

	"checkroute/internal/domain/method"
)

// stubIntegration is a minimal Integration for registry tests
type stubIntegration struct {
	kind Kind
	name string
}

func (s *stubIntegration) Name() string      { return s.name }
func (s *stubIntegration) Kind() Kind        { return s.kind }
func (s *stubIntegration) SupportedModalities() []method.Modality {
	return []method.Modality{method.ModalityCreditCard}
}
func (s *stubIntegration) RequiredSettings() []SettingField { return nil }
func (s *stubIntegration) InitializePayment(ctx context.Context, req LifecycleReq) (*LifecycleResp, error) {
	return &LifecycleResp{Status: StatusReady}, nil
}
func (s *stubIntegration) DeinitializePayment(ctx context.Context, req LifecycleReq) error {
	return nil
}
func (s *stubIntegration) InitializeCustomer(ctx context.Context, req LifecycleReq) (*LifecycleResp, error) {
	return &LifecycleResp{Status: StatusReady}, nil
}
func (s *stubIntegration) DeinitializeCustomer(ctx context.Context, req LifecycleReq) error {
	return nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubIntegration{kind: KindHosted, name: "Hosted"})

	got, err := r.Get(KindHosted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name() != "Hosted" {
		t.Fatalf("Name() = %s, want Hosted", got.Name())
	}

	kinds := r.ListKinds()
	if len(kinds) != 1 || kinds[0] != KindHosted {
		t.Fatalf("ListKinds() = %v, want [hosted]", kinds)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(KindBolt)
	if err == nil {
		t.Fatal("expected error for missing widget")
	}

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *widget.Error, got %T", err)
	}
	if werr.Code != ErrWidgetNotFound {
		t.Fatalf("Code = %s, want %s", werr.Code, ErrWidgetNotFound)
	}
}

func TestRegistry_Info(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubIntegration{kind: KindCreditCard, name: "Cards"})

	info, err := r.GetInfo(KindCreditCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Kind != KindCreditCard || info.Name != "Cards" {
		t.Fatalf("unexpected info: %+v", info)
	}

	all := r.AllInfo()
	if len(all) != 1 {
		t.Fatalf("AllInfo() returned %d entries, want 1", len(all))
	}
}

func TestRegistry_Supports(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubIntegration{kind: KindCreditCard, name: "Cards"})

	if !r.Supports(KindCreditCard, method.ModalityCreditCard) {
		t.Fatal("expected credit-card modality to be supported")
	}
	if r.Supports(KindCreditCard, method.ModalityPaypal) {
		t.Fatal("paypal modality should not be supported")
	}
	if r.Supports(KindBolt, method.ModalityCreditCard) {
		t.Fatal("unregistered kind should support nothing")
	}
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubIntegration{kind: KindHosted, name: "Old"})
	r.Register(&stubIntegration{kind: KindHosted, name: "New"})

	got, err := r.Get(KindHosted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name() != "New" {
		t.Fatalf("Name() = %s, want New", got.Name())
	}
	if len(r.ListKinds()) != 1 {
		t.Fatal("re-registering must not duplicate the kind")
	}
}

func TestIsKnownKind(t *testing.T) {
	for _, k := range AvailableKinds() {
		if !IsKnownKind(k) {
			t.Fatalf("kind %s should be known", k)
		}
	}
	if IsKnownKind(Kind("made_up")) {
		t.Fatal("made_up should not be a known kind")
	}
}
