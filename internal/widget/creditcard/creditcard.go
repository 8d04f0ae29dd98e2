// Package creditcard implements the hosted credit-card widget
// integration: direct card entry backed by the checkout collaborator,
// with local tracking of live card sessions.
package creditcard

import (
	"context"
	"sync"
	"time"

	"checkroute/internal/checkout"
	"checkroute/internal/domain/method"
	"checkroute/internal/widget"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Integration forwards lifecycle calls for the card-entry widget
type Integration struct {
	state checkout.State

	mu       sync.Mutex
	sessions map[string]*cardSession // keyed by method id
}

// cardSession tracks one live card-entry session
type cardSession struct {
	ID        string
	StartedAt time.Time
}

// New creates the credit-card integration
func New(state checkout.State) *Integration {
	return &Integration{
		state:    state,
		sessions: make(map[string]*cardSession),
	}
}

// Name returns the integration display name
func (i *Integration) Name() string { return "Hosted Credit Card" }

// Kind returns the widget kind this integration backs
func (i *Integration) Kind() widget.Kind { return widget.KindCreditCard }

// SupportedModalities returns modalities the card widget accepts
func (i *Integration) SupportedModalities() []method.Modality {
	return []method.Modality{method.ModalityCreditCard}
}

// RequiredSettings returns merchant settings for card entry
func (i *Integration) RequiredSettings() []widget.SettingField {
	return []widget.SettingField{
		{
			Name:        "tokenization_key",
			DisplayName: "Tokenization Key",
			Type:        "password",
			Required:    true,
		},
		{
			Name:        "card_networks",
			DisplayName: "Accepted Card Networks",
			Type:        "select",
			Required:    false,
			Options:     []string{"visa", "mastercard", "amex", "discover"},
		},
	}
}

// InitializePayment opens a card-entry session and forwards setup
func (i *Integration) InitializePayment(ctx context.Context, req widget.LifecycleReq) (*widget.LifecycleResp, error) {
	if err := i.state.InitializePayment(ctx, i.options(req)); err != nil {
		return nil, &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     "card payment initialization failed",
			UpstreamErr: err.Error(),
		}
	}

	session := &cardSession{ID: uuid.NewString(), StartedAt: time.Now()}
	i.mu.Lock()
	i.sessions[req.Descriptor.ID] = session
	i.mu.Unlock()

	log.Info().
		Int64("merchant_id", req.MerchantID).
		Str("method_id", req.Descriptor.ID).
		Str("session_id", session.ID).
		Msg("card payment initialized")

	return &widget.LifecycleResp{
		SessionID: session.ID,
		Status:    widget.StatusReady,
	}, nil
}

// DeinitializePayment tears down the card session if one is live
func (i *Integration) DeinitializePayment(ctx context.Context, req widget.LifecycleReq) error {
	i.mu.Lock()
	session, ok := i.sessions[req.Descriptor.ID]
	delete(i.sessions, req.Descriptor.ID)
	i.mu.Unlock()

	if err := i.state.DeinitializePayment(ctx, i.options(req)); err != nil {
		return &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     "card payment teardown failed",
			UpstreamErr: err.Error(),
		}
	}

	if ok {
		log.Debug().
			Str("method_id", req.Descriptor.ID).
			Str("session_id", session.ID).
			Dur("lived", time.Since(session.StartedAt)).
			Msg("card session closed")
	}
	return nil
}

// InitializeCustomer forwards customer setup
func (i *Integration) InitializeCustomer(ctx context.Context, req widget.LifecycleReq) (*widget.LifecycleResp, error) {
	if err := i.state.InitializeCustomer(ctx, i.options(req)); err != nil {
		return nil, &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     "card customer initialization failed",
			UpstreamErr: err.Error(),
		}
	}
	return &widget.LifecycleResp{Status: widget.StatusReady}, nil
}

// DeinitializeCustomer forwards customer teardown
func (i *Integration) DeinitializeCustomer(ctx context.Context, req widget.LifecycleReq) error {
	if err := i.state.DeinitializeCustomer(ctx, i.options(req)); err != nil {
		return &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     "card customer teardown failed",
			UpstreamErr: err.Error(),
		}
	}
	return nil
}

// ActiveSessions reports how many card sessions are live
func (i *Integration) ActiveSessions() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.sessions)
}

func (i *Integration) options(req widget.LifecycleReq) checkout.Options {
	return checkout.Options{
		MethodID:  req.Descriptor.ID,
		GatewayID: req.Descriptor.Gateway,
		Params:    req.Params,
	}
}
