// Package hosted implements the redirect-style widget integration. One
// Integration instance backs every kind whose widget is a hosted
// redirect page: the generic hosted widget plus the dedicated
// per-provider kinds, which differ only in display name.
package hosted

import (
	"context"
	"fmt"

	"checkroute/internal/checkout"
	"checkroute/internal/domain/method"
	"checkroute/internal/widget"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Integration forwards lifecycle calls for hosted-redirect widgets
type Integration struct {
	kind  widget.Kind
	name  string
	state checkout.State
}

// New creates a hosted integration for one widget kind
func New(kind widget.Kind, name string, state checkout.State) *Integration {
	return &Integration{kind: kind, name: name, state: state}
}

// Name returns the integration display name
func (i *Integration) Name() string { return i.name }

// Kind returns the widget kind this integration backs
func (i *Integration) Kind() widget.Kind { return i.kind }

// SupportedModalities returns the modalities a hosted redirect can carry
func (i *Integration) SupportedModalities() []method.Modality {
	return []method.Modality{
		method.ModalityCreditCard,
		method.ModalityPaypal,
		method.ModalityPaypalCredit,
		method.ModalityMultiOption,
	}
}

// RequiredSettings returns merchant settings needed for hosted redirects
func (i *Integration) RequiredSettings() []widget.SettingField {
	return []widget.SettingField{
		{
			Name:        "return_url",
			DisplayName: "Return URL",
			Type:        "text",
			Required:    true,
		},
		{
			Name:        "cancel_url",
			DisplayName: "Cancel URL",
			Type:        "text",
			Required:    false,
		},
	}
}

// InitializePayment forwards payment setup to the checkout collaborator
func (i *Integration) InitializePayment(ctx context.Context, req widget.LifecycleReq) (*widget.LifecycleResp, error) {
	if err := i.state.InitializePayment(ctx, i.options(req)); err != nil {
		return nil, &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     fmt.Sprintf("%s payment initialization failed", i.name),
			UpstreamErr: err.Error(),
		}
	}

	sessionID := uuid.NewString()
	log.Info().
		Str("kind", string(i.kind)).
		Int64("merchant_id", req.MerchantID).
		Str("method_id", req.Descriptor.ID).
		Str("session_id", sessionID).
		Msg("hosted payment initialized")

	return &widget.LifecycleResp{
		SessionID: sessionID,
		Status:    widget.StatusReady,
	}, nil
}

// DeinitializePayment forwards payment teardown
func (i *Integration) DeinitializePayment(ctx context.Context, req widget.LifecycleReq) error {
	if err := i.state.DeinitializePayment(ctx, i.options(req)); err != nil {
		return &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     fmt.Sprintf("%s payment teardown failed", i.name),
			UpstreamErr: err.Error(),
		}
	}
	return nil
}

// InitializeCustomer forwards customer setup
func (i *Integration) InitializeCustomer(ctx context.Context, req widget.LifecycleReq) (*widget.LifecycleResp, error) {
	if err := i.state.InitializeCustomer(ctx, i.options(req)); err != nil {
		return nil, &widget.Error{
			Code:        widget.ErrUpstreamDown,
			Message:     fmt.Sprintf("%s customer initialization failed", i.name),
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
			Message:     fmt.Sprintf("%s customer teardown failed", i.name),
			UpstreamErr: err.Error(),
		}
	}
	return nil
}

func (i *Integration) options(req widget.LifecycleReq) checkout.Options {
	return checkout.Options{
		MethodID:  req.Descriptor.ID,
		GatewayID: req.Descriptor.Gateway,
		Params:    req.Params,
	}
}
