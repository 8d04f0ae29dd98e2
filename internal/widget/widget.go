package widget

import (
	"context"

	"checkroute/internal/domain/method"
)

// Kind identifies one renderable payment widget
type Kind string

const (
	KindPPSDK      Kind = "ppsdk"
	KindCreditCard Kind = "credit_card"
	KindHosted     Kind = "hosted"

	KindAmazonPay      Kind = "amazon_pay"
	KindAffirm         Kind = "affirm"
	KindBarclaycard    Kind = "barclaycard"
	KindBlueSnapV2     Kind = "bluesnap_v2"
	KindBolt           Kind = "bolt"
	KindKlarna         Kind = "klarna"
	KindMasterpass     Kind = "masterpass"
	KindOpy            Kind = "opy"
	KindPaypalCommerce Kind = "paypal_commerce"
	KindSquareV2       Kind = "square_v2"
	KindStripeV3       Kind = "stripe_v3"
	KindWorldpayAccess Kind = "worldpay_access"
	KindMoneris        Kind = "moneris"
)

// Integration is implemented by every widget backend. Lifecycle calls
// forward to the checkout collaborator; the integration never blocks on
// the checkout finishing its own setup.
type Integration interface {
	Name() string
	Kind() Kind
	SupportedModalities() []method.Modality
	RequiredSettings() []SettingField

	InitializePayment(ctx context.Context, req LifecycleReq) (*LifecycleResp, error)
	DeinitializePayment(ctx context.Context, req LifecycleReq) error
	InitializeCustomer(ctx context.Context, req LifecycleReq) (*LifecycleResp, error)
	DeinitializeCustomer(ctx context.Context, req LifecycleReq) error
}

// SettingField describes a merchant-supplied setting an integration needs
type SettingField struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Type        string   `json:"type"` // text, password, select
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"` // for select fields
}

// LifecycleReq carries a forwarded initialize/deinitialize call
type LifecycleReq struct {
	MerchantID int64             `json:"merchant_id"`
	Descriptor method.Descriptor `json:"descriptor"`
	Params     map[string]string `json:"params,omitempty"`
}

// LifecycleResp is the integration's acknowledgement of a lifecycle call
type LifecycleResp struct {
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// Lifecycle statuses
const (
	StatusInitializing = "initializing"
	StatusReady        = "ready"
	StatusTornDown     = "torn_down"
)

// Error is the typed error returned at the registry boundary
type Error struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	UpstreamErr string `json:"upstream_error,omitempty"`
}

func (e *Error) Error() string {
	if e.UpstreamErr != "" {
		return e.Message + ": " + e.UpstreamErr
	}
	return e.Message
}

// Error codes
const (
	ErrWidgetNotFound       = "widget_not_found"
	ErrOperationUnsupported = "operation_not_supported"
	ErrUpstreamTimeout      = "upstream_timeout"
	ErrUpstreamDown         = "upstream_down"
	ErrInvalidDescriptor    = "invalid_descriptor"
)
