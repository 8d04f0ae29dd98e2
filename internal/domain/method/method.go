package method

import (
	"fmt"
	"strings"
)

// Descriptor describes one payment method offered to a checkout session.
// It is immutable once built; routing decisions are a pure function of
// its four fields.
type Descriptor struct {
	ID      string
	Gateway string
	Type    ProviderType
	Method  Modality
}

// ProviderType categorizes how the checkout integrates with the method
type ProviderType string

const (
	TypePPSDK   ProviderType = "ppsdk"
	TypeHosted  ProviderType = "hosted"
	TypeAPI     ProviderType = "api"
	TypeOffline ProviderType = "offline"
)

// Modality is the payment instrument class, independent of gateway
type Modality string

const (
	ModalityCreditCard   Modality = "credit-card"
	ModalityPaypal       Modality = "paypal"
	ModalityPaypalCredit Modality = "paypal-credit"
	ModalityMultiOption  Modality = "multi-option"
)

// NewDescriptor builds a normalized descriptor. ID is required; gateway,
// type and modality may be empty and are carried through as-is after
// normalization.
func NewDescriptor(id, gateway, providerType, modality string) (Descriptor, error) {
	id = normalize(id)
	if id == "" {
		return Descriptor{}, fmt.Errorf("method id is required")
	}

	return Descriptor{
		ID:      id,
		Gateway: normalize(gateway),
		Type:    ProviderType(normalize(providerType)),
		Method:  Modality(normalize(modality)),
	}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UniqueKey identifies a descriptor for caching and logging. Two
// descriptors with the same four fields route identically.
func (d Descriptor) UniqueKey() string {
	return d.ID + "|" + d.Gateway + "|" + string(d.Type) + "|" + string(d.Method)
}
