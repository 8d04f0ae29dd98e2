package merchant

import (
	"fmt"
	"strings"
)

// Merchant represents a storefront consuming the routing API
type Merchant struct {
	ID     int64
	Name   string
	Status Status
}

// Status represents merchant status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

// APIKey represents a merchant API key
type APIKey struct {
	ID         int64
	MerchantID int64
	Name       string
	KeyHash    string
	IsActive   bool
}

// NewMerchant creates a new merchant with validation
func NewMerchant(name string) (*Merchant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("merchant name is required")
	}

	if len(name) < 2 || len(name) > 100 {
		return nil, fmt.Errorf("merchant name must be between 2 and 100 characters")
	}

	return &Merchant{
		Name:   name,
		Status: StatusActive,
	}, nil
}

// NewAPIKey creates a new API key with validation
func NewAPIKey(merchantID int64, name, keyHash string) (*APIKey, error) {
	if merchantID <= 0 {
		return nil, fmt.Errorf("invalid merchant ID: %d", merchantID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "default"
	}

	if keyHash == "" {
		return nil, fmt.Errorf("key hash is required")
	}

	return &APIKey{
		MerchantID: merchantID,
		Name:       name,
		KeyHash:    keyHash,
		IsActive:   true,
	}, nil
}

// IsUsable reports whether the merchant may call the API
func (m *Merchant) IsUsable() bool {
	return m.Status == StatusActive
}
