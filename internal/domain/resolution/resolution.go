package resolution

import (
	"fmt"
	"time"

	"checkroute/internal/domain/method"

	"github.com/google/uuid"
)

// Resolution records one routing decision made for a merchant: which
// widget (if any) was chosen for a descriptor, and by which rule.
type Resolution struct {
	ID               int64
	MerchantID       int64
	TraceID          string
	MethodID         string
	Gateway          string
	Type             string
	Modality         string
	WidgetKind       string
	Rule             string
	Matched          bool
	CreatedAt        time.Time
	ProcessedAt      *time.Time
	ProcessingStatus ProcessingStatus
}

// ProcessingStatus represents the stats-worker processing status
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingQueued    ProcessingStatus = "queued"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// New creates a resolution record with validation. An unmatched
// descriptor is a valid outcome and recorded with an empty widget kind.
func New(merchantID int64, d method.Descriptor, widgetKind, rule string, matched bool) (*Resolution, error) {
	if merchantID <= 0 {
		return nil, fmt.Errorf("invalid merchant ID: %d", merchantID)
	}
	if matched && widgetKind == "" {
		return nil, fmt.Errorf("matched resolution requires a widget kind")
	}
	if !matched && widgetKind != "" {
		return nil, fmt.Errorf("unmatched resolution cannot carry widget kind %q", widgetKind)
	}

	return &Resolution{
		MerchantID:       merchantID,
		TraceID:          uuid.NewString(),
		MethodID:         d.ID,
		Gateway:          d.Gateway,
		Type:             string(d.Type),
		Modality:         string(d.Method),
		WidgetKind:       widgetKind,
		Rule:             rule,
		Matched:          matched,
		CreatedAt:        time.Now(),
		ProcessingStatus: ProcessingPending,
	}, nil
}

// UpdateProcessingStatus moves the record through the worker pipeline
func (r *Resolution) UpdateProcessingStatus(status ProcessingStatus) error {
	if !r.CanChangeStatus(status) {
		return fmt.Errorf("cannot change status from %s to %s", r.ProcessingStatus, status)
	}

	r.ProcessingStatus = status

	if status == ProcessingCompleted || status == ProcessingFailed {
		now := time.Now()
		r.ProcessedAt = &now
	}

	return nil
}

// CanChangeStatus reports whether a status transition is legal
func (r *Resolution) CanChangeStatus(target ProcessingStatus) bool {
	switch r.ProcessingStatus {
	case ProcessingPending:
		return target == ProcessingQueued || target == ProcessingCompleted || target == ProcessingFailed
	case ProcessingQueued:
		return target == ProcessingCompleted || target == ProcessingFailed
	case ProcessingFailed:
		return target == ProcessingQueued
	default:
		return false
	}
}

// Descriptor rebuilds the routed descriptor from the stored fields
func (r *Resolution) Descriptor() method.Descriptor {
	return method.Descriptor{
		ID:      r.MethodID,
		Gateway: r.Gateway,
		Type:    method.ProviderType(r.Type),
		Method:  method.Modality(r.Modality),
	}
}
