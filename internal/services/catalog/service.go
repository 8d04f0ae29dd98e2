package catalog

import (
	"context"

	"checkroute/internal/domain/resolution"
	"checkroute/internal/store/repositories"
	"checkroute/internal/widget"
)

// Service handles read-side catalog operations: resolution history,
// widget metadata and usage counters.
type Service struct {
	resolutionRepo repositories.ResolutionRepository
	registry       *widget.Registry
}

// NewService creates a new catalog service
func NewService(resolutionRepo repositories.ResolutionRepository, registry *widget.Registry) *Service {
	return &Service{
		resolutionRepo: resolutionRepo,
		registry:       registry,
	}
}

// ListResolutions retrieves paginated resolution history for a merchant
func (s *Service) ListResolutions(ctx context.Context, merchantID int64, req ListRequest) (*ResolutionListResponse, error) {
	req.Validate()

	resolutions, err := s.resolutionRepo.FindByMerchantID(ctx, merchantID, req.Limit, req.Offset)
	if err != nil {
		return nil, &ServiceError{Op: "list_resolutions", Err: err}
	}

	return &ResolutionListResponse{
		Resolutions: resolutions,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}, nil
}

// ListWidgets returns metadata for every registered widget integration
func (s *Service) ListWidgets(ctx context.Context) *WidgetListResponse {
	return &WidgetListResponse{
		Widgets: s.registry.AllInfo(),
		Known:   widget.AvailableKinds(),
	}
}

// Usage returns per-widget resolution counts for a merchant
func (s *Service) Usage(ctx context.Context, merchantID int64) (map[string]int64, error) {
	usage, err := s.resolutionRepo.UsageByMerchant(ctx, merchantID)
	if err != nil {
		return nil, &ServiceError{Op: "usage", Err: err}
	}
	return usage, nil
}

// ServiceError represents a catalog service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "catalog service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ResolutionListResponse represents paginated resolution data
type ResolutionListResponse struct {
	Resolutions []*resolution.Resolution `json:"resolutions"`
	Limit       int                      `json:"limit"`
	Offset      int                      `json:"offset"`
}

// WidgetListResponse lists registered integrations plus all kinds the
// router can produce, registered or not.
type WidgetListResponse struct {
	Widgets []*widget.Info `json:"widgets"`
	Known   []widget.Kind  `json:"known_kinds"`
}
