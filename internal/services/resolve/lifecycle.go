package resolve

import (
	"context"
	"fmt"

	"checkroute/internal/domain/method"
	"checkroute/internal/widget"
)

// integrationFor routes the descriptor and returns its backing
// integration. Fails when no rule matches or the kind has no backend.
func (s *Service) integrationFor(d method.Descriptor) (widget.Integration, error) {
	kind, _, matched := s.selector.SelectWithRule(d)
	if !matched {
		return nil, &widget.Error{
			Code:    widget.ErrWidgetNotFound,
			Message: fmt.Sprintf("no widget routes method %s", d.ID),
		}
	}
	return s.registry.Get(kind)
}

// InitializePayment forwards payment setup to the routed integration
func (s *Service) InitializePayment(ctx context.Context, merchantID int64, d method.Descriptor, params map[string]string) (*widget.LifecycleResp, error) {
	integration, err := s.integrationFor(d)
	if err != nil {
		return nil, err
	}
	return integration.InitializePayment(ctx, widget.LifecycleReq{
		MerchantID: merchantID,
		Descriptor: d,
		Params:     params,
	})
}

// DeinitializePayment forwards payment teardown to the routed integration
func (s *Service) DeinitializePayment(ctx context.Context, merchantID int64, d method.Descriptor, params map[string]string) error {
	integration, err := s.integrationFor(d)
	if err != nil {
		return err
	}
	return integration.DeinitializePayment(ctx, widget.LifecycleReq{
		MerchantID: merchantID,
		Descriptor: d,
		Params:     params,
	})
}

// InitializeCustomer forwards customer setup to the routed integration
func (s *Service) InitializeCustomer(ctx context.Context, merchantID int64, d method.Descriptor, params map[string]string) (*widget.LifecycleResp, error) {
	integration, err := s.integrationFor(d)
	if err != nil {
		return nil, err
	}
	return integration.InitializeCustomer(ctx, widget.LifecycleReq{
		MerchantID: merchantID,
		Descriptor: d,
		Params:     params,
	})
}

// DeinitializeCustomer forwards customer teardown to the routed integration
func (s *Service) DeinitializeCustomer(ctx context.Context, merchantID int64, d method.Descriptor, params map[string]string) error {
	integration, err := s.integrationFor(d)
	if err != nil {
		return err
	}
	return integration.DeinitializeCustomer(ctx, widget.LifecycleReq{
		MerchantID: merchantID,
		Descriptor: d,
		Params:     params,
	})
}
