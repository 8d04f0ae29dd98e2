package resolve

import (
	"context"

	"checkroute/internal/cache"
	"checkroute/internal/checkout"
	"checkroute/internal/domain/method"
	"checkroute/internal/domain/resolution"
	"checkroute/internal/selector"
	"checkroute/internal/store/repositories"
	"checkroute/internal/widget"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DecisionCache is the optional read-through cache for routing decisions
type DecisionCache interface {
	Get(ctx context.Context, d method.Descriptor) (cache.Decision, bool)
	Set(ctx context.Context, d method.Descriptor, dec cache.Decision)
}

// Service routes descriptors to widgets and records each decision
type Service struct {
	selector       *selector.Selector
	registry       *widget.Registry
	resolutionRepo repositories.ResolutionRepository
	cache          DecisionCache
	state          checkout.State
}

// NewService creates a resolve service. cache may be nil.
func NewService(sel *selector.Selector, registry *widget.Registry, resolutionRepo repositories.ResolutionRepository, decisionCache DecisionCache, state checkout.State) *Service {
	return &Service{
		selector:       sel,
		registry:       registry,
		resolutionRepo: resolutionRepo,
		cache:          decisionCache,
		state:          state,
	}
}

// Result is the outcome of one routing request. Matched=false is a
// valid outcome: the descriptor simply has no widget.
type Result struct {
	TraceID        string       `json:"trace_id"`
	Matched        bool         `json:"matched"`
	WidgetKind     widget.Kind  `json:"widget_kind,omitempty"`
	Rule           string       `json:"rule,omitempty"`
	Integration    *widget.Info `json:"integration,omitempty"`
	IsInitializing bool         `json:"is_initializing"`
}

// Resolve routes a descriptor for a merchant. The selection itself
// cannot fail; only recording the decision can.
func (s *Service) Resolve(ctx context.Context, merchantID int64, d method.Descriptor) (*Result, error) {
	kind, rule, matched := s.lookup(ctx, d)

	res, err := resolution.New(merchantID, d, string(kind), rule, matched)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build resolution record")
	}
	if err := s.resolutionRepo.Save(ctx, res); err != nil {
		return nil, errors.Wrap(err, "failed to record resolution")
	}

	result := &Result{
		TraceID:        res.TraceID,
		Matched:        matched,
		WidgetKind:     kind,
		Rule:           rule,
		IsInitializing: s.state.IsPaymentInitializing(d.ID),
	}

	if matched {
		// Integration metadata is best-effort: the selector can hand
		// out kinds this deployment has no backend for.
		if info, err := s.registry.GetInfo(kind); err == nil {
			result.Integration = info
		}
	}

	log.Debug().
		Int64("merchant_id", merchantID).
		Str("method_id", d.ID).
		Str("widget_kind", string(kind)).
		Str("rule", rule).
		Bool("matched", matched).
		Msg("descriptor resolved")

	return result, nil
}

// lookup consults the cache before running the rule chain
func (s *Service) lookup(ctx context.Context, d method.Descriptor) (widget.Kind, string, bool) {
	if s.cache != nil {
		if dec, ok := s.cache.Get(ctx, d); ok {
			return widget.Kind(dec.WidgetKind), dec.Rule, dec.Matched
		}
	}

	kind, rule, matched := s.selector.SelectWithRule(d)

	if s.cache != nil {
		s.cache.Set(ctx, d, cache.Decision{
			WidgetKind: string(kind),
			Rule:       rule,
			Matched:    matched,
		})
	}
	return kind, rule, matched
}
