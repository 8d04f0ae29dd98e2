// Package selector maps a payment-method descriptor to the widget that
// should render it. The mapping is a pure function of the descriptor's
// four fields, expressed as an ordered rule chain: rules overlap, so
// evaluation order is observable behavior, not an implementation detail.
package selector

import (
	"checkroute/internal/domain/method"
	"checkroute/internal/widget"
)

// Rule pairs a predicate over the descriptor with the widget to render
// when it matches.
type Rule struct {
	Name   string
	Match  func(method.Descriptor) bool
	Widget widget.Kind
}

// Selector evaluates an ordered rule chain, first match wins
type Selector struct {
	rules []Rule
}

// New returns a selector with the default rule chain
func New() *Selector {
	return &Selector{rules: DefaultRules()}
}

// NewWithRules returns a selector over a custom chain. Callers own the
// ordering; the selector never reorders.
func NewWithRules(rules []Rule) *Selector {
	return &Selector{rules: rules}
}

// Select returns the widget for a descriptor. ok is false when no rule
// matches; that is a valid terminal outcome, not an error.
func (s *Selector) Select(d method.Descriptor) (widget.Kind, bool) {
	kind, _, ok := s.SelectWithRule(d)
	return kind, ok
}

// SelectWithRule additionally reports the name of the winning rule
func (s *Selector) SelectWithRule(d method.Descriptor) (widget.Kind, string, bool) {
	for _, r := range s.rules {
		if r.Match(d) {
			return r.Widget, r.Name, true
		}
	}
	return "", "", false
}

// Rules returns a copy of the chain in evaluation order
func (s *Selector) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
