package widget

import (
	"fmt"
	"sync"

	"checkroute/internal/domain/method"

	"github.com/rs/zerolog/log"
)

// Registry holds all registered widget integrations
type Registry struct {
	integrations map[Kind]Integration
	mu           sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		integrations: make(map[Kind]Integration),
	}
}

// Register adds an integration to the registry. Re-registering a kind
// replaces the previous integration.
func (r *Registry) Register(integration Integration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.integrations[integration.Kind()] = integration
	log.Info().
		Str("kind", string(integration.Kind())).
		Str("name", integration.Name()).
		Strs("modalities", modalitiesToStrings(integration.SupportedModalities())).
		Msg("registered widget integration")
}

// Get returns the integration for a kind
func (r *Registry) Get(kind Kind) (Integration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	integration, ok := r.integrations[kind]
	if !ok {
		return nil, &Error{
			Code:    ErrWidgetNotFound,
			Message: fmt.Sprintf("widget %s not registered", kind),
		}
	}
	return integration, nil
}

// ListKinds returns all registered widget kinds
func (r *Registry) ListKinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var kinds []Kind
	for k := range r.integrations {
		kinds = append(kinds, k)
	}
	return kinds
}

// Info contains metadata about one registered integration
type Info struct {
	Kind                Kind              `json:"kind"`
	Name                string            `json:"name"`
	SupportedModalities []method.Modality `json:"supported_modalities"`
	RequiredSettings    []SettingField    `json:"required_settings"`
}

// GetInfo returns detailed information about one integration
func (r *Registry) GetInfo(kind Kind) (*Info, error) {
	integration, err := r.Get(kind)
	if err != nil {
		return nil, err
	}

	return &Info{
		Kind:                kind,
		Name:                integration.Name(),
		SupportedModalities: integration.SupportedModalities(),
		RequiredSettings:    integration.RequiredSettings(),
	}, nil
}

// AllInfo returns information about every registered integration
func (r *Registry) AllInfo() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var infos []*Info
	for kind, integration := range r.integrations {
		infos = append(infos, &Info{
			Kind:                kind,
			Name:                integration.Name(),
			SupportedModalities: integration.SupportedModalities(),
			RequiredSettings:    integration.RequiredSettings(),
		})
	}
	return infos
}

// Supports reports whether an integration handles a modality
func (r *Registry) Supports(kind Kind, modality method.Modality) bool {
	integration, err := r.Get(kind)
	if err != nil {
		return false
	}
	for _, m := range integration.SupportedModalities() {
		if m == modality {
			return true
		}
	}
	return false
}

func modalitiesToStrings(mods []method.Modality) []string {
	var strs []string
	for _, m := range mods {
		strs = append(strs, string(m))
	}
	return strs
}
