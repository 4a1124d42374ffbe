package completion

import (
	"sort"

	"github.com/samber/lo"
)

// RegisteredSpec pairs a command name with its completion spec.
type RegisteredSpec struct {
	Command string
	Spec    CompSpec
}

// SpecRegistry stores the completion specs registered with `complete`.
type SpecRegistry struct {
	specs map[string]CompSpec
}

// NewSpecRegistry creates a new SpecRegistry.
func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{
		specs: make(map[string]CompSpec),
	}
}

// AddSpec adds or replaces the spec for a command.
func (r *SpecRegistry) AddSpec(command string, spec CompSpec) {
	r.specs[command] = spec
}

// RemoveSpec removes the spec for a command.
func (r *SpecRegistry) RemoveSpec(command string) {
	delete(r.specs, command)
}

// GetSpec retrieves the spec for a command.
func (r *SpecRegistry) GetSpec(command string) (CompSpec, bool) {
	spec, ok := r.specs[command]
	return spec, ok
}

// ListSpecs returns all registered specs sorted by command name.
func (r *SpecRegistry) ListSpecs() []RegisteredSpec {
	specs := lo.MapToSlice(r.specs, func(command string, spec CompSpec) RegisteredSpec {
		return RegisteredSpec{Command: command, Spec: spec}
	})
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Command < specs[j].Command
	})
	return specs
}
