package command

import "fmt"

// Registry is the ordered table of commands a front end exposes.
type Registry struct {
	specs []Spec
	index map[string]int
}

// NewRegistry creates a registry holding specs in order.
// It panics on a duplicate name.
func NewRegistry(specs ...Spec) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, s := range specs {
		r.Register(s)
	}
	return r
}

// Register appends spec. It panics if the name is empty or already taken.
func (r *Registry) Register(spec Spec) {
	if spec.Name == "" {
		panic("command name must not be empty")
	}
	if spec.Handler == nil {
		panic(fmt.Sprintf("command %s has no handler", spec.Name))
	}
	if _, exists := r.index[spec.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", spec.Name))
	}
	r.index[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)
}

// Lookup returns the spec and whether it exists.
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.index[name]
	if !ok {
		return Spec{}, false
	}
	return r.specs[i], true
}

// Specs returns the commands in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Names returns the command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.Name
	}
	return names
}
