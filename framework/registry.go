package framework

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Loader resolves a container name to its definition.
type Loader interface {
	Load(name string) (*Container, error)
}

// LoadError is returned by Registry.Load when a name resolves to no container, or to more
// than one.
type LoadError struct {
	Name       string
	Candidates []string
}

func (e *LoadError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no test container is registered as %q", e.Name)
	}
	return fmt.Sprintf("%q is ambiguous; it could be any of: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// Registry holds container definitions by qualified name. It is safe for concurrent use.
type Registry struct {
	containers map[string]*Container
	mu         sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{containers: make(map[string]*Container)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the registry that ContainerBuilder.Register adds to.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func (r *Registry) Register(c *Container) error {
	if c == nil {
		return fmt.Errorf("cannot register a nil container")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.containers[c.Name()]; ok {
		return fmt.Errorf("test container %s is already registered", c.Name())
	}
	r.containers[c.Name()] = c
	return nil
}

func (r *Registry) MustRegister(c *Container) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Load finds a container by its qualified name or, failing that, by a suffix of it that
// starts at a path or package boundary, such as "examples.CalculatorTest" or
// "CalculatorTest". A suffix matching more than one container is an error.
func (r *Registry) Load(name string) (*Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.containers[name]; ok {
		return c, nil
	}
	var matches []string
	for qualified := range r.containers {
		if matchesSuffix(qualified, name) {
			matches = append(matches, qualified)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &LoadError{Name: name}
	case 1:
		return r.containers[matches[0]], nil
	}
	sort.Strings(matches)
	return nil, &LoadError{Name: name, Candidates: matches}
}

// Has reports whether name resolves to exactly one container.
func (r *Registry) Has(name string) bool {
	_, err := r.Load(name)
	return err == nil
}

// Names returns the qualified names of all registered containers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.containers))
	for name := range r.containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func matchesSuffix(qualified, name string) bool {
	if name == "" || !strings.HasSuffix(qualified, name) {
		return false
	}
	rest := qualified[:len(qualified)-len(name)]
	return rest == "" || strings.HasSuffix(rest, ".") || strings.HasSuffix(rest, "/")
}
