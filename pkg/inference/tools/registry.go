package tools

import (
	"fmt"
	"sync"
)

// Registry manages available tools with thread-safe operations.
type Registry interface {
	Register(name string, def Definition) error
	Get(name string) (*Definition, error)
	List() []Definition
	Has(name string) bool
	Count() int
}

// InMemoryRegistry is a thread-safe in-memory implementation of Registry.
type InMemoryRegistry struct {
	mu    sync.RWMutex
	tools map[string]Definition
}

// NewInMemoryRegistry creates a new in-memory tool registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{tools: make(map[string]Definition)}
}

// Register registers a new tool in the registry.
func (r *InMemoryRegistry) Register(name string, def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Name != "" && def.Name != name {
		return fmt.Errorf("tool definition name (%s) does not match registry name (%s)", def.Name, name)
	}
	def.Name = name
	r.tools[name] = def
	return nil
}

// Get retrieves a tool by name.
func (r *InMemoryRegistry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	// Return a copy to prevent external modifications
	toolCopy := tool
	return &toolCopy, nil
}

// List returns all registered tools.
func (r *InMemoryRegistry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Definition, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	return tools
}

// Has checks if a tool exists in the registry.
func (r *InMemoryRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tools[name]
	return exists
}

// Count returns the number of tools in the registry.
func (r *InMemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}
