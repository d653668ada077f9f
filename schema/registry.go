package schema

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds entity definitions in detection order.
type Registry struct {
	mu       sync.RWMutex
	entities []*Entity
	byName   map[string]*Entity
	bySchema map[string]*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Entity),
		bySchema: make(map[string]*Entity),
	}
}

// Default is the registry loaded from the embedded entity table.
var Default = mustDefault()

func mustDefault() *Registry {
	r := NewRegistry()
	data, err := embedded.ReadFile("entities.yaml")
	if err != nil {
		panic(err)
	}
	if err := r.LoadFromYAML(data); err != nil {
		panic(err)
	}
	return r
}

// Register adds an entity, replacing any entity with the same name while
// keeping its position.
func (r *Registry) Register(e *Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byName[e.Name]; ok {
		for i, x := range r.entities {
			if x == old {
				r.entities[i] = e
			}
		}
		delete(r.bySchema, old.Schema)
	} else {
		r.entities = append(r.entities, e)
	}
	r.byName[e.Name] = e
	r.bySchema[e.Schema] = e
}

// Get retrieves an entity by rule-set name.
func (r *Registry) Get(name string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return e, ok
}

// BySchema retrieves an entity by schema stem.
func (r *Registry) BySchema(stem string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.bySchema[stem]
	return e, ok
}

// Detect returns the first entity whose markers intersect the given 980__a
// values, or the fallback entity.
func (r *Registry) Detect(markers []string) *Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var fallback *Entity
	for _, e := range r.entities {
		if e.IsFallback() {
			fallback = e
			continue
		}
		if e.Matches(markers) {
			return e
		}
	}
	return fallback
}

// List returns the entities in detection order.
func (r *Registry) List() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// EntityConfig is the top-level YAML format.
type EntityConfig struct {
	Version  string   `yaml:"version"`
	Entities []Entity `yaml:"entities"`
}

// LoadFromYAML loads entity definitions from YAML bytes.
func (r *Registry) LoadFromYAML(data []byte) error {
	var config EntityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	for i := range config.Entities {
		e := &config.Entities[i]
		if e.Name == "" || e.Schema == "" {
			return fmt.Errorf("entity %d: name and schema are required", i)
		}
		r.Register(e)
	}
	return nil
}
