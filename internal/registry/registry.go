// Package registry provides a global registry of procedural stage pictures.
// Pattern packages register themselves in init() functions, allowing stage
// catalogs to refer to pictures as "pattern:<name>" without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// Generator draws a picture of the requested size.
type Generator func(w, h int) image.Image

// PatternInfo contains metadata about a registered pattern.
type PatternInfo struct {
	Name  string
	Title string
}

var (
	generators = make(map[string]Generator)
	titles     = make(map[string]string)
	mu         sync.RWMutex
)

// Register adds a pattern generator to the registry.
// Panics if a pattern with the same name is already registered.
func Register(name, title string, g Generator) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := generators[name]; exists {
		panic(fmt.Sprintf("registry: pattern %q already registered", name))
	}
	generators[name] = g
	titles[name] = title
}

// List returns all registered patterns, sorted by name.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(generators))
	for name := range generators {
		result = append(result, PatternInfo{Name: name, Title: titles[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create draws the named pattern at w x h.
func Create(name string, w, h int) (image.Image, error) {
	mu.RLock()
	g, ok := generators[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pattern %q", name)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("registry: invalid size %dx%d for pattern %q", w, h, name)
	}
	return g(w, h), nil
}

// Exists checks if a pattern with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := generators[name]
	return ok
}
