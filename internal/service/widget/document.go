package widget

import (
	"sort"
	"strings"
	"sync"
)

// Document is the render tree of one dashboard: a set of named widget
// containers and the markup currently inserted into each.
type Document struct {
	mu         sync.RWMutex
	containers map[string]*strings.Builder
}

func NewDocument() *Document {
	return &Document{containers: make(map[string]*strings.Builder)}
}

// Register adds an empty container. Registering an existing id keeps its content.
func (d *Document) Register(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.containers[id]; !ok {
		d.containers[id] = &strings.Builder{}
	}
}

// Remove drops a container and its content.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	delete(d.containers, id)
	d.mu.Unlock()
}

func (d *Document) Exists(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.containers[id]
	return ok
}

// Clear empties a container. It reports false if the container does not exist.
func (d *Document) Clear(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.containers[id]
	if !ok {
		return false
	}
	b.Reset()
	return true
}

// Append inserts markup at the end of a container.
func (d *Document) Append(id, markup string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.containers[id]
	if !ok {
		return false
	}
	b.WriteString(markup)
	return true
}

// Replace clears a container and inserts markup as a single step.
func (d *Document) Replace(id, markup string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.containers[id]
	if !ok {
		return false
	}
	b.Reset()
	b.WriteString(markup)
	return true
}

func (d *Document) Content(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.containers[id]
	if !ok {
		return "", false
	}
	return b.String(), true
}

// Containers returns the registered ids in sorted order.
func (d *Document) Containers() []string {
	d.mu.RLock()
	ids := make([]string, 0, len(d.containers))
	for id := range d.containers {
		ids = append(ids, id)
	}
	d.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
