// Package ifindex assigns the stable ifIndex values shared by every
// interface-keyed table.
package ifindex

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned for names that are not present after a fresh
// enumeration.
var ErrNotFound = errors.New("interface not found")

// Lister enumerates the interface names currently visible in the network
// device namespace, in the platform's native order.
type Lister interface {
	InterfaceNames(ctx context.Context) ([]string, error)
}

// Registry maps interface names to indices. Indices are handed out from 1
// in first-seen order and never reassigned while the process lives, even
// after the interface disappears.
type Registry struct {
	lister Lister

	mu      sync.Mutex
	indices map[string]int
	next    int
}

func New(lister Lister) *Registry {
	return &Registry{
		lister:  lister,
		indices: make(map[string]int),
		next:    1,
	}
}

// EnsureIndexed enumerates the current interfaces, indexes any new ones and
// returns the names in enumeration order.
func (r *Registry) EnsureIndexed(ctx context.Context) ([]string, error) {
	names, err := r.lister.InterfaceNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate interfaces: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		if _, ok := r.indices[name]; !ok {
			r.indices[name] = r.next
			r.next++
		}
	}

	return names, nil
}

// IndexOf returns the index of name, enumerating first so interfaces that
// appeared since the last call are found.
func (r *Registry) IndexOf(ctx context.Context, name string) (int, error) {
	if idx, ok := r.Lookup(name); ok {
		return idx, nil
	}
	if _, err := r.EnsureIndexed(ctx); err != nil {
		return 0, err
	}
	if idx, ok := r.Lookup(name); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Lookup returns an already assigned index without enumerating.
func (r *Registry) Lookup(name string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indices[name]
	return idx, ok
}
