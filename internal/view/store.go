// Package view holds the one published dataset and the render state that
// the long-running front ends (HTTP server, terminal viewer) share.
package view

import (
	"context"
	"sync"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// Snapshot is a consistent read of a [Store].
type Snapshot struct {
	State pipeline.State
	Fetch dataset.Result
}

// Loaded reports whether a dataset is available for layout.
func (s Snapshot) Loaded() bool {
	return s.State == pipeline.StateLoaded || s.State == pipeline.StateRendered
}

// Store holds the single fetch result. It is published once and never
// mutated afterwards; renders read it concurrently.
type Store struct {
	mu    sync.RWMutex
	state pipeline.State
	fetch dataset.Result
	done  chan struct{}
}

// NewStore returns an empty store in the unloaded state.
func NewStore() *Store {
	return &Store{state: pipeline.StateUnloaded, done: make(chan struct{})}
}

// Publish records the fetch outcome. Only the first call has an effect;
// later calls return an error and leave the store untouched.
func (s *Store) Publish(res dataset.Result) error {
	next := pipeline.StateFailed
	if res.OK() {
		next = pipeline.StateLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != pipeline.StateUnloaded || !s.state.CanAdvance(next) {
		return errors.New(errors.ErrCodeInternal, "dataset already published (state %s)", s.state)
	}
	s.state = next
	s.fetch = res
	close(s.done)
	return nil
}

// MarkRendered records that at least one render of the loaded dataset
// succeeded. It is a no-op in any other state.
func (s *Store) MarkRendered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CanAdvance(pipeline.StateRendered) {
		s.state = pipeline.StateRendered
	}
}

// Snapshot returns the current state and fetch result.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Fetch: s.fetch}
}

// Done is closed once a result has been published.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until a result is published or ctx ends.
func (s *Store) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-s.done:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}
