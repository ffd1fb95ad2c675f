package orchestrator

import (
	"fmt"
	"testing"
	"time"

	"inlaw/internal/config"
	"inlaw/internal/state"
	"inlaw/internal/store"
)

// harness wires an orchestrator to in-memory collaborators.
type harness struct {
	o       *Orchestrator
	queue   *TaskQueue
	kv      store.KV
	renders []state.Snapshot
	clock   time.Time
	ids     int
}

// HarnessOption customizes a harness before Init.
type HarnessOption func(*harness)

// WithStore seeds the harness with a custom store.
func WithStore(kv store.KV) HarnessOption {
	return func(h *harness) { h.kv = kv }
}

// WithStored pre-populates the store.
func WithStored(pairs ...string) HarnessOption {
	return func(h *harness) {
		for i := 0; i+1 < len(pairs); i += 2 {
			_ = h.kv.Set(pairs[i], pairs[i+1])
		}
	}
}

// WithSignedIn stores a signed-in session.
func WithSignedIn(email string) HarnessOption {
	return WithStored(
		store.KeyLoggedIn, "true",
		store.KeyUserEmail, email,
	)
}

func newHarness(t *testing.T, opts ...HarnessOption) *harness {
	t.Helper()
	h := &harness{
		queue: NewTaskQueue(),
		kv:    store.NewMemoryStore(),
		clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.o = New(Options{
		Store:     h.kv,
		Scheduler: h.queue,
		Renderer:  RenderFunc(func(s state.Snapshot) { h.renders = append(h.renders, s) }),
		Delays:    config.DefaultTiming().Delays(),
		Now:       func() time.Time { return h.clock },
		NewID: func() string {
			h.ids++
			return fmt.Sprintf("msg-%d", h.ids)
		},
	})
	h.o.Init()
	return h
}

// fireAll drains the queue and fires every task in order, repeating until
// no new tasks are scheduled.
func (h *harness) fireAll() {
	for h.queue.Len() > 0 {
		for _, task := range h.queue.Drain() {
			h.o.Fire(task)
		}
	}
}

func (h *harness) snap() state.Snapshot {
	return h.o.Snapshot()
}

func (h *harness) last() state.Snapshot {
	return h.renders[len(h.renders)-1]
}

// failingStore rejects every operation.
type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) {
	return "", false, fmt.Errorf("get: %w", store.ErrUnavailable)
}
func (failingStore) Set(string, string) error { return fmt.Errorf("set: %w", store.ErrUnavailable) }
func (failingStore) Clear() error             { return fmt.Errorf("clear: %w", store.ErrUnavailable) }
