package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/infra/eventbus"
)

var (
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrToolNotRegistered     = errors.New("tool not registered")
)

// TopicInvocation is the event bus topic the registry publishes an
// InvocationEvent on after every run. The audit recorder subscribes here.
const TopicInvocation = "tool.invoked"

// InvocationEvent is the payload published after each invocation.
type InvocationEvent struct {
	ID       string
	Tool     string
	Outcome  string
	Duration time.Duration
	Items    int
}

// Registry holds the registered tools. Registration order is preserved
// so listings are stable across dispatcher surfaces.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]Tool
	ordering []string

	log zerolog.Logger
	bus eventbus.EventBus
}

// NewRegistry creates an empty registry. The bus is optional; without
// it invocation events are not published.
func NewRegistry(log zerolog.Logger, bus eventbus.EventBus) *Registry {
	return &Registry{
		tools: make(map[string]Tool),
		log:   log,
		bus:   bus,
	}
}

// Register adds a tool under its declared name.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return ErrToolNotRegistered
	}
	name := strings.TrimSpace(t.Name())
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrToolNotRegistered)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, name)
	}
	r.tools[name] = t
	r.ordering = append(r.ordering, name)
	return nil
}

// MustRegister registers a tool or panics. Used for init-time wiring
// where a duplicate name is a programming error.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotRegistered, name)
	}
	return t, nil
}

// List returns descriptors for every registered tool in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.ordering))
	for _, name := range r.ordering {
		out = append(out, Describe(r.tools[name]))
	}
	return out
}

// Invoke drives one invocation end to end: resolve the tool, validate
// raw arguments, run, and report. Validation failures are returned as
// errors before any business logic executes; everything past that point
// is degraded into content per the contract, including panics.
func (r *Registry) Invoke(ctx context.Context, name string, raw map[string]any) ([]Content, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	args, err := t.Schema().Validate(raw)
	if err != nil {
		return nil, err
	}

	invocationID := uuid.NewString()
	start := time.Now()
	items := r.runSafely(ctx, t, args)
	if len(items) == 0 {
		// Contract: callers never special-case "no output".
		items = Textf("%s produced no output", name)
	}

	outcome := "success"
	if IsError(items) {
		outcome = "error"
	}
	duration := time.Since(start)

	r.log.Info().
		Str("tool", name).
		Str("invocation_id", invocationID).
		Str("outcome", outcome).
		Int("items", len(items)).
		Dur("duration", duration).
		Msg("tool invoked")

	if r.bus != nil {
		r.bus.Publish(TopicInvocation, InvocationEvent{
			ID:       invocationID,
			Tool:     name,
			Outcome:  outcome,
			Duration: duration,
			Items:    len(items),
		})
	}

	return items, nil
}

// runSafely converts a panicking tool into an error content item so a
// misbehaving tool can never take the dispatcher down.
func (r *Registry) runSafely(ctx context.Context, t Tool, args Args) (items []Content) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Str("tool", t.Name()).Any("panic", rec).Msg("tool panicked")
			items = Errorf(500, "internal error in %s: %v", t.Name(), rec)
		}
	}()
	return t.Run(ctx, args)
}
