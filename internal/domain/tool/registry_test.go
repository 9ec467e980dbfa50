package tool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/infra/eventbus"
)

// fakeTool is a minimal tool for registry tests.
type fakeTool struct {
	name   string
	schema Schema
	run    func(ctx context.Context, args Args) []Content
}

func (f *fakeTool) Name() string        { return f.name }
func (f *fakeTool) Description() string { return "fake tool for tests" }
func (f *fakeTool) Schema() Schema      { return f.schema }
func (f *fakeTool) Run(ctx context.Context, args Args) []Content {
	return f.run(ctx, args)
}

func newTestRegistry(bus eventbus.EventBus) *Registry {
	return NewRegistry(zerolog.Nop(), bus)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	ft := &fakeTool{name: "echo", run: func(ctx context.Context, args Args) []Content {
		return Textf("ok")
	}}

	if err := r.Register(ft); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, err := r.Get("echo")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name() != "echo" {
		t.Errorf("Name = %q; want %q", got.Name(), "echo")
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	ft := &fakeTool{name: "echo", run: func(ctx context.Context, args Args) []Content { return Textf("ok") }}

	if err := r.Register(ft); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	err := r.Register(ft)
	if !errors.Is(err, ErrToolAlreadyRegistered) {
		t.Errorf("error = %v; want ErrToolAlreadyRegistered", err)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	_, err := r.Get("nope")
	if !errors.Is(err, ErrToolNotRegistered) {
		t.Errorf("error = %v; want ErrToolNotRegistered", err)
	}
}

func TestRegistry_ListPreservesOrder(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		n := name
		r.MustRegister(&fakeTool{name: n, run: func(ctx context.Context, args Args) []Content { return Textf("ok") }})
	}

	descriptors := r.List()
	if len(descriptors) != 3 {
		t.Fatalf("len(descriptors) = %d; want 3", len(descriptors))
	}
	want := []string{"zeta", "alpha", "mid"}
	for i, d := range descriptors {
		if d.Name != want[i] {
			t.Errorf("descriptors[%d].Name = %q; want %q", i, d.Name, want[i])
		}
	}
}

func TestRegistry_InvokeValidatesBeforeRun(t *testing.T) {
	t.Parallel()

	ran := false
	r := newTestRegistry(nil)
	r.MustRegister(&fakeTool{
		name:   "strict",
		schema: NewSchema(Field{Name: "text", Type: TypeString, Required: true}),
		run: func(ctx context.Context, args Args) []Content {
			ran = true
			return Textf("ok")
		},
	})

	_, err := r.Invoke(context.Background(), "strict", map[string]any{})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("error = %v; want ErrValidationFailed", err)
	}
	if ran {
		t.Error("Run should not execute when validation fails")
	}
}

func TestRegistry_InvokeUnknownTool(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	_, err := r.Invoke(context.Background(), "ghost", nil)
	if !errors.Is(err, ErrToolNotRegistered) {
		t.Errorf("error = %v; want ErrToolNotRegistered", err)
	}
}

func TestRegistry_InvokeRecoversPanic(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	r.MustRegister(&fakeTool{name: "bomb", run: func(ctx context.Context, args Args) []Content {
		panic("kaboom")
	}})

	items, err := r.Invoke(context.Background(), "bomb", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if !IsError(items) {
		t.Fatal("panic should degrade to an error content item")
	}
	errItem := items[0].(ErrorContent)
	if errItem.Code != 500 {
		t.Errorf("Code = %d; want 500", errItem.Code)
	}
}

func TestRegistry_InvokeEmptyOutputGuard(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(nil)
	r.MustRegister(&fakeTool{name: "silent", run: func(ctx context.Context, args Args) []Content {
		return nil
	}})

	items, err := r.Invoke(context.Background(), "silent", nil)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d; want 1", len(items))
	}
	if text := items[0].(TextContent).Text; text != "silent produced no output" {
		t.Errorf("Text = %q; want %q", text, "silent produced no output")
	}
}

func TestRegistry_InvokePublishesEvent(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	events := bus.Subscribe(TopicInvocation)

	r := newTestRegistry(bus)
	r.MustRegister(&fakeTool{name: "echo", run: func(ctx context.Context, args Args) []Content {
		return Textf("ok")
	}})

	if _, err := r.Invoke(context.Background(), "echo", nil); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	select {
	case evt := <-events:
		event, ok := evt.Payload.(InvocationEvent)
		if !ok {
			t.Fatalf("payload is %T; want InvocationEvent", evt.Payload)
		}
		if event.Tool != "echo" || event.Outcome != "success" || event.Items != 1 {
			t.Errorf("event = %+v; want echo/success/1 item", event)
		}
		if event.ID == "" {
			t.Error("event.ID should be populated")
		}
	case <-time.After(time.Second):
		t.Fatal("no invocation event published")
	}
}
