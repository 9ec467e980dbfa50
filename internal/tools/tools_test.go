package tools

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
	"github.com/mwozniczak/agenttools/internal/infra/eventbus"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	reg := tool.NewRegistry(zerolog.Nop(), eventbus.New())
	if err := RegisterAll(reg, Deps{}); err != nil {
		t.Fatalf("RegisterAll returned error: %v", err)
	}

	descriptors := reg.List()
	if len(descriptors) != 26 {
		t.Fatalf("len(descriptors) = %d; want 26", len(descriptors))
	}

	seen := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if d.Name == "" || d.Description == "" {
			t.Errorf("descriptor %+v missing name or description", d)
		}
		if seen[d.Name] {
			t.Errorf("duplicate tool name %q", d.Name)
		}
		seen[d.Name] = true
	}
	for _, name := range []string{
		"word_counter", "generate_qrcode", "web_brave_web_search",
		"weather_us_current", "generate_dalle_image",
	} {
		if !seen[name] {
			t.Errorf("tool %q not registered", name)
		}
	}
}
