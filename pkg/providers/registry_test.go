package providers

import (
	"errors"
	"testing"
)

func newTestRegistry() *Registry {
	return NewRegistry(
		NewCerebras(Config{BaseURL: "http://cerebras.test", DefaultModel: "llama3.1-8b", APIKey: "key"}),
		NewOpenRouter(Config{BaseURL: "http://openrouter.test", DefaultModel: "or-model", APIKey: "key"}),
		NewMCP(Config{BaseURL: "http://mcp.test", DefaultModel: "default"}),
	)
}

func TestRegistry_Get(t *testing.T) {
	reg := newTestRegistry()

	adapter, err := reg.Get("cerebras")
	if err != nil {
		t.Fatalf("Get(cerebras) failed: %v", err)
	}
	if adapter.Name() != "cerebras" {
		t.Errorf("expected name cerebras, got %s", adapter.Name())
	}
	if adapter.DefaultModel() != "llama3.1-8b" {
		t.Errorf("expected default model llama3.1-8b, got %s", adapter.DefaultModel())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Get("gpt5")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}

	var unknownErr *UnknownProviderError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownProviderError, got %T", err)
	}
	if unknownErr.Name != "gpt5" {
		t.Errorf("expected name gpt5 in error, got %s", unknownErr.Name)
	}
	// The message must enumerate the known providers so the caller can fix
	// the request without consulting docs.
	for _, known := range []string{"cerebras", "mcp", "openrouter"} {
		found := false
		for _, k := range unknownErr.Known {
			if k == known {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in known providers %v", known, unknownErr.Known)
		}
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := newTestRegistry()

	names := reg.List()
	want := []string{"cerebras", "mcp", "openrouter"}
	if len(names) != len(want) {
		t.Fatalf("expected %d providers, got %d", len(want), len(names))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("List()[%d] = %s, want %s", i, names[i], name)
		}
	}
}
