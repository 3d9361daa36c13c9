// README: Registry tests (key resolution, backend registration, error taxonomy).
package llm

import (
	"context"
	"errors"
	"testing"
)

type stubBackend struct {
	reply string
}

func (s stubBackend) Generate(_ context.Context, _ string) (*Response, error) {
	return &Response{Content: s.reply, TotalTokens: 1}, nil
}

func TestNewRegistryRejectsUnknownDefault(t *testing.T) {
	if _, err := NewRegistry("gpt-9-ultra"); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("err = %v, want ErrUnknownModel", err)
	}
}

func TestBackendUnknownKey(t *testing.T) {
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Backend("gpt-9-ultra"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("err = %v, want ErrUnknownModel", err)
	}
}

// TestBackendNotConfigured verifies a known model without credentials reports
// ErrNotConfigured, distinct from an unknown key.
func TestBackendNotConfigured(t *testing.T) {
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Backend("gemini-2.0-flash"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestRegisterAttachesByProvider(t *testing.T) {
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	err = r.Register("openai", func(info ModelInfo) (Backend, error) {
		return stubBackend{reply: info.ModelID}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	b, err := r.Backend("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := b.Generate(context.Background(), "hi")
	if err != nil || resp.Content != "gpt-4o-mini" {
		t.Errorf("resp = %+v, err = %v", resp, err)
	}
	if _, err := r.Backend("gemini-2.0-flash"); !errors.Is(err, ErrNotConfigured) {
		t.Error("gemini must stay unconfigured")
	}
}

func TestResolveDisplayName(t *testing.T) {
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	key, err := r.Resolve("Google Gemini 2.0 Flash")
	if err != nil || key != "gemini-2.0-flash" {
		t.Errorf("Resolve = %q, %v", key, err)
	}
	if _, err := r.Resolve("GPT-9 Ultra"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("err = %v, want ErrUnknownModel", err)
	}
}

func TestDisplayNamesOrder(t *testing.T) {
	r, err := NewRegistry("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	names := r.DisplayNames()
	want := []string{"OpenAI GPT-4o Mini", "Google Gemini 2.0 Flash"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
