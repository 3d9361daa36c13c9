package llm

import "fmt"

// ModelInfo describes one selectable model.
type ModelInfo struct {
	Key         string
	Provider    string
	ModelID     string
	DisplayName string
}

var modelTable = []ModelInfo{
	{Key: "gpt-4o-mini", Provider: "openai", ModelID: "gpt-4o-mini", DisplayName: "OpenAI GPT-4o Mini"},
	{Key: "gemini-2.0-flash", Provider: "gemini", ModelID: "gemini-2.0-flash", DisplayName: "Google Gemini 2.0 Flash"},
}

// Registry maps model keys to backends. It is built once at startup and never
// mutated afterwards; per-session model choice is just a key into it.
type Registry struct {
	infos    []ModelInfo
	backends map[string]Backend
	def      string
}

// NewRegistry returns a registry over the fixed model table with no backends
// attached yet. defaultModel must be a known key.
func NewRegistry(defaultModel string) (*Registry, error) {
	r := &Registry{infos: modelTable, backends: map[string]Backend{}, def: defaultModel}
	if _, err := r.Info(defaultModel); err != nil {
		return nil, fmt.Errorf("default model: %w", err)
	}
	return r, nil
}

// Register attaches a backend to every model of the given provider.
func (r *Registry) Register(provider string, build func(info ModelInfo) (Backend, error)) error {
	for _, info := range r.infos {
		if info.Provider != provider {
			continue
		}
		b, err := build(info)
		if err != nil {
			return fmt.Errorf("build %s backend: %w", info.Key, err)
		}
		r.backends[info.Key] = b
	}
	return nil
}

// Info returns the model description for a key.
func (r *Registry) Info(key string) (ModelInfo, error) {
	for _, info := range r.infos {
		if info.Key == key {
			return info, nil
		}
	}
	return ModelInfo{}, fmt.Errorf("%w: %q", ErrUnknownModel, key)
}

// Backend resolves a model key to its backend. Unknown keys are a configuration
// error; known keys without credentials report ErrNotConfigured.
func (r *Registry) Backend(key string) (Backend, error) {
	if _, err := r.Info(key); err != nil {
		return nil, err
	}
	b, ok := r.backends[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotConfigured, key)
	}
	return b, nil
}

// Resolve maps a display name back to a model key.
func (r *Registry) Resolve(displayName string) (string, error) {
	for _, info := range r.infos {
		if info.DisplayName == displayName {
			return info.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, displayName)
}

// DisplayNames lists all selectable models in table order.
func (r *Registry) DisplayNames() []string {
	names := make([]string, 0, len(r.infos))
	for _, info := range r.infos {
		names = append(names, info.DisplayName)
	}
	return names
}

// DefaultModel returns the key new sessions start with.
func (r *Registry) DefaultModel() string {
	return r.def
}
