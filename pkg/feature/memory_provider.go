package feature

import (
	"context"
	"sync"
)

// MemoryProvider is an in-memory flag backend for boilerplate and test
// use. Flags can be replaced wholesale with SetFlags, which Refresh is a
// no-op alias for.
type MemoryProvider struct {
	mu    sync.RWMutex
	flags map[string]Flag
}

// NewMemoryProvider creates a provider pre-populated with the given flags.
func NewMemoryProvider(flags ...Flag) (*MemoryProvider, error) {
	p := &MemoryProvider{flags: make(map[string]Flag, len(flags))}
	for _, f := range flags {
		if _, exists := p.flags[f.Name]; exists {
			return nil, ErrDuplicateFlag
		}
		p.flags[f.Name] = f
	}
	return p, nil
}

// Initialize implements Provider. The memory backend needs no preparation.
func (p *MemoryProvider) Initialize(_ context.Context) error { return nil }

// IsEnabled implements Provider.
func (p *MemoryProvider) IsEnabled(ctx context.Context, name string) (bool, error) {
	f, err := p.get(name)
	if err != nil {
		return false, err
	}
	return evaluate(ctx, f), nil
}

// GetValue implements Provider.
func (p *MemoryProvider) GetValue(ctx context.Context, name string) (string, error) {
	f, err := p.get(name)
	if err != nil {
		return "", err
	}
	if !evaluate(ctx, f) {
		return "", nil
	}
	return f.Value, nil
}

// GetAllFlags implements Provider.
func (p *MemoryProvider) GetAllFlags(_ context.Context) ([]Flag, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	flags := make([]Flag, 0, len(p.flags))
	for _, f := range p.flags {
		flags = append(flags, f)
	}
	return flags, nil
}

// SetFlags replaces all flag definitions atomically.
func (p *MemoryProvider) SetFlags(flags ...Flag) {
	next := make(map[string]Flag, len(flags))
	for _, f := range flags {
		next[f.Name] = f
	}

	p.mu.Lock()
	p.flags = next
	p.mu.Unlock()
}

// Refresh implements Provider.
func (p *MemoryProvider) Refresh(_ context.Context) error { return nil }

// Close implements Provider.
func (p *MemoryProvider) Close() error { return nil }

func (p *MemoryProvider) get(name string) (Flag, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f, ok := p.flags[name]
	if !ok {
		return Flag{}, ErrFlagNotFound
	}
	return f, nil
}
