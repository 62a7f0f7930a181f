package feature

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileProvider loads flag definitions from a static YAML file. The file is
// a list of flags:
//
//	- name: new-dashboard
//	  enabled: true
//	  rules:
//	    allow_tenants: [acme]
//	    percentage: 25
//
// Refresh re-reads the file; evaluation between refreshes serves the last
// successfully loaded set.
type FileProvider struct {
	path string

	mu    sync.RWMutex
	flags map[string]Flag
}

// NewFileProvider creates a provider backed by the YAML file at path.
// Call Initialize to perform the first load.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path, flags: make(map[string]Flag)}
}

// Initialize implements Provider by loading the file.
func (p *FileProvider) Initialize(ctx context.Context) error {
	return p.Refresh(ctx)
}

// Refresh implements Provider. A failed load keeps the previous flag set.
func (p *FileProvider) Refresh(_ context.Context) error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("feature: read %s: %w", p.path, err)
	}

	var defs []Flag
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return errors.Join(ErrInvalidSource, err)
	}

	next := make(map[string]Flag, len(defs))
	for _, f := range defs {
		if f.Name == "" {
			return fmt.Errorf("%w: flag with empty name in %s", ErrInvalidSource, p.path)
		}
		if _, exists := next[f.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateFlag, f.Name)
		}
		next[f.Name] = f
	}

	p.mu.Lock()
	p.flags = next
	p.mu.Unlock()

	return nil
}

// IsEnabled implements Provider.
func (p *FileProvider) IsEnabled(ctx context.Context, name string) (bool, error) {
	f, err := p.get(name)
	if err != nil {
		return false, err
	}
	return evaluate(ctx, f), nil
}

// GetValue implements Provider.
func (p *FileProvider) GetValue(ctx context.Context, name string) (string, error) {
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
func (p *FileProvider) GetAllFlags(_ context.Context) ([]Flag, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	flags := make([]Flag, 0, len(p.flags))
	for _, f := range p.flags {
		flags = append(flags, f)
	}
	return flags, nil
}

// Close implements Provider.
func (p *FileProvider) Close() error { return nil }

func (p *FileProvider) get(name string) (Flag, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f, ok := p.flags[name]
	if !ok {
		return Flag{}, ErrFlagNotFound
	}
	return f, nil
}
