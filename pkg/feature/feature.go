package feature

import "context"

// Flag is a feature flag definition evaluated against request context.
type Flag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	// Value is an optional variant payload returned by GetValue.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Rules Rules  `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rules narrows a flag to a subset of tenants. DenyTenants always wins,
// then AllowTenants, then the percentage rollout, then the flag's Enabled
// bit.
type Rules struct {
	AllowTenants []string `json:"allow_tenants,omitempty" yaml:"allow_tenants,omitempty"`
	DenyTenants  []string `json:"deny_tenants,omitempty" yaml:"deny_tenants,omitempty"`
	// Percentage enables the flag for a stable percentage of tenants,
	// hashed on tenant id so a tenant's verdict does not flap.
	Percentage *int `json:"percentage,omitempty" yaml:"percentage,omitempty"`
}

// Provider is the capability interface all flag backends implement.
// Backends are selected by configuration at construction time; callers
// depend only on this interface.
type Provider interface {
	// Initialize prepares the provider (loads files, warms caches).
	Initialize(ctx context.Context) error

	// IsEnabled evaluates the flag for the given context. The tenant id is
	// read from the context when rules need it. Returns ErrFlagNotFound
	// for unknown flags.
	IsEnabled(ctx context.Context, name string) (bool, error)

	// GetValue returns the flag's variant value when the flag evaluates to
	// enabled, and the empty string otherwise.
	GetValue(ctx context.Context, name string) (string, error)

	// GetAllFlags returns all flag definitions.
	GetAllFlags(ctx context.Context) ([]Flag, error)

	// Refresh re-reads the backing source.
	Refresh(ctx context.Context) error

	// Close releases provider resources.
	Close() error
}
