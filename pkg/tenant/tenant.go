package tenant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a tenant record with the minimal information needed
// for request-scoped operations.
type Tenant struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	PlanID     string    `json:"plan_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Provider loads tenant records by identifier. Implementations must return
// ErrTenantNotFound when no tenant matches.
type Provider interface {
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// StaticProvider is an in-memory Provider for boilerplate and test use.
// Lookups are case-insensitive to match identifier validation semantics.
type StaticProvider struct {
	mu      sync.RWMutex
	tenants map[string]*Tenant
}

// NewStaticProvider creates a provider pre-populated with the given tenants.
// Tenants with invalid identifiers are rejected with ErrInvalidIdentifier.
func NewStaticProvider(tenants ...*Tenant) (*StaticProvider, error) {
	p := &StaticProvider{tenants: make(map[string]*Tenant, len(tenants))}
	for _, t := range tenants {
		if err := p.Register(t); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register adds a tenant to the provider.
func (p *StaticProvider) Register(t *Tenant) error {
	if t == nil || !IsValidIdentifier(t.Identifier) {
		return ErrInvalidIdentifier
	}

	key := strings.ToLower(t.Identifier)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.tenants[key]; exists {
		return ErrDuplicateTenant
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	p.tenants[key] = t
	return nil
}

// GetByIdentifier implements Provider.
func (p *StaticProvider) GetByIdentifier(_ context.Context, identifier string) (*Tenant, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	t, ok := p.tenants[strings.ToLower(identifier)]
	if !ok {
		return nil, ErrTenantNotFound
	}

	// Copy so callers cannot mutate the stored record.
	clone := *t
	return &clone, nil
}
