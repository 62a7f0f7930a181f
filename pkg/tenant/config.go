package tenant

// Default configuration values applied by NewResolver when the
// corresponding Config field is empty.
const (
	DefaultHeaderName = "X-Tenant-ID"
	DefaultTenantID   = "default"
)

// Config holds tenant resolution configuration. It is resolved once from
// the environment and injected into NewResolver; resolution logic never
// reads ambient state.
type Config struct {
	HeaderName         string `env:"TENANT_HEADER" envDefault:"X-Tenant-ID"`
	DefaultTenantID    string `env:"TENANT_DEFAULT_ID" envDefault:"default"`
	MultiTenantEnabled bool   `env:"TENANT_MULTI_TENANT_ENABLED" envDefault:"true"`
}
