package feature

import (
	"context"
	"hash/fnv"

	"github.com/appforge/saasbase/pkg/tenant"
)

// evaluate applies the flag's rules against the tenant in context.
func evaluate(ctx context.Context, f Flag) bool {
	tenantID, _ := tenant.IDFromContext(ctx)

	for _, denied := range f.Rules.DenyTenants {
		if tenantID == denied {
			return false
		}
	}

	for _, allowed := range f.Rules.AllowTenants {
		if tenantID == allowed {
			return true
		}
	}

	if f.Rules.Percentage != nil {
		pct := *f.Rules.Percentage
		if pct <= 0 {
			return false
		}
		if pct >= 100 {
			return f.Enabled
		}
		if tenantID == "" {
			return false
		}
		return f.Enabled && bucket(f.Name, tenantID) < pct
	}

	return f.Enabled
}

// bucket maps a (flag, tenant) pair onto 0..99. FNV keeps the assignment
// stable across processes without any coordination.
func bucket(flagName, tenantID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(flagName))
	_, _ = h.Write([]byte(":"))
	_, _ = h.Write([]byte(tenantID))
	return int(h.Sum32() % 100)
}
