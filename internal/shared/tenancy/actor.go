package tenancy

import "log/slog"

// Identity is the raw authenticated-identity shape handed over by the auth
// boundary (JWT middleware in the API process, literals in tests). The core
// never inspects token material, only this struct.
type Identity struct {
	Authenticated bool
	ActorID       string
	TenantID      string
	PlatformAdmin bool
	Roles         []string
}

// Actor is the resolved per-request context every use case receives.
// All fields are always present; there are no optional capability views.
type Actor struct {
	ActorID       string
	TenantID      string
	PlatformAdmin bool
	Roles         []string
}

// Resolve maps an Identity to an Actor.
// Rules:
//   - unauthenticated identities resolve to the zero Actor
//   - a platform admin never carries a tenant id, whatever the claims say
//
// Resolution is logged exactly once, here, not on field access.
func Resolve(identity Identity, logger *slog.Logger) Actor {
	if logger == nil {
		logger = slog.Default()
	}

	if !identity.Authenticated {
		logger.Info("actor context resolved",
			"event", "tenancy_actor_resolved",
			"module", "internal/shared/tenancy",
			"layer", "shared",
			"authenticated", false,
		)
		return Actor{}
	}

	actor := Actor{
		ActorID:       identity.ActorID,
		TenantID:      identity.TenantID,
		PlatformAdmin: identity.PlatformAdmin,
		Roles:         append([]string(nil), identity.Roles...),
	}
	if actor.PlatformAdmin {
		actor.TenantID = ""
	}

	logger.Info("actor context resolved",
		"event", "tenancy_actor_resolved",
		"module", "internal/shared/tenancy",
		"layer", "shared",
		"authenticated", true,
		"actor_id", actor.ActorID,
		"tenant_id", actor.TenantID,
		"is_platform_admin", actor.PlatformAdmin,
		"roles_count", len(actor.Roles),
	)
	return actor
}

// HasRole reports membership in the actor's role set.
func (a Actor) HasRole(name string) bool {
	for _, role := range a.Roles {
		if role == name {
			return true
		}
	}
	return false
}

// Scope is the row-level isolation descriptor repositories apply to every
// query and mutation against tenant-owned collections.
type Scope struct {
	TenantID   string
	AllTenants bool
}

// Scope derives the isolation scope for the actor. Platform admins read
// across tenants; everyone else is pinned to their own tenant. A non-admin
// actor without a tenant id yields a scope that matches nothing.
func (a Actor) Scope() Scope {
	if a.PlatformAdmin {
		return Scope{AllTenants: true}
	}
	return Scope{TenantID: a.TenantID}
}

// Allows reports whether a row owned by tenantID is visible under the scope.
func (s Scope) Allows(tenantID string) bool {
	if s.AllTenants {
		return true
	}
	return s.TenantID != "" && s.TenantID == tenantID
}
