package tenancy

import (
	"errors"
	"fmt"
)

// Authorization failures. Every sentinel wraps ErrUnauthorized so callers
// can match the whole family with a single errors.Is check.
var (
	ErrUnauthorized = errors.New("unauthorized")

	ErrTenantRequired         = fmt.Errorf("%w: tenant user context is required", ErrUnauthorized)
	ErrPlatformWriteForbidden = fmt.Errorf("%w: platform admins cannot perform tenant-scoped writes", ErrUnauthorized)
	ErrPlatformAdminRequired  = fmt.Errorf("%w: platform admin context is required", ErrUnauthorized)
	ErrRoleRequired           = fmt.Errorf("%w: user role is required", ErrUnauthorized)
	ErrNotAuthorized          = fmt.Errorf("%w: user is not authorized for this action", ErrUnauthorized)
	ErrActorRequired          = fmt.Errorf("%w: authenticated user context is required", ErrUnauthorized)
	ErrOwnershipRequired      = fmt.Errorf("%w: seller can only act on their own listings", ErrUnauthorized)
	ErrTenantMismatch         = fmt.Errorf("%w: entity does not belong to the current tenant", ErrUnauthorized)
)

// RequireTenantUser passes platform admins through and otherwise requires a
// resolved tenant id.
func RequireTenantUser(actor Actor) error {
	if actor.PlatformAdmin {
		return nil
	}
	if actor.TenantID == "" {
		return ErrTenantRequired
	}
	return nil
}

// RequireTenantWriteActor rejects platform admins outright: they read across
// tenants but never write inside one. Non-admins must carry a tenant id.
func RequireTenantWriteActor(actor Actor, action string) error {
	if actor.PlatformAdmin {
		return fmt.Errorf("platform admins are not allowed to %s: %w", action, ErrPlatformWriteForbidden)
	}
	if actor.TenantID == "" {
		return ErrTenantRequired
	}
	return nil
}

// RequirePlatformAdmin passes only when the platform-admin flag is set.
func RequirePlatformAdmin(actor Actor) error {
	if !actor.PlatformAdmin {
		return ErrPlatformAdminRequired
	}
	return nil
}

// RequireRole passes when the actor's role set intersects allowed.
func RequireRole(actor Actor, allowed ...string) error {
	if len(actor.Roles) == 0 {
		return ErrRoleRequired
	}
	for _, role := range allowed {
		if actor.HasRole(role) {
			return nil
		}
	}
	return ErrNotAuthorized
}

// RequireOwnerOrTenantAdmin lets tenant admins act on any seller's listings
// while sellers are pinned to their own seller id.
func RequireOwnerOrTenantAdmin(actor Actor, sellerID string) error {
	if err := RequireRole(actor, RoleTenantAdmin, RoleSeller); err != nil {
		return err
	}
	if actor.HasRole(RoleTenantAdmin) {
		return nil
	}
	if actor.ActorID == "" {
		return ErrActorRequired
	}
	if actor.ActorID != sellerID {
		return ErrOwnershipRequired
	}
	return nil
}
