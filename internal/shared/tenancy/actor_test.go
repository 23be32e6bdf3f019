package tenancy

import "testing"

func TestResolveUnauthenticatedYieldsZeroActor(t *testing.T) {
	actor := Resolve(Identity{
		ActorID:       "user-1",
		TenantID:      "tenant-1",
		PlatformAdmin: true,
		Roles:         []string{RoleBuyer},
	}, nil)
	if actor.ActorID != "" || actor.TenantID != "" || actor.PlatformAdmin || len(actor.Roles) != 0 {
		t.Fatalf("expected zero actor, got %+v", actor)
	}
}

func TestResolveStripsTenantForPlatformAdmin(t *testing.T) {
	actor := Resolve(Identity{
		Authenticated: true,
		ActorID:       "admin-1",
		TenantID:      "tenant-1",
		PlatformAdmin: true,
		Roles:         []string{RolePlatformComplianceAdmin},
	}, nil)
	if actor.TenantID != "" {
		t.Fatalf("platform admin must not carry a tenant id, got %q", actor.TenantID)
	}
	if !actor.PlatformAdmin || actor.ActorID != "admin-1" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestResolveKeepsTenantForTenantUser(t *testing.T) {
	actor := Resolve(Identity{
		Authenticated: true,
		ActorID:       "user-1",
		TenantID:      "tenant-1",
		Roles:         []string{RoleSeller, RoleBuyer},
	}, nil)
	if actor.TenantID != "tenant-1" {
		t.Fatalf("expected tenant-1, got %q", actor.TenantID)
	}
	if !actor.HasRole(RoleSeller) || actor.HasRole(RoleTenantAdmin) {
		t.Fatalf("unexpected role set: %v", actor.Roles)
	}
}

func TestScopeForPlatformAdminSpansAllTenants(t *testing.T) {
	scope := Actor{PlatformAdmin: true}.Scope()
	if !scope.AllTenants {
		t.Fatalf("expected all-tenants scope")
	}
	if !scope.Allows("any-tenant") {
		t.Fatalf("all-tenants scope must allow every tenant")
	}
}

func TestScopeForTenantUserIsPinned(t *testing.T) {
	scope := Actor{TenantID: "tenant-1"}.Scope()
	if !scope.Allows("tenant-1") {
		t.Fatalf("scope must allow own tenant")
	}
	if scope.Allows("tenant-2") {
		t.Fatalf("scope must not allow foreign tenant")
	}
}

func TestEmptyScopeMatchesNothing(t *testing.T) {
	scope := Actor{}.Scope()
	if scope.Allows("tenant-1") || scope.Allows("") {
		t.Fatalf("empty non-admin scope must match no rows")
	}
}

func TestRoleTableIsFixedAndKnown(t *testing.T) {
	for _, role := range Roles() {
		if !IsKnownRole(role) {
			t.Fatalf("role %q missing from table", role)
		}
	}
	if IsKnownRole("Intruder") {
		t.Fatalf("unknown role accepted")
	}
}
