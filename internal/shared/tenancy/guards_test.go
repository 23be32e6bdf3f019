package tenancy

import (
	"errors"
	"testing"
)

func tenantSeller() Actor {
	return Actor{ActorID: "seller-1", TenantID: "tenant-1", Roles: []string{RoleSeller}}
}

func TestRequireTenantUser(t *testing.T) {
	if err := RequireTenantUser(Actor{PlatformAdmin: true}); err != nil {
		t.Fatalf("platform admin must pass: %v", err)
	}
	if err := RequireTenantUser(tenantSeller()); err != nil {
		t.Fatalf("tenant user must pass: %v", err)
	}
	err := RequireTenantUser(Actor{ActorID: "user-1"})
	if !errors.Is(err, ErrTenantRequired) {
		t.Fatalf("expected tenant-required, got %v", err)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("guard errors must match ErrUnauthorized")
	}
}

func TestRequireTenantWriteActorRejectsPlatformAdmin(t *testing.T) {
	err := RequireTenantWriteActor(Actor{PlatformAdmin: true}, "create listings")
	if !errors.Is(err, ErrPlatformWriteForbidden) {
		t.Fatalf("expected platform-write-forbidden, got %v", err)
	}
	if err := RequireTenantWriteActor(tenantSeller(), "create listings"); err != nil {
		t.Fatalf("tenant user must pass: %v", err)
	}
	if err := RequireTenantWriteActor(Actor{}, "create listings"); !errors.Is(err, ErrTenantRequired) {
		t.Fatalf("expected tenant-required, got %v", err)
	}
}

func TestRequirePlatformAdmin(t *testing.T) {
	if err := RequirePlatformAdmin(Actor{PlatformAdmin: true}); err != nil {
		t.Fatalf("platform admin must pass: %v", err)
	}
	if err := RequirePlatformAdmin(tenantSeller()); !errors.Is(err, ErrPlatformAdminRequired) {
		t.Fatalf("expected platform-admin-required, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole(tenantSeller(), RoleTenantAdmin, RoleSeller); err != nil {
		t.Fatalf("intersecting role must pass: %v", err)
	}
	if err := RequireRole(Actor{TenantID: "tenant-1"}, RoleBuyer); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("empty role set must fail with role-required, got %v", err)
	}
	err := RequireRole(tenantSeller(), RoleBuyer)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("disjoint role set must fail with not-authorized, got %v", err)
	}
}

func TestRequireOwnerOrTenantAdmin(t *testing.T) {
	admin := Actor{ActorID: "admin-1", TenantID: "tenant-1", Roles: []string{RoleTenantAdmin}}
	if err := RequireOwnerOrTenantAdmin(admin, "seller-9"); err != nil {
		t.Fatalf("tenant admin must pass for any seller: %v", err)
	}
	if err := RequireOwnerOrTenantAdmin(tenantSeller(), "seller-1"); err != nil {
		t.Fatalf("seller must pass for own id: %v", err)
	}
	if err := RequireOwnerOrTenantAdmin(tenantSeller(), "seller-2"); !errors.Is(err, ErrOwnershipRequired) {
		t.Fatalf("seller must fail for foreign id, got %v", err)
	}
	anonymous := Actor{TenantID: "tenant-1", Roles: []string{RoleSeller}}
	if err := RequireOwnerOrTenantAdmin(anonymous, "seller-1"); !errors.Is(err, ErrActorRequired) {
		t.Fatalf("missing actor id must fail, got %v", err)
	}
	buyer := Actor{ActorID: "buyer-1", TenantID: "tenant-1", Roles: []string{RoleBuyer}}
	if err := RequireOwnerOrTenantAdmin(buyer, "buyer-1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("buyer must fail role gate, got %v", err)
	}
}
