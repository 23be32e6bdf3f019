package tenancy

// Role names are a fixed table. New roles are added here, never at runtime.
const (
	RolePlatformAdmin = "PlatformAdmin"
	RoleTenantAdmin   = "TenantAdmin"
	RoleSeller        = "Seller"
	RoleBuyer         = "Buyer"

	RolePlatformSuperAdmin      = "PlatformSuperAdmin"
	RolePlatformComplianceAdmin = "PlatformComplianceAdmin"
	RolePlatformSupport         = "PlatformSupport"

	RoleStaff = "Staff"
)

var allRoles = []string{
	RolePlatformAdmin,
	RoleTenantAdmin,
	RoleSeller,
	RoleBuyer,
	RolePlatformSuperAdmin,
	RolePlatformComplianceAdmin,
	RolePlatformSupport,
	RoleStaff,
}

// Roles returns the full enumerated role table.
func Roles() []string {
	return append([]string(nil), allRoles...)
}

// IsKnownRole reports whether name is part of the role table. Config
// validation uses this at process start.
func IsKnownRole(name string) bool {
	for _, role := range allRoles {
		if role == name {
			return true
		}
	}
	return false
}
