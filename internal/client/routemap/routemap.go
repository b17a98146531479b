package routemap

import (
	"strings"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
)

// Dashboard paths shared by the navigation gate.
const (
	LoginPath   = "/login"
	LandingPath = "/dashboard"
)

// PrefixesFor returns the route prefixes a role may visit. A listed prefix
// grants all of its sub-paths. The switch is total over the role enum; any
// value outside it gets the empty set and therefore reaches nothing.
func PrefixesFor(role domain.Role) []string {
	switch role {
	case domain.RoleAdmin:
		return []string{
			"/dashboard",
			"/sales",
			"/inventory",
			"/customers",
			"/suppliers",
			"/expenses",
			"/banking",
			"/reports",
			"/accounts",
			"/settings",
		}
	case domain.RoleStaff:
		return []string{
			"/dashboard",
			"/sales",
			"/inventory",
			"/customers",
		}
	default:
		return nil
	}
}

// Allows reports whether the role may visit the path.
func Allows(role domain.Role, path string) bool {
	for _, prefix := range PrefixesFor(role) {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
