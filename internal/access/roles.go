package access

// Role is a named access tier. Tiers are totally ordered; comparisons go
// through rank so an unrecognized role always lands on the most
// restrictive tier instead of failing open.
type Role string

const (
	RoleGeneral   Role = "general"
	RoleBusiness  Role = "business"
	RoleDeveloper Role = "developer"
	RolePremium   Role = "premium"
)

var roleRanks = map[Role]int{
	RoleGeneral:   0,
	RoleBusiness:  1,
	RoleDeveloper: 2,
	RolePremium:   3,
}

func Rank(r Role) int {
	return roleRanks[r]
}

// Permits reports whether a caller with the given role may use an endpoint
// that admits any of the allowed roles. Membership in any allowed role is
// sufficient, so the caller only has to clear the weakest qualifying rank.
func Permits(role Role, allowed []Role) bool {
	if len(allowed) == 0 {
		return false
	}

	required := -1
	for _, a := range allowed {
		if r := Rank(a); required == -1 || r < required {
			required = r
		}
	}

	return Rank(role) >= required
}
