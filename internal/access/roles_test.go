package access

import "testing"

func TestPermits(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{"exact match", RoleBusiness, []Role{RoleBusiness}, true},
		{"higher rank passes", RolePremium, []Role{RoleBusiness, RoleDeveloper}, true},
		{"lower rank denied", RoleGeneral, []Role{RoleDeveloper, RolePremium}, false},
		{"weakest allowed role sets the bar", RoleBusiness, []Role{RoleBusiness, RoleDeveloper, RolePremium}, true},
		{"developer clears business bar", RoleDeveloper, []Role{RoleBusiness, RolePremium}, true},
		{"unknown role denied", Role("superadmin"), []Role{RoleBusiness}, false},
		{"unknown role passes only lowest tier", Role("whatever"), []Role{RoleGeneral}, true},
		{"empty role denied above general", Role(""), []Role{RoleBusiness}, false},
		{"empty allowed set denies everyone", RolePremium, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Permits(tt.role, tt.allowed); got != tt.want {
				t.Errorf("Permits(%q, %v) = %v, want %v", tt.role, tt.allowed, got, tt.want)
			}
		})
	}
}

func TestRankOrdering(t *testing.T) {
	order := []Role{RoleGeneral, RoleBusiness, RoleDeveloper, RolePremium}
	for i := 1; i < len(order); i++ {
		if Rank(order[i-1]) >= Rank(order[i]) {
			t.Errorf("expected rank(%s) < rank(%s)", order[i-1], order[i])
		}
	}
	if Rank(Role("bogus")) != 0 {
		t.Errorf("unknown role should rank 0, got %d", Rank(Role("bogus")))
	}
}
