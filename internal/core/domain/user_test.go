package domain

import "testing"

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleSales, true},
		{RoleAdmin, RoleOwner, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleSales, true},
		{RoleSales, RoleOwner, false},
		{RoleSales, RoleAdmin, false},
		{RoleSales, RoleSales, true},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.required); got != tc.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	for _, required := range []Role{RoleOwner, RoleAdmin, RoleSales} {
		if HasPermission("", required) {
			t.Errorf("empty role granted %s", required)
		}
		if HasPermission("superuser", required) {
			t.Errorf("unknown role granted %s", required)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleSales} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%s) = false", r)
		}
	}
	if ValidRole("manager") {
		t.Error("ValidRole accepted an unknown role")
	}
}

func TestCanAccessAllData(t *testing.T) {
	if !CanAccessAllData(RoleOwner) || !CanAccessAllData(RoleAdmin) {
		t.Error("owner and admin must see all data")
	}
	if CanAccessAllData(RoleSales) {
		t.Error("sales must not see all data")
	}
}
