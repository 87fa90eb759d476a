package models

import (
	"testing"

	"gorm.io/datatypes"
)

func roleWith(code string, perms PermissionMap) Role {
	return Role{Name: code, Code: code, Permissions: datatypes.NewJSONType(perms)}
}

func TestSuperAdminBypassesPermissionMap(t *testing.T) {
	cases := []struct {
		name string
		role Role
	}{
		{"empty map", roleWith(SuperAdminRoleCode, PermissionMap{})},
		{"nil map", roleWith(SuperAdminRoleCode, nil)},
		{"explicit denies", roleWith(SuperAdminRoleCode, PermissionMap{
			ModuleStores: {View: false},
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := User{Roles: []Role{tc.role}}
			for _, m := range AllModules {
				if !user.CanView(m) {
					t.Errorf("SUPER_ADMIN denied view on %s", m)
				}
				if !user.CanEdit(m) {
					t.Errorf("SUPER_ADMIN denied edit on %s", m)
				}
			}
		})
	}
}

func TestCanViewORAcrossRoles(t *testing.T) {
	recceOnly := roleWith("FIELD", PermissionMap{
		ModuleRecce: {View: true},
	})
	clientsOnly := roleWith("ACCOUNTS", PermissionMap{
		ModuleClients: {View: true},
	})

	user := User{Roles: []Role{recceOnly, clientsOnly}}

	if !user.CanView(ModuleRecce) {
		t.Error("recce view should be granted by first role")
	}
	if !user.CanView(ModuleClients) {
		t.Error("clients view should be granted by second role")
	}
	if user.CanView(ModuleUsers) {
		t.Error("users view granted by no role")
	}

	// Order-independence
	swapped := User{Roles: []Role{clientsOnly, recceOnly}}
	for _, m := range AllModules {
		if user.CanView(m) != swapped.CanView(m) {
			t.Errorf("CanView(%s) depends on role order", m)
		}
	}
}

func TestCanViewZeroRolesDenies(t *testing.T) {
	user := User{}
	for _, m := range AllModules {
		if user.CanView(m) {
			t.Errorf("user with no roles allowed on %s", m)
		}
	}
}

func TestCanViewAbsentEntryDenies(t *testing.T) {
	role := roleWith("FIELD", PermissionMap{
		ModuleRecce: {View: true, Create: false},
	})
	user := User{Roles: []Role{role}}

	if user.CanView(ModuleInstallation) {
		t.Error("absent map entry should deny, not error")
	}
	if user.CanCreate(ModuleRecce) {
		t.Error("create grant should follow the stored value")
	}
}

func TestCanViewIdempotent(t *testing.T) {
	role := roleWith("FIELD", PermissionMap{ModuleRecce: {View: true}})
	user := User{Roles: []Role{role}}

	first := user.CanView(ModuleRecce)
	for i := 0; i < 10; i++ {
		if user.CanView(ModuleRecce) != first {
			t.Fatal("CanView is not idempotent")
		}
	}
}
