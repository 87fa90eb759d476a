package services

import (
	"testing"

	"signops-backend/db/models"

	"gorm.io/datatypes"
)

func roleWith(perms models.PermissionMap) models.Role {
	return models.Role{
		Name:        "test",
		Code:        "TEST",
		Permissions: datatypes.NewJSONType(perms),
	}
}

func navKeys(items []NavItem) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys
}

func TestBuildNavigationFieldUser(t *testing.T) {
	user := &models.User{
		Roles: []models.Role{roleWith(models.PermissionMap{
			models.ModuleRecce:        {View: true, Create: true},
			models.ModuleInstallation: {View: true, Create: true},
		})},
	}

	got := navKeys(BuildNavigation(user))
	want := []string{"dashboard", "recce", "installation"}

	if len(got) != len(want) {
		t.Fatalf("got nav %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nav[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBuildNavigationNoRoles(t *testing.T) {
	user := &models.User{}

	got := navKeys(BuildNavigation(user))
	if len(got) != 1 || got[0] != "dashboard" {
		t.Fatalf("user with no roles should only see dashboard, got %v", got)
	}
}

func TestBuildNavigationSuperAdmin(t *testing.T) {
	user := &models.User{
		Roles: []models.Role{{Name: "Super Admin", Code: models.SuperAdminRoleCode}},
	}

	got := BuildNavigation(user)
	if len(got) != len(navRegistry) {
		t.Fatalf("super admin should see all %d entries, got %d (%v)", len(navRegistry), len(got), navKeys(got))
	}
}

func TestBuildNavigationOrderStable(t *testing.T) {
	user := &models.User{
		Roles: []models.Role{
			roleWith(models.PermissionMap{models.ModuleUsers: {View: true}}),
			roleWith(models.PermissionMap{models.ModuleStores: {View: true}}),
		},
	}

	got := navKeys(BuildNavigation(user))
	want := []string{"dashboard", "stores", "users"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nav order should follow the registry, got %v", got)
		}
	}
}
