package db

import (
	"errors"
	"fmt"
	"log"

	"signops-backend/config"
	"signops-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedInitialRolesAndAdmin makes sure the system roles and one super admin
// exist so a fresh deployment is reachable.
func SeedInitialRolesAndAdmin(gdb *gorm.DB) error {
	superAdminRole, err := ensureRole(gdb, "Super Admin", models.SuperAdminRoleCode, models.PermissionMap{})
	if err != nil {
		return err
	}

	fieldPerms := models.PermissionMap{
		models.ModuleRecce:        {View: true, Create: true},
		models.ModuleInstallation: {View: true, Create: true},
	}
	if _, err := ensureRole(gdb, "Field Staff", "FIELD", fieldPerms); err != nil {
		return err
	}

	opsPerms := models.PermissionMap{}
	for _, m := range models.AllModules {
		if m == models.ModuleUsers || m == models.ModuleRoles {
			continue
		}
		opsPerms[m] = models.PermissionSet{View: true, Create: true, Edit: true}
	}
	if _, err := ensureRole(gdb, "Operations Manager", "OPS_MANAGER", opsPerms); err != nil {
		return err
	}

	adminEmail := config.GetEnvOrDefault("ADMIN_EMAIL", "admin@signops.local")
	adminPassword := config.GetEnvOrDefault("ADMIN_PASSWORD", "changeme123")
	var existing models.User
	err = gdb.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Printf("Initial admin already exists: %s", existing.Email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking for existing admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.User{
		ID:        uuid.New(),
		Name:      "System Admin",
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Roles:     []models.Role{*superAdminRole},
		IsActive:  true,
		CreatedBy: "system",
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}
	log.Printf("Initial admin created: %s", admin.Email)
	return nil
}

func ensureRole(gdb *gorm.DB, name, code string, perms models.PermissionMap) (*models.Role, error) {
	var role models.Role
	err := gdb.Where("code = ?", code).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking role %s: %w", code, err)
	}

	role = models.Role{
		ID:          uuid.New(),
		Name:        name,
		Code:        code,
		Permissions: datatypes.NewJSONType(perms),
		IsSystem:    true,
		IsActive:    true,
		CreatedBy:   "system",
	}
	if err := gdb.Create(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to create role %s: %w", code, err)
	}
	log.Printf("Role created: %s", code)
	return &role, nil
}
