package repositories

import (
	"errors"
	"fmt"
	"strings"

	"signops-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeactivateUser(id string, updatedBy string) error
	GetAllUsers() ([]models.User, error)
	GetUsersByModule(module models.Module) ([]models.User, error)
	GetFilteredUsers(pageSize int, offset int, filters map[string]string) ([]models.User, int64, error)
	ReplaceRoles(user *models.User, roleIDs []uuid.UUID) error

	CreateRole(role *models.Role) (*models.Role, error)
	GetRoleByID(id string) (*models.Role, error)
	GetRolesByIDs(ids []uuid.UUID) ([]models.Role, error)
	GetAllRoles() ([]models.Role, error)
	UpdateRole(role *models.Role) (*models.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Check if user exists (including soft-deleted)
	var existing models.User
	err = r.db.Unscoped().Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			// Soft-deleted: restore
			existing.DeletedAt = gorm.DeletedAt{}
			existing.Name = user.Name
			existing.Password = hashedPassword
			existing.Phone = user.Phone
			existing.IsActive = user.IsActive
			existing.CreatedBy = user.CreatedBy

			if err := r.db.Unscoped().Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to restore soft-deleted user: %w", err)
			}
			if len(user.Roles) > 0 {
				if err := r.db.Model(&existing).Association("Roles").Replace(user.Roles); err != nil {
					return nil, fmt.Errorf("failed to restore user roles: %w", err)
				}
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("a user with that email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	user.ID = uuid.New()
	user.Password = hashedPassword

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user in database: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Roles").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Roles").First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser disables the account instead of deleting it so audit
// references embedded in store workflow JSON stay resolvable.
func (r *userRepository) DeactivateUser(id string, updatedBy string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_by": updatedBy}).Error
}

func (r *userRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Roles").Order("name asc").Find(&users).Error
	return users, err
}

// GetUsersByModule returns active users whose role grants view on the given
// module. Used to populate assignee pickers.
func (r *userRepository) GetUsersByModule(module models.Module) ([]models.User, error) {
	users, err := r.GetAllUsers()
	if err != nil {
		return nil, err
	}

	eligible := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.IsActive && user.CanView(module) {
			eligible = append(eligible, user)
		}
	}
	return eligible, nil
}

func (r *userRepository) GetFilteredUsers(pageSize int, offset int, filters map[string]string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.Model(&models.User{})

	for key, value := range filters {
		switch key {
		case "active":
			if strings.ToLower(value) == "true" {
				db = db.Where("is_active = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("is_active = ?", false)
			}
		case "search":
			pattern := "%" + value + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
		case "start_date":
			db = db.Where("created_at >= ?", value)
		case "end_date":
			db = db.Where("created_at <= ?", value)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(pageSize).Offset(offset).Order("created_at desc").Preload("Roles").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) ReplaceRoles(user *models.User, roleIDs []uuid.UUID) error {
	roles, err := r.GetRolesByIDs(roleIDs)
	if err != nil {
		return err
	}
	if len(roles) != len(roleIDs) {
		return fmt.Errorf("one or more roles do not exist")
	}
	return r.db.Model(user).Association("Roles").Replace(roles)
}

func (r *userRepository) CreateRole(role *models.Role) (*models.Role, error) {
	var existing models.Role
	err := r.db.Where("code = ?", role.Code).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("a role with code %s already exists", role.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing role: %w", err)
	}

	if err := r.db.Create(role).Error; err != nil {
		return nil, fmt.Errorf("failed to create role in database: %w", err)
	}
	return role, nil
}

func (r *userRepository) GetRoleByID(id string) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *userRepository) GetRolesByIDs(ids []uuid.UUID) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (r *userRepository) GetAllRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Order("name asc").Find(&roles).Error
	return roles, err
}

func (r *userRepository) UpdateRole(role *models.Role) (*models.Role, error) {
	if err := r.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}
