package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleOwner      UserRole = "owner"
	UserRoleSupervisor UserRole = "supervisor"
	UserRoleOperator   UserRole = "operator"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username"`
	Email     *string   `gorm:"size:100" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:'operator'" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// LoginInfo is returned to a successfully authenticated client.
type LoginInfo struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

var errInvalidCredentials = errors.New("invalid username or password")

// Login authenticates a user by username and password and issues a JWT.
// The error is the same for an unknown user and a wrong password.
func Login(ctx context.Context, username, password string) (*LoginInfo, error) {
	db := config.GetDB()

	user := User{}
	err := db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).Take(&user).Error
	if err != nil {
		return nil, errInvalidCredentials
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, errInvalidCredentials
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("user is disabled")
	}

	token, err := utils.JwtGenerate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginInfo{Token: token, Username: user.Username, Role: string(user.Role)}, nil
}

// NewUser is the input for creating an account.
type NewUser struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role"`
}

// CreateUser registers a new account with a bcrypt-hashed password.
func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("username is already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleOperator
	}

	user := User{
		Username: username,
		Password: string(hashed),
		Role:     role,
		IsActive: utils.NewTrue(),
	}
	if input.Email != "" {
		email := strings.TrimSpace(input.Email)
		user.Email = &email
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertOwner creates the owner account or resets its password and role
// if it already exists. Used by the seeding tool, safe to run twice.
func UpsertOwner(ctx context.Context, username, email, password string) error {
	db := config.GetDB()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := User{}
	err = db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = User{
			Username: username,
			Password: string(hashed),
			Role:     UserRoleOwner,
			IsActive: utils.NewTrue(),
		}
		if email != "" {
			user.Email = &email
		}
		return db.WithContext(ctx).Create(&user).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"password":  string(hashed),
		"role":      UserRoleOwner,
		"is_active": true,
	}
	if email != "" {
		updates["email"] = email
	}
	return db.WithContext(ctx).Model(&user).Updates(updates).Error
}
