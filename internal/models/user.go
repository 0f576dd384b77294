package models

import "time"

type Role int

// User role constants. RoleAdmin accounts manage categories and other users;
// the account with ID 1 is the irrevocable general administrator.
const (
	RoleNormal Role = 1
	RoleAdmin  Role = 2
)

// GeneralAdminID is the fixed id of the general administrator account.
// Its role can never be changed and the account can never be deleted.
const GeneralAdminID = 1

// User represents a registered forum account
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialize password hash
	FullName     string     `json:"full_name"`
	Avatar       string     `json:"avatar,omitempty"`
	Bio          string     `json:"bio"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Role         Role       `json:"role"` // 1=Normal, 2=Admin
	CreatedAt    time.Time  `json:"created_at"`
}

// UserListItem is the admin-facing projection of a user row
type UserListItem struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD, optional
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a self-service profile edit.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
}

// ChangeRoleRequest represents an admin role change request
type ChangeRoleRequest struct {
	Role Role `json:"role"`
}
