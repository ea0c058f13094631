package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleJunior = "junior"
	RoleSenior = "senior"
)

// User maps to the users table. The password hash never leaves the API.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	FullName       *string   `db:"full_name" json:"full_name,omitempty"`
	Role           string    `db:"role" json:"role"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

var validRoles = map[string]bool{
	RoleJunior: true,
	RoleSenior: true,
}
