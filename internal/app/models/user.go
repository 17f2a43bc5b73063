package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"jane@example.com"`
	Name      string    `json:"name" db:"name" example:"Jane Doe"`
	PhotoURL  string    `json:"photoURL,omitempty" db:"photo_url" example:"https://example.com/jane.jpg"`
	Password  *string   `json:"-" db:"password"` // bcrypt hash, NULL for accounts created by social sign-in
	Role      RoleType  `json:"role,omitempty" db:"role" example:"student"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasPassword reports whether the account was registered with a password
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
