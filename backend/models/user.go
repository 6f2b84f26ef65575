package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity projection handed out by the auth endpoints. Role is
// "user" on registration; "admin" is granted directly in the store by an
// operator and re-read on every admin-gated request.
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, admin
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
