package models

import "time"

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null;size:254" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	Role               string    `gorm:"not null;default:owner;size:16" json:"role"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

func (user User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
