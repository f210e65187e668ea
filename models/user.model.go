package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// DefaultAvatar is used until a Gravatar lookup finds a real picture.
const DefaultAvatar = "default-avatar.jpg"

type User struct {
	gorm.Model
	FirstName           string     `json:"firstName" gorm:"not null"`
	LastName            string     `json:"lastName" gorm:"not null"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'student'"` // admin, teacher, student
	Avatar              string     `json:"avatar" gorm:"default:'default-avatar.jpg'"`
	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	ConfirmEmailToken   string     `json:"-"`
	IsEmailConfirmed    bool       `json:"isEmailConfirmed" gorm:"default:false"`
	LastLogin           *time.Time `json:"lastLogin"`
}

// FullName joins first and last name for display fields.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
