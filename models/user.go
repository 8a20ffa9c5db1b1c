package models

import (
	"time"
)

// Directory roles. Staff accounts carry a section; hod/principal/admin are
// school-wide and leave Section empty.
const (
	RoleStudent   = "student"
	RoleStaff     = "staff"
	RoleHOD       = "hod"
	RolePrincipal = "principal"
	RoleAdmin     = "admin"
)

// User is a directory entry: who someone is, what role they hold, which
// section they belong to and where to reach them. Email may be empty, which
// simply suppresses mail to that person.
type User struct {
	UserID   uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username string     `gorm:"column:username;unique" json:"username"`
	Name     string     `gorm:"column:name" json:"name"`
	Password string     `gorm:"column:password" json:"-"`
	Role     string     `gorm:"column:role" json:"role"`
	Section  string     `gorm:"column:section" json:"section,omitempty"`
	Email    string     `gorm:"column:email" json:"email,omitempty"`
	CreateAt time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }
