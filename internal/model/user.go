package model

import (
	"time"
)

type UserRole string

const (
	Student  UserRole = "student"
	Tutor    UserRole = "tutor"
	Lecturer UserRole = "lecturer"
	Admin    UserRole = "admin"
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

type User struct {
	BaseModel
	Name     string     `gorm:"size:100;not null" json:"name"`
	Email    string     `gorm:"size:100;unique;not null" json:"email"`
	Password string     `gorm:"size:100;not null" json:"-"`
	Role     UserRole   `gorm:"type:enum('student','tutor','lecturer','admin');default:'student'" json:"role"`
	Status   UserStatus `gorm:"type:enum('active','suspended');default:'active'" json:"status"`
	Avatar   string     `gorm:"size:255" json:"avatar"`

	// Courses this user is enrolled in or assigned to as staff, depending on role.
	AssignedCourses IDList `gorm:"serializer:json;type:json" json:"assignedCourses"`
	// Users following this user's topics.
	Subscribers IDList `gorm:"serializer:json;type:json" json:"subscribers"`
	// Users this user follows.
	Subscribing IDList `gorm:"serializer:json;type:json" json:"subscribing"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the role can manage courses and grade work.
func (u *User) IsStaff() bool {
	return u.Role == Tutor || u.Role == Lecturer || u.Role == Admin
}
