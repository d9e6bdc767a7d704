package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

func ValidRole(r string) bool {
	switch UserRole(r) {
	case Student, Teacher, Admin:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Name           string   `gorm:"size:100;not null" json:"name"`
	Email          string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string   `gorm:"size:100;not null" json:"-"`
	Role           UserRole `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Bio            string   `gorm:"type:text" json:"bio"`
	Specialization string   `gorm:"size:255" json:"specialization"`
	ProfilePicture string   `gorm:"size:255" json:"profilePicture"`

	IsEmailVerified         bool       `gorm:"default:false" json:"isEmailVerified"`
	VerificationToken       string     `gorm:"size:128;index" json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`
	ResetPasswordToken      string     `gorm:"size:128;index" json:"-"`
	ResetPasswordExpiry     *time.Time `json:"-"`

	SavedBlogs []Blog `gorm:"many2many:user_saved_blogs" json:"-"`
	// Teacher bookkeeping.
	AssignedCourses []Course `gorm:"many2many:teacher_courses" json:"-"`
	ActiveStudents  []User   `gorm:"many2many:teacher_students;joinForeignKey:TeacherID;joinReferences:StudentID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}
