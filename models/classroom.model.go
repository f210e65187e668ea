package models

import "gorm.io/gorm"

// Classroom is owned by one teacher and joined by students through
// ClassroomMembership records. The join code is globally unique and
// assigned once at creation; it is never regenerated.
type Classroom struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Code        string `json:"code" gorm:"uniqueIndex;size:10;not null"`
	TeacherID   uint   `json:"teacherId" gorm:"index;not null"`
	Teacher     *User  `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive" gorm:"default:true"`
}

// QuizSummary is the projection of a classroom's quizzes returned on
// classroom detail reads.
type QuizSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
