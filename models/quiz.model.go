package models

import (
	"time"

	"gorm.io/gorm"
)

// Quiz statuses derived at read time from the scheduling window. Never
// stored or cached.
const (
	QuizStatusInactive  = "inactive"
	QuizStatusScheduled = "scheduled"
	QuizStatusEnded     = "ended"
	QuizStatusActive    = "active"
)

type Quiz struct {
	gorm.Model
	Title            string     `json:"title" gorm:"not null"`
	ClassroomID      uint       `json:"classroomId" gorm:"index;not null"`
	Classroom        *Classroom `json:"classroom,omitempty" gorm:"foreignKey:ClassroomID"`
	TeacherID        uint       `json:"teacherId" gorm:"index;not null"`
	Teacher          *User      `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Duration         int        `json:"duration"` // minutes
	StartsOn         time.Time  `json:"startsOn" gorm:"index"`
	EndsOn           *time.Time `json:"endsOn"`
	IsActive         bool       `json:"isActive" gorm:"default:true"`
	Instructions     string     `json:"instructions"`
	PassScore        int        `json:"passScore" gorm:"default:0"`
	ShuffleQuestions bool       `json:"shuffleQuestions" gorm:"default:false"`
	ShowResults      bool       `json:"showResults" gorm:"default:true"`
	Questions        []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Status reports the scheduling state of the quiz at the given instant.
func (q *Quiz) Status(now time.Time) string {
	if !q.IsActive {
		return QuizStatusInactive
	}
	if now.Before(q.StartsOn) {
		return QuizStatusScheduled
	}
	if q.EndsOn != nil && now.After(*q.EndsOn) {
		return QuizStatusEnded
	}
	return QuizStatusActive
}

// IsCurrentlyActive reports whether the quiz is open for taking right now.
func (q *Quiz) IsCurrentlyActive(now time.Time) bool {
	return q.Status(now) == QuizStatusActive
}
