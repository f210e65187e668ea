package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission records a student's answers to a quiz and the computed
// score. The ledger is append-only: repeat submissions create new rows
// and nothing ever mutates or deletes an existing one.
type Submission struct {
	gorm.Model
	QuizID      uint           `json:"quizId" gorm:"index;not null"`
	StudentID   uint           `json:"studentId" gorm:"index;not null"`
	Student     *User          `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Answers     datatypes.JSON `json:"answers"` // [{questionId, selectedOption}]
	Score       int            `json:"score"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// LeaderboardStudent is the student projection on leaderboard rows.
type LeaderboardStudent struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LeaderboardEntry is one row of a quiz leaderboard, ordered by score
// descending with submission time ascending as the tie-break.
type LeaderboardEntry struct {
	Student     LeaderboardStudent `json:"student"`
	Score       int                `json:"score"`
	SubmittedAt time.Time          `json:"submittedAt"`
}
