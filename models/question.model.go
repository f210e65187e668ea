package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is a multiple-choice question scoped to a quiz. Options are
// stored as a JSON string array; CorrectAnswer indexes into it.
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quizId" gorm:"index;not null"`
	Text          string         `json:"text" gorm:"not null"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer int            `json:"correctAnswer"`
}

// OptionList decodes the stored options array. A malformed column
// yields an empty list rather than an error; writes validate bounds.
func (q *Question) OptionList() []string {
	var options []string
	if len(q.Options) == 0 {
		return options
	}
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil
	}
	return options
}
