package models

import "time"

// Request bodies shared between validator middleware and controllers.
// Validators run the struct tags, stash the parsed value in c.Locals
// and controllers pull it back out typed.

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=teacher student"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type CreateClassroomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateClassroomRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type JoinClassroomRequest struct {
	Code string `json:"code" validate:"required,min=6,max=10"`
}

type RemoveStudentRequest struct {
	StudentID uint `json:"studentId" validate:"required"`
}

// QuestionInput carries one question in an inline batch. CorrectAnswer
// is a pointer so a missing field is distinguishable from index 0.
type QuestionInput struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required,min=0"`
}

type CreateQuizRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	ClassroomID      uint            `json:"classroomId" validate:"required"`
	Duration         int             `json:"duration" validate:"required,min=1"`
	StartsOn         time.Time       `json:"startsOn" validate:"required"`
	EndsOn           *time.Time      `json:"endsOn"`
	Instructions     string          `json:"instructions" validate:"max=2000"`
	PassScore        int             `json:"passScore" validate:"min=0"`
	ShuffleQuestions bool            `json:"shuffleQuestions"`
	ShowResults      *bool           `json:"showResults"`
	Questions        []QuestionInput `json:"questions" validate:"omitempty,dive"`
}

type UpdateQuizRequest struct {
	Title     string          `json:"title" validate:"omitempty,max=200"`
	Questions []QuestionInput `json:"questions" validate:"omitempty,dive"`
}

type AnswerInput struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption" validate:"min=0"`
}

type SubmitQuizRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	QuizID        uint     `json:"quizId" validate:"required"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required,min=0"`
}

type UpdateQuestionRequest struct {
	Text          *string  `json:"text"`
	Options       []string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"omitempty,min=0"`
}
