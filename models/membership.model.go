package models

import "time"

// ClassroomMembership links one student to one classroom they joined.
// The ledger is hard-deleted on removal; the composite unique index
// rejects a duplicate join of the same pair.
type ClassroomMembership struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ClassroomID uint      `json:"classroomId" gorm:"uniqueIndex:idx_classroom_student;not null"`
	StudentID   uint      `json:"studentId" gorm:"uniqueIndex:idx_classroom_student;not null"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ClassroomMember is the read-side projection of a membership joined
// with the student's display fields.
type ClassroomMember struct {
	MembershipID uint      `json:"membershipId"`
	StudentID    uint      `json:"studentId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	JoinedAt     time.Time `json:"joinedAt"`
}
