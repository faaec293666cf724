package model

import "time"

// UnansweredOption is the sentinel stored when an exam question had no
// matching answer in the submission. It can never equal a correct option,
// so it contributes zero score and is never counted correct.
const UnansweredOption = -1

// Result is the single persisted outcome of one user's one attempt at one
// exam. The composite unique index closes the check-then-write race on
// concurrent submissions; rows are never updated, only cascade-deleted with
// their exam or user.
type Result struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ExamID       uint           `json:"exam_id" gorm:"not null;uniqueIndex:idx_results_exam_user"`
	UserID       uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_results_exam_user"`
	Exam         Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	User         User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalTime    int            `json:"total_time" gorm:"not null"`
	CorrectCount int            `json:"correct_count" gorm:"not null"`
	Score        float64        `json:"score" gorm:"not null"`
	IsPassed     bool           `json:"is_passed" gorm:"not null"`
	Answers      []ResultAnswer `json:"answers,omitempty" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SubmittedAt  time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ResultAnswer is one canonicalized answer row, stored in exam-question
// order regardless of the order answers arrived in.
type ResultAnswer struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	ResultID     uint     `json:"result_id" gorm:"not null;index"`
	QuestionID   uint     `json:"question_id" gorm:"not null;index"`
	Question     Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	ChosenOption int      `json:"chosen_option" gorm:"not null"` // UnansweredOption when absent
	Position     int      `json:"position" gorm:"not null"`
}
