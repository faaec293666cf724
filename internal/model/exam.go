package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryPractice = "practice"
	CategoryMidterm  = "midterm"
	CategoryFinal    = "final"

	TimingLimited = "limited"
	TimingFree    = "free"
)

type Exam struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty"`
	Category     string         `json:"category" gorm:"not null"` // "practice", "midterm", "final"
	TimingMode   string         `json:"timing_mode" gorm:"not null"`
	StartTime    *time.Time     `json:"start_time,omitempty"` // set iff TimingMode == "limited"
	EndTime      *time.Time     `json:"end_time,omitempty"`
	PassingScore float64        `json:"passing_score" gorm:"not null"`
	IsFinished   bool           `json:"is_finished" gorm:"not null;default:false"`
	Questions    []ExamQuestion `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ExamQuestion ties a question into an exam with its mark, preserving the
// exam's question order through Position.
type ExamQuestion struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ExamID     uint      `json:"exam_id" gorm:"not null;index"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Mark       float64   `json:"mark" gorm:"not null"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
