package dto

import "time"

// ExamQuestionRef attaches an existing question to an exam with its mark.
type ExamQuestionRef struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Mark       float64 `json:"mark" binding:"required,gt=0"`
}

type ExamCreateRequest struct {
	Title        string            `json:"title" binding:"required,min=10"`
	Description  string            `json:"description" binding:"required,min=10"`
	Category     string            `json:"category" binding:"required,oneof=practice midterm final"`
	TimingMode   string            `json:"timing_mode" binding:"required,oneof=limited free"`
	StartTime    *time.Time        `json:"start_time"`
	EndTime      *time.Time        `json:"end_time"`
	Questions    []ExamQuestionRef `json:"questions" binding:"required,dive"`
	PassingScore float64           `json:"passing_score" binding:"min=0"`
}

type ExamUpdateRequest struct {
	Title        string            `json:"title" binding:"required,min=10"`
	Description  string            `json:"description" binding:"required,min=10"`
	Category     string            `json:"category" binding:"required,oneof=practice midterm final"`
	TimingMode   string            `json:"timing_mode" binding:"required,oneof=limited free"`
	StartTime    *time.Time        `json:"start_time"`
	EndTime      *time.Time        `json:"end_time"`
	Questions    []ExamQuestionRef `json:"questions" binding:"required,dive"`
	IsFinished   bool              `json:"is_finished"`
	PassingScore float64           `json:"passing_score" binding:"min=0"`
}

// ExamSummaryDTO is the listing view of an exam.
type ExamSummaryDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	TimingMode    string     `json:"timing_mode"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	PassingScore  float64    `json:"passing_score"`
	IsFinished    bool       `json:"is_finished"`
	QuestionCount int        `json:"question_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ExamDetailDTO is what a student receives when opening an exam to take it.
type ExamDetailDTO struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Category     string              `json:"category"`
	TimingMode   string              `json:"timing_mode"`
	StartTime    *time.Time          `json:"start_time,omitempty"`
	EndTime      *time.Time          `json:"end_time,omitempty"`
	PassingScore float64             `json:"passing_score"`
	IsFinished   bool                `json:"is_finished"`
	Questions    []TakingQuestionDTO `json:"questions"`
}

// AdminExamDTO is the admin view, marks and question ids included.
type AdminExamDTO struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Category     string            `json:"category"`
	TimingMode   string            `json:"timing_mode"`
	StartTime    *time.Time        `json:"start_time,omitempty"`
	EndTime      *time.Time        `json:"end_time,omitempty"`
	Questions    []ExamQuestionRef `json:"questions"`
	PassingScore float64           `json:"passing_score"`
	IsFinished   bool              `json:"is_finished"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ExamListFilter carries the optional query filters for exam listing.
type ExamListFilter struct {
	Title      string `form:"title"`
	IsFinished *bool  `form:"is_finished"`
	GroupBy    string `form:"group_by" binding:"omitempty,oneof=timing attempt"`
}

// TimingPartitionDTO buckets exams by timing mode. Every input exam lands in
// exactly one bucket.
type TimingPartitionDTO struct {
	Free    []ExamSummaryDTO `json:"free"`
	Limited []ExamSummaryDTO `json:"limited"`
}

// AttemptPartitionDTO buckets exams by whether the caller already holds a
// result for them.
type AttemptPartitionDTO struct {
	Done    []ExamSummaryDTO `json:"done"`
	NotDone []ExamSummaryDTO `json:"not_done"`
}
