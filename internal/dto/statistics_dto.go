package dto

import "time"

// ExamStatDTO summarizes all results of one exam. Average and PassPercentage
// are 0 when the exam has no results yet.
type ExamStatDTO struct {
	ExamTitle      string  `json:"exam"`
	Average        float64 `json:"average"`
	PassPercentage float64 `json:"pass_percentage"`
}

// DashboardDTO is the admin overview: all users, all exams, per-exam stats.
type DashboardDTO struct {
	Users   []UserResponse   `json:"users"`
	Exams   []ExamSummaryDTO `json:"exams"`
	Results []ExamStatDTO    `json:"results"`
}

// StatisticsFilter narrows per-user statistics. ExamTitle matches exam titles
// by case-insensitive substring; Date (YYYY-MM-DD) selects exams whose window
// falls inside that calendar day.
type StatisticsFilter struct {
	ExamTitle string `form:"exam_title"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

func (f StatisticsFilter) Empty() bool {
	return f.ExamTitle == "" && f.Date == ""
}

type StatDetailDTO struct {
	ExamTitle string     `json:"exam"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	Score     float64    `json:"score"`
	IsPassed  bool       `json:"is_passed"`
}

type UserStatisticsDTO struct {
	Username        string          `json:"user"`
	StudentID       string          `json:"student_id"`
	Average         float64         `json:"average"`
	PassPercentage  float64         `json:"pass_percentage"`
	NumberPerformed int             `json:"number_performed"`
	Details         []StatDetailDTO `json:"details"`
}

// StudentDetailFilter selects students by case-insensitive full-name
// substring and/or exact student id.
type StudentDetailFilter struct {
	FullName  string `form:"full_name"`
	StudentID string `form:"student_id"`
}

// StudentAnswerDTO relabels a stored answer as the student's own choice.
// The exam's correct-answer key is deliberately absent from this view.
type StudentAnswerDTO struct {
	QuestionID    uint     `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	StudentAnswer int      `json:"student_answer"`
}

type StudentResultDTO struct {
	ExamTitle    string             `json:"exam_title"`
	Category     string             `json:"category"`
	TimingMode   string             `json:"timing_mode"`
	StartTime    *time.Time         `json:"start_time,omitempty"`
	EndTime      *time.Time         `json:"end_time,omitempty"`
	PassingScore float64            `json:"passing_score"`
	Score        float64            `json:"score"`
	CorrectCount int                `json:"correct_count"`
	TotalTime    int                `json:"total_time"`
	IsPassed     bool               `json:"is_passed"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	Answers      []StudentAnswerDTO `json:"answers"`
}

type StudentDetailDTO struct {
	Username  string             `json:"user"`
	StudentID string             `json:"student_id"`
	Details   []StudentResultDTO `json:"details"`
}
