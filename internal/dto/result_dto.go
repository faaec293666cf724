package dto

import "time"

// SubmitAnswerDTO is one answer in a submission. ChosenOption is a pointer so
// a question can be deliberately left blank; out-of-range values are treated
// as unanswered by the engine, not rejected.
type SubmitAnswerDTO struct {
	QuestionID   uint `json:"question_id" binding:"required"`
	ChosenOption *int `json:"chosen_option"`
}

type SubmitExamRequest struct {
	Answers   []SubmitAnswerDTO `json:"answers" binding:"dive"`
	TotalTime int               `json:"total_time" binding:"required,min=1"`
}

// ResultAnswerDTO is a canonicalized answer as stored: exam-question order,
// -1 for unanswered.
type ResultAnswerDTO struct {
	QuestionID   uint `json:"question_id"`
	ChosenOption int  `json:"chosen_option"`
	Position     int  `json:"position"`
}

type ResultResponse struct {
	ID           uint              `json:"id"`
	ExamID       uint              `json:"exam_id"`
	UserID       uint              `json:"user_id"`
	Score        float64           `json:"score"`
	CorrectCount int               `json:"correct_count"`
	TotalTime    int               `json:"total_time"`
	IsPassed     bool              `json:"is_passed"`
	SubmittedAt  time.Time         `json:"submitted_at"`
	Answers      []ResultAnswerDTO `json:"answers"`
}

// ReviewAnswerDTO is one answered question in a student's own result review;
// the key and explanation are shown since the attempt is already final.
type ReviewAnswerDTO struct {
	QuestionID    uint     `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
	StudentAnswer int      `json:"student_answer"`
}

// UserResultDTO is a result of the calling student with its exam metadata
// inlined.
type UserResultDTO struct {
	ExamTitle     string            `json:"exam_title"`
	Description   string            `json:"description,omitempty"`
	Category      string            `json:"category"`
	TimingMode    string            `json:"timing_mode"`
	StartTime     *time.Time        `json:"start_time,omitempty"`
	EndTime       *time.Time        `json:"end_time,omitempty"`
	PassingScore  float64           `json:"passing_score"`
	IsFinished    bool              `json:"is_finished"`
	Score         float64           `json:"score"`
	CorrectCount  int               `json:"correct_count"`
	TotalQuestion int               `json:"total_question"`
	TotalTime     int               `json:"total_time"`
	IsPassed      bool              `json:"is_passed"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	Answers       []ReviewAnswerDTO `json:"answers"`
}
