package dto

import "time"

// QuestionCreateRequest is used for both creating and updating questions.
type QuestionCreateRequest struct {
	Prompt        string   `json:"prompt" binding:"required,min=10"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectOption *int     `json:"correct_option" binding:"required,min=0,max=3"`
	Explanation   string   `json:"explanation" binding:"required,min=10"`
}

// QuestionResponse is the admin view of a question, answer key included.
type QuestionResponse struct {
	ID            uint      `json:"id"`
	Prompt        string    `json:"prompt"`
	Options       []string  `json:"options"`
	CorrectOption int       `json:"correct_option"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TakingQuestionDTO is the student view of an exam question: prompt and
// options only, never the correct option or explanation.
type TakingQuestionDTO struct {
	QuestionID uint     `json:"question_id"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Mark       float64  `json:"mark"`
	Position   int      `json:"position"`
}
