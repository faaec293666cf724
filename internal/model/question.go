package model

import (
	"time"

	"gorm.io/gorm"
)

// OptionCount is the fixed number of choices every question carries.
const OptionCount = 4

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	Options       []string       `json:"options" gorm:"serializer:json;not null"`
	CorrectOption int            `json:"correct_option" gorm:"not null"`
	Explanation   string         `json:"explanation" gorm:"type:text;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
