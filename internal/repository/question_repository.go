package repository

import (
	"github.com/hqdat/examhub/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
	ReferencedByResult(questionID uint) (bool, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

// ReferencedByResult reports whether any persisted attempt answered this
// question. Referenced questions must stay interpretable, so updates to
// them are refused upstream.
func (r *questionRepository) ReferencedByResult(questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ResultAnswer{}).Where("question_id = ?", questionID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
