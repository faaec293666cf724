package repository

import (
	"strings"

	"github.com/hqdat/examhub/internal/model"
	"gorm.io/gorm"
)

// ExamFilter narrows FindAll; zero values mean "no filter".
type ExamFilter struct {
	Title      string
	IsFinished *bool
}

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindAll(filter ExamFilter) ([]model.Exam, error)
	Update(exam *model.Exam) error
	ReplaceQuestions(exam *model.Exam, questions []model.ExamQuestion) error
	Delete(id uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// Creates the associated ExamQuestion rows in the same insert.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_questions.position ASC")
		}).
		Preload("Questions.Question").
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAll(filter ExamFilter) ([]model.Exam, error) {
	query := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("exam_questions.position ASC")
	})
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.IsFinished != nil {
		query = query.Where("is_finished = ?", *filter.IsFinished)
	}
	var exams []model.Exam
	if err := query.Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Omit("Questions").Save(exam).Error
}

// ReplaceQuestions swaps the exam's question list atomically.
func (r *examRepository) ReplaceQuestions(exam *model.Exam, questions []model.ExamQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", exam.ID).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		exam.Questions = questions
		return nil
	})
}

func (r *examRepository) Delete(id uint) error {
	return r.db.Delete(&model.Exam{}, id).Error
}
