package repository

import (
	"errors"

	"github.com/hqdat/examhub/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.Result) error
	ExistsByExamAndUser(examID, userID uint) (bool, error)
	FindByExamID(examID uint) ([]model.Result, error)
	FindByUserIDWithExam(userID uint) ([]model.Result, error)
	FindByUserIDWithDetails(userID uint) ([]model.Result, error)
	DeleteByExamID(examID uint) error
	DeleteByUserID(userID uint) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// Create inserts the result and its answer rows in one transaction. The
// (exam_id, user_id) unique index is the authoritative duplicate guard;
// violations come back as gorm.ErrDuplicatedKey.
func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(result).Error
	})
}

func (r *resultRepository) ExistsByExamAndUser(examID, userID uint) (bool, error) {
	var result model.Result
	err := r.db.Select("id").Where("exam_id = ? AND user_id = ?", examID, userID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *resultRepository) FindByExamID(examID uint) ([]model.Result, error) {
	var results []model.Result
	if err := r.db.Where("exam_id = ?", examID).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) FindByUserIDWithExam(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Preload("Exam").
		Where("user_id = ?", userID).
		Order("submitted_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) FindByUserIDWithDetails(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Preload("Exam").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("result_answers.position ASC")
		}).
		Preload("Answers.Question").
		Where("user_id = ?", userID).
		Order("submitted_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) DeleteByExamID(examID uint) error {
	return r.deleteWhere("exam_id = ?", examID)
}

func (r *resultRepository) DeleteByUserID(userID uint) error {
	return r.deleteWhere("user_id = ?", userID)
}

// deleteWhere hard-deletes matching results and their answer rows. Results
// have no soft-delete column: the only sanctioned removal is this cascade.
func (r *resultRepository) deleteWhere(cond string, arg uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&model.Result{}).Where(cond, arg).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("result_id IN ?", ids).Delete(&model.ResultAnswer{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Result{}).Error
	})
}
