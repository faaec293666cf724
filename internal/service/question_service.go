package service

import (
	"errors"
	"fmt"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestion(req dto.QuestionCreateRequest) (*dto.QuestionResponse, error)
	GetQuestion(id uint) (*dto.QuestionResponse, error)
	GetAllQuestions() ([]dto.QuestionResponse, error)
	UpdateQuestion(id uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateRequest) (*dto.QuestionResponse, error) {
	question := model.Question{
		Prompt:        req.Prompt,
		Options:       req.Options,
		CorrectOption: *req.CorrectOption,
		Explanation:   req.Explanation,
	}
	if err := s.repo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to persist question")
		return nil, apperr.Internal("failed to create question", err)
	}

	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionResponse, error) {
	question, err := s.load(id)
	if err != nil {
		return nil, err
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) GetAllQuestions() ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllQuestions: failed to fetch questions")
		return nil, apperr.Internal("failed to fetch questions", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		var item dto.QuestionResponse
		copier.Copy(&item, &q)
		resp = append(resp, item)
	}
	return resp, nil
}

// UpdateQuestion rewrites a question unless some finalized attempt already
// answered it; historical answers must stay interpretable against the
// question they were scored with.
func (s *questionService) UpdateQuestion(id uint, req dto.QuestionCreateRequest) (*dto.QuestionResponse, error) {
	question, err := s.load(id)
	if err != nil {
		return nil, err
	}

	referenced, err := s.repo.ReferencedByResult(id)
	if err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: reference check failed")
		return nil, apperr.Internal("failed to check question references", err)
	}
	if referenced {
		return nil, apperr.Forbidden(fmt.Sprintf("question %d is referenced by submitted results and cannot change", id))
	}

	question.Prompt = req.Prompt
	question.Options = req.Options
	question.CorrectOption = *req.CorrectOption
	question.Explanation = req.Explanation

	if err := s.repo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to persist question")
		return nil, apperr.Internal("failed to update question", err)
	}

	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("DeleteQuestion: failed to delete question")
		return apperr.Internal("failed to delete question", err)
	}
	return nil
}

func (s *questionService) load(id uint) (*model.Question, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("question %d not found", id))
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to load question")
		return nil, apperr.Internal("failed to load question", err)
	}
	return question, nil
}
