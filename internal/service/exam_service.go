package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hqdat/examhub/config"
	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamService is the admin-facing exam lifecycle: create, read, update,
// delete with cascading result removal.
type ExamService interface {
	CreateExam(req dto.ExamCreateRequest) (*dto.AdminExamDTO, error)
	GetExam(id uint) (*dto.AdminExamDTO, error)
	GetAllExams() ([]dto.AdminExamDTO, error)
	GetExamForTaking(id uint) (*dto.ExamDetailDTO, error)
	UpdateExam(id uint, req dto.ExamUpdateRequest) (*dto.AdminExamDTO, error)
	DeleteExam(id uint) error
}

type examService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	minQuestions int
}

func NewExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	cfg *config.Config,
) ExamService {
	return &examService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		minQuestions: cfg.Exam.MinQuestions,
	}
}

func (s *examService) CreateExam(req dto.ExamCreateRequest) (*dto.AdminExamDTO, error) {
	if err := s.validateExam(req.TimingMode, req.StartTime, req.EndTime, req.Questions); err != nil {
		return nil, err
	}

	exam := model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TimingMode:   req.TimingMode,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PassingScore: req.PassingScore,
	}
	for i, q := range req.Questions {
		exam.Questions = append(exam.Questions, model.ExamQuestion{
			QuestionID: q.QuestionID,
			Mark:       q.Mark,
			Position:   i,
		})
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Msg("CreateExam: failed to persist exam")
		return nil, apperr.Internal("failed to create exam", err)
	}

	log.Info().Uint("examID", exam.ID).Str("title", exam.Title).Msg("Exam created")
	return toAdminExam(&exam), nil
}

func (s *examService) GetExam(id uint) (*dto.AdminExamDTO, error) {
	exam, err := s.loadExam(id)
	if err != nil {
		return nil, err
	}
	return toAdminExam(exam), nil
}

func (s *examService) GetAllExams() ([]dto.AdminExamDTO, error) {
	exams, err := s.examRepo.FindAll(repository.ExamFilter{})
	if err != nil {
		log.Error().Err(err).Msg("GetAllExams: failed to fetch exams")
		return nil, apperr.Internal("failed to fetch exams", err)
	}
	out := make([]dto.AdminExamDTO, 0, len(exams))
	for i := range exams {
		out = append(out, *toAdminExam(&exams[i]))
	}
	return out, nil
}

// GetExamForTaking is the student view: question prompts, options and marks
// only. The correct option and explanation are stripped.
func (s *examService) GetExamForTaking(id uint) (*dto.ExamDetailDTO, error) {
	exam, err := s.loadExam(id)
	if err != nil {
		return nil, err
	}

	detail := dto.ExamDetailDTO{
		ID:           exam.ID,
		Title:        exam.Title,
		Description:  exam.Description,
		Category:     exam.Category,
		TimingMode:   exam.TimingMode,
		StartTime:    exam.StartTime,
		EndTime:      exam.EndTime,
		PassingScore: exam.PassingScore,
		IsFinished:   exam.IsFinished,
		Questions:    []dto.TakingQuestionDTO{},
	}
	for _, eq := range exam.Questions {
		detail.Questions = append(detail.Questions, dto.TakingQuestionDTO{
			QuestionID: eq.QuestionID,
			Prompt:     eq.Question.Prompt,
			Options:    eq.Question.Options,
			Mark:       eq.Mark,
			Position:   eq.Position,
		})
	}
	return &detail, nil
}

func (s *examService) UpdateExam(id uint, req dto.ExamUpdateRequest) (*dto.AdminExamDTO, error) {
	if err := s.validateExam(req.TimingMode, req.StartTime, req.EndTime, req.Questions); err != nil {
		return nil, err
	}

	exam, err := s.loadExam(id)
	if err != nil {
		return nil, err
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.Category = req.Category
	exam.TimingMode = req.TimingMode
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime
	exam.IsFinished = req.IsFinished
	exam.PassingScore = req.PassingScore

	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("UpdateExam: failed to persist exam")
		return nil, apperr.Internal("failed to update exam", err)
	}

	questions := make([]model.ExamQuestion, 0, len(req.Questions))
	for i, q := range req.Questions {
		questions = append(questions, model.ExamQuestion{
			QuestionID: q.QuestionID,
			Mark:       q.Mark,
			Position:   i,
		})
	}
	if err := s.examRepo.ReplaceQuestions(exam, questions); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("UpdateExam: failed to replace questions")
		return nil, apperr.Internal("failed to update exam questions", err)
	}

	return toAdminExam(exam), nil
}

// DeleteExam removes the exam and, first, every result that references it.
func (s *examService) DeleteExam(id uint) error {
	if _, err := s.loadExam(id); err != nil {
		return err
	}
	if err := s.resultRepo.DeleteByExamID(id); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("DeleteExam: cascade delete of results failed")
		return apperr.Internal("failed to delete exam results", err)
	}
	if err := s.examRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("DeleteExam: failed to delete exam")
		return apperr.Internal("failed to delete exam", err)
	}
	log.Info().Uint("examID", id).Msg("Exam deleted")
	return nil
}

func (s *examService) loadExam(id uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("exam %d not found", id))
		}
		log.Error().Err(err).Uint("examID", id).Msg("Failed to load exam")
		return nil, apperr.Internal("failed to load exam", err)
	}
	return exam, nil
}

// validateExam enforces the structural invariants the binding layer cannot:
// timing window shape, minimum question count, positive marks, and that
// every referenced question exists exactly once.
func (s *examService) validateExam(timingMode string, start, end *time.Time, questions []dto.ExamQuestionRef) error {
	switch timingMode {
	case model.TimingLimited:
		if start == nil || end == nil {
			return apperr.Validation("limited exams require start_time and end_time", "start_time", "end_time")
		}
		if !start.Before(*end) {
			return apperr.Validation("start_time must be before end_time", "start_time", "end_time")
		}
	case model.TimingFree:
		if start != nil || end != nil {
			return apperr.Validation("free exams must not carry start_time or end_time", "start_time", "end_time")
		}
	}

	if len(questions) < s.minQuestions {
		return apperr.Validation(
			fmt.Sprintf("an exam needs at least %d questions, got %d", s.minQuestions, len(questions)),
			"questions",
		)
	}

	ids := make([]uint, 0, len(questions))
	seen := make(map[uint]bool, len(questions))
	for _, q := range questions {
		if q.Mark <= 0 {
			return apperr.Validation(fmt.Sprintf("mark for question %d must be positive", q.QuestionID), "questions")
		}
		if seen[q.QuestionID] {
			return apperr.Validation(fmt.Sprintf("question %d is listed twice", q.QuestionID), "questions")
		}
		seen[q.QuestionID] = true
		ids = append(ids, q.QuestionID)
	}

	found, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		log.Error().Err(err).Msg("validateExam: failed to look up questions")
		return apperr.Internal("failed to look up questions", err)
	}
	if len(found) != len(ids) {
		exists := make(map[uint]bool, len(found))
		for _, q := range found {
			exists[q.ID] = true
		}
		for _, id := range ids {
			if !exists[id] {
				return apperr.NotFound(fmt.Sprintf("question %d not found", id))
			}
		}
	}
	return nil
}

func toAdminExam(exam *model.Exam) *dto.AdminExamDTO {
	out := dto.AdminExamDTO{
		ID:           exam.ID,
		Title:        exam.Title,
		Description:  exam.Description,
		Category:     exam.Category,
		TimingMode:   exam.TimingMode,
		StartTime:    exam.StartTime,
		EndTime:      exam.EndTime,
		PassingScore: exam.PassingScore,
		IsFinished:   exam.IsFinished,
		CreatedAt:    exam.CreatedAt,
		Questions:    []dto.ExamQuestionRef{},
	}
	for _, eq := range exam.Questions {
		out.Questions = append(out.Questions, dto.ExamQuestionRef{
			QuestionID: eq.QuestionID,
			Mark:       eq.Mark,
		})
	}
	return &out
}
