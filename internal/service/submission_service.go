package service

import (
	"errors"
	"fmt"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService scores a student's answers against an exam and persists
// the one and only Result for that (exam, user) pair.
type SubmissionService interface {
	SubmitExam(examID, userID uint, req dto.SubmitExamRequest) (*dto.ResultResponse, error)
}

type submissionService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewSubmissionService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) SubmissionService {
	return &submissionService{examRepo: examRepo, resultRepo: resultRepo}
}

// SubmitExam validates attempt eligibility, scores the answers, and creates
// the Result in a single transaction. The existence check up front is only
// a fast path for a friendly error; the (exam_id, user_id) unique index is
// what actually closes the check-then-write race, and its violation is
// reported as the same AlreadySubmitted.
func (s *submissionService) SubmitExam(examID, userID uint, req dto.SubmitExamRequest) (*dto.ResultResponse, error) {
	exists, err := s.resultRepo.ExistsByExamAndUser(examID, userID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Uint("userID", userID).Msg("SubmitExam: duplicate pre-check failed")
		return nil, apperr.Internal("failed to check previous attempts", err)
	}
	if exists {
		return nil, apperr.AlreadySubmitted(fmt.Sprintf("exam %d was already submitted", examID))
	}

	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("exam %d not found", examID))
		}
		log.Error().Err(err).Uint("examID", examID).Msg("SubmitExam: failed to load exam")
		return nil, apperr.Internal("failed to load exam", err)
	}

	// Answers are matched by question identity, never by position in the
	// submitted slice. First entry wins when a question id is repeated.
	chosenByQuestion := make(map[uint]*int, len(req.Answers))
	for _, a := range req.Answers {
		if _, seen := chosenByQuestion[a.QuestionID]; seen {
			log.Warn().Uint("questionID", a.QuestionID).Uint("examID", examID).Msg("SubmitExam: duplicate answer entry ignored")
			continue
		}
		chosenByQuestion[a.QuestionID] = a.ChosenOption
	}

	result := model.Result{
		ExamID:    examID,
		UserID:    userID,
		TotalTime: req.TotalTime,
	}

	for _, eq := range exam.Questions {
		chosen := model.UnansweredOption
		if ptr, ok := chosenByQuestion[eq.QuestionID]; ok && ptr != nil {
			if *ptr >= 0 && *ptr < len(eq.Question.Options) {
				chosen = *ptr
			}
		}
		if chosen == eq.Question.CorrectOption {
			result.Score += eq.Mark
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, model.ResultAnswer{
			QuestionID:   eq.QuestionID,
			ChosenOption: chosen,
			Position:     eq.Position,
		})
	}

	result.IsPassed = result.Score >= exam.PassingScore

	if err := s.resultRepo.Create(&result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent submission won the race; same outcome for the caller.
			return nil, apperr.AlreadySubmitted(fmt.Sprintf("exam %d was already submitted", examID))
		}
		log.Error().Err(err).Uint("examID", examID).Uint("userID", userID).Msg("SubmitExam: failed to persist result")
		return nil, apperr.Internal("failed to persist result", err)
	}

	log.Info().
		Uint("examID", examID).
		Uint("userID", userID).
		Float64("score", result.Score).
		Int("correct", result.CorrectCount).
		Bool("passed", result.IsPassed).
		Msg("Exam submitted")

	resp := dto.ResultResponse{
		ID:           result.ID,
		ExamID:       result.ExamID,
		UserID:       result.UserID,
		Score:        result.Score,
		CorrectCount: result.CorrectCount,
		TotalTime:    result.TotalTime,
		IsPassed:     result.IsPassed,
		SubmittedAt:  result.SubmittedAt,
	}
	for _, ans := range result.Answers {
		resp.Answers = append(resp.Answers, dto.ResultAnswerDTO{
			QuestionID:   ans.QuestionID,
			ChosenOption: ans.ChosenOption,
			Position:     ans.Position,
		})
	}
	return &resp, nil
}
