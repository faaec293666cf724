package service

import (
	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResultService exposes a student's own result history and the cascade
// deletion hooks invoked when an exam or user is removed.
type ResultService interface {
	GetResultsForUser(userID uint) ([]dto.UserResultDTO, error)
	DeleteResultsForExam(examID uint) error
	DeleteResultsForUser(userID uint) error
}

type resultService struct {
	resultRepo repository.ResultRepository
}

func NewResultService(resultRepo repository.ResultRepository) ResultService {
	return &resultService{resultRepo: resultRepo}
}

// GetResultsForUser returns the caller's results with exam metadata and the
// full question review inlined. The attempt is already final, so the answer
// key and explanation are shown alongside the student's own choice.
func (s *resultService) GetResultsForUser(userID uint) ([]dto.UserResultDTO, error) {
	results, err := s.resultRepo.FindByUserIDWithDetails(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetResultsForUser: failed to fetch results")
		return nil, apperr.Internal("failed to fetch results", err)
	}

	out := make([]dto.UserResultDTO, 0, len(results))
	for _, res := range results {
		entry := dto.UserResultDTO{
			ExamTitle:     res.Exam.Title,
			Description:   res.Exam.Description,
			Category:      res.Exam.Category,
			TimingMode:    res.Exam.TimingMode,
			StartTime:     res.Exam.StartTime,
			EndTime:       res.Exam.EndTime,
			PassingScore:  res.Exam.PassingScore,
			IsFinished:    res.Exam.IsFinished,
			Score:         res.Score,
			CorrectCount:  res.CorrectCount,
			TotalQuestion: len(res.Answers),
			TotalTime:     res.TotalTime,
			IsPassed:      res.IsPassed,
			SubmittedAt:   res.SubmittedAt,
		}
		for _, ans := range res.Answers {
			entry.Answers = append(entry.Answers, dto.ReviewAnswerDTO{
				QuestionID:    ans.QuestionID,
				Prompt:        ans.Question.Prompt,
				Options:       ans.Question.Options,
				CorrectOption: ans.Question.CorrectOption,
				Explanation:   ans.Question.Explanation,
				StudentAnswer: ans.ChosenOption,
			})
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *resultService) DeleteResultsForExam(examID uint) error {
	if err := s.resultRepo.DeleteByExamID(examID); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("DeleteResultsForExam failed")
		return apperr.Internal("failed to delete results for exam", err)
	}
	return nil
}

func (s *resultService) DeleteResultsForUser(userID uint) error {
	if err := s.resultRepo.DeleteByUserID(userID); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("DeleteResultsForUser failed")
		return apperr.Internal("failed to delete results for user", err)
	}
	return nil
}
