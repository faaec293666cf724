package service

import (
	"sync"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// ListingService partitions the exam catalog into actionable buckets for the
// caller. Both partitions are strict: every exam lands in exactly one bucket
// and the union reconstructs the input.
type ListingService interface {
	ListExams(filter dto.ExamListFilter) ([]dto.ExamSummaryDTO, error)
	PartitionByTiming(filter dto.ExamListFilter) (*dto.TimingPartitionDTO, error)
	PartitionByAttempt(filter dto.ExamListFilter, userID uint) (*dto.AttemptPartitionDTO, error)
}

type listingService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewListingService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) ListingService {
	return &listingService{examRepo: examRepo, resultRepo: resultRepo}
}

func (s *listingService) ListExams(filter dto.ExamListFilter) ([]dto.ExamSummaryDTO, error) {
	exams, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.ExamSummaryDTO, 0, len(exams))
	for _, exam := range exams {
		summaries = append(summaries, toExamSummary(exam))
	}
	return summaries, nil
}

func (s *listingService) PartitionByTiming(filter dto.ExamListFilter) (*dto.TimingPartitionDTO, error) {
	exams, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}
	out := dto.TimingPartitionDTO{
		Free:    []dto.ExamSummaryDTO{},
		Limited: []dto.ExamSummaryDTO{},
	}
	for _, exam := range exams {
		if exam.TimingMode == model.TimingFree {
			out.Free = append(out.Free, toExamSummary(exam))
		} else {
			out.Limited = append(out.Limited, toExamSummary(exam))
		}
	}
	return &out, nil
}

// PartitionByAttempt splits exams by whether userID already holds a result
// for them. The per-exam existence checks are independent reads, so they run
// concurrently; each goroutine writes only its own slot.
func (s *listingService) PartitionByAttempt(filter dto.ExamListFilter, userID uint) (*dto.AttemptPartitionDTO, error) {
	exams, err := s.fetch(filter)
	if err != nil {
		return nil, err
	}

	attempted := make([]bool, len(exams))
	errs := make([]error, len(exams))

	var wg sync.WaitGroup
	for i := range exams {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			done, checkErr := s.resultRepo.ExistsByExamAndUser(exams[idx].ID, userID)
			attempted[idx] = done
			errs[idx] = checkErr
		}(i)
	}
	wg.Wait()

	for i, checkErr := range errs {
		if checkErr != nil {
			log.Error().Err(checkErr).Uint("examID", exams[i].ID).Uint("userID", userID).Msg("PartitionByAttempt: attempt check failed")
			return nil, apperr.Internal("failed to check attempt status", checkErr)
		}
	}

	out := dto.AttemptPartitionDTO{
		Done:    []dto.ExamSummaryDTO{},
		NotDone: []dto.ExamSummaryDTO{},
	}
	for i, exam := range exams {
		if attempted[i] {
			out.Done = append(out.Done, toExamSummary(exam))
		} else {
			out.NotDone = append(out.NotDone, toExamSummary(exam))
		}
	}
	return &out, nil
}

func (s *listingService) fetch(filter dto.ExamListFilter) ([]model.Exam, error) {
	exams, err := s.examRepo.FindAll(repository.ExamFilter{
		Title:      filter.Title,
		IsFinished: filter.IsFinished,
	})
	if err != nil {
		log.Error().Err(err).Msg("ListExams: failed to fetch exams")
		return nil, apperr.Internal("failed to fetch exams", err)
	}
	return exams, nil
}

func toExamSummary(exam model.Exam) dto.ExamSummaryDTO {
	return dto.ExamSummaryDTO{
		ID:            exam.ID,
		Title:         exam.Title,
		Description:   exam.Description,
		Category:      exam.Category,
		TimingMode:    exam.TimingMode,
		StartTime:     exam.StartTime,
		EndTime:       exam.EndTime,
		PassingScore:  exam.PassingScore,
		IsFinished:    exam.IsFinished,
		QuestionCount: len(exam.Questions),
		CreatedAt:     exam.CreatedAt,
	}
}
