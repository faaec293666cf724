package service

import (
	"strings"
	"time"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// StatisticsService folds results into per-exam and per-user summaries.
// Administrators are excluded from every aggregate.
type StatisticsService interface {
	Dashboard() (*dto.DashboardDTO, error)
	ExamStatistics() ([]dto.ExamStatDTO, error)
	UserStatistics(filter dto.StatisticsFilter) ([]dto.UserStatisticsDTO, error)
	StudentDetail(filter dto.StudentDetailFilter) ([]dto.StudentDetailDTO, error)
}

type statisticsService struct {
	userRepo   repository.UserRepository
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewStatisticsService(
	userRepo repository.UserRepository,
	examRepo repository.ExamRepository,
	resultRepo repository.ResultRepository,
) StatisticsService {
	return &statisticsService{userRepo: userRepo, examRepo: examRepo, resultRepo: resultRepo}
}

// Dashboard is the admin landing view: every user, every exam, and the
// per-exam fold in one response.
func (s *statisticsService) Dashboard() (*dto.DashboardDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Dashboard: failed to fetch users")
		return nil, apperr.Internal("failed to fetch users", err)
	}

	stats, exams, err := s.examStatistics()
	if err != nil {
		return nil, err
	}

	out := dto.DashboardDTO{Results: stats}
	for _, u := range users {
		var ur dto.UserResponse
		copier.Copy(&ur, &u)
		out.Users = append(out.Users, ur)
	}
	for _, exam := range exams {
		out.Exams = append(out.Exams, toExamSummary(exam))
	}
	return &out, nil
}

func (s *statisticsService) ExamStatistics() ([]dto.ExamStatDTO, error) {
	stats, _, err := s.examStatistics()
	return stats, err
}

func (s *statisticsService) examStatistics() ([]dto.ExamStatDTO, []model.Exam, error) {
	exams, err := s.examRepo.FindAll(repository.ExamFilter{})
	if err != nil {
		log.Error().Err(err).Msg("ExamStatistics: failed to fetch exams")
		return nil, nil, apperr.Internal("failed to fetch exams", err)
	}

	stats := make([]dto.ExamStatDTO, 0, len(exams))
	for _, exam := range exams {
		results, err := s.resultRepo.FindByExamID(exam.ID)
		if err != nil {
			log.Error().Err(err).Uint("examID", exam.ID).Msg("ExamStatistics: failed to fetch results")
			return nil, nil, apperr.Internal("failed to fetch results", err)
		}

		var total float64
		var passed int
		for _, res := range results {
			total += res.Score
			if res.IsPassed {
				passed++
			}
		}

		stat := dto.ExamStatDTO{ExamTitle: exam.Title}
		// An exam nobody took reports 0, never NaN.
		if len(results) > 0 {
			stat.Average = total / float64(len(results))
			stat.PassPercentage = float64(passed) / float64(len(results)) * 100
		}
		stats = append(stats, stat)
	}
	return stats, exams, nil
}

// UserStatistics folds each non-admin user's results, optionally narrowed by
// exam-title substring and/or a calendar-date window. Unfiltered, every
// student is listed even with zero results; filtered, only students with at
// least one match appear, and an empty aggregate is NoMatchingData.
func (s *statisticsService) UserStatistics(filter dto.StatisticsFilter) ([]dto.UserStatisticsDTO, error) {
	users, err := s.userRepo.FindNonAdmins()
	if err != nil {
		log.Error().Err(err).Msg("UserStatistics: failed to fetch users")
		return nil, apperr.Internal("failed to fetch users", err)
	}

	var dayStart, dayEnd time.Time
	if filter.Date != "" {
		day, parseErr := time.Parse("2006-01-02", filter.Date)
		if parseErr != nil {
			return nil, apperr.Validation("invalid date filter, expected YYYY-MM-DD", "date")
		}
		dayStart = day
		dayEnd = day.Add(24*time.Hour - time.Nanosecond)
	}

	filtered := !filter.Empty()
	out := make([]dto.UserStatisticsDTO, 0, len(users))

	for _, user := range users {
		results, err := s.resultRepo.FindByUserIDWithExam(user.ID)
		if err != nil {
			log.Error().Err(err).Uint("userID", user.ID).Msg("UserStatistics: failed to fetch results")
			return nil, apperr.Internal("failed to fetch results", err)
		}

		var total float64
		var passed, count int
		var details []dto.StatDetailDTO
		for _, res := range results {
			if filter.ExamTitle != "" && !strings.Contains(strings.ToLower(res.Exam.Title), strings.ToLower(filter.ExamTitle)) {
				continue
			}
			if filter.Date != "" && !examInWindow(res.Exam, dayStart, dayEnd) {
				continue
			}
			total += res.Score
			count++
			if res.IsPassed {
				passed++
			}
			details = append(details, dto.StatDetailDTO{
				ExamTitle: res.Exam.Title,
				Start:     res.Exam.StartTime,
				End:       res.Exam.EndTime,
				Score:     res.Score,
				IsPassed:  res.IsPassed,
			})
		}

		if count == 0 {
			if filtered {
				continue
			}
			out = append(out, dto.UserStatisticsDTO{
				Username:  user.Username,
				StudentID: user.StudentID,
				Details:   []dto.StatDetailDTO{},
			})
			continue
		}

		out = append(out, dto.UserStatisticsDTO{
			Username:        user.Username,
			StudentID:       user.StudentID,
			Average:         total / float64(count),
			PassPercentage:  float64(passed) / float64(count) * 100,
			NumberPerformed: count,
			Details:         details,
		})
	}

	if filtered && len(out) == 0 {
		return nil, apperr.NoMatchingData("no results match the given filter")
	}
	return out, nil
}

// StudentDetail returns each matching non-admin user's full result history,
// exam metadata inlined and each answer relabeled as the student's own. The
// correct-answer key is never exposed in this view.
func (s *statisticsService) StudentDetail(filter dto.StudentDetailFilter) ([]dto.StudentDetailDTO, error) {
	users, err := s.userRepo.FindNonAdminsByFilter(filter.FullName, filter.StudentID)
	if err != nil {
		log.Error().Err(err).Msg("StudentDetail: failed to fetch users")
		return nil, apperr.Internal("failed to fetch users", err)
	}

	out := make([]dto.StudentDetailDTO, 0, len(users))
	for _, user := range users {
		results, err := s.resultRepo.FindByUserIDWithDetails(user.ID)
		if err != nil {
			log.Error().Err(err).Uint("userID", user.ID).Msg("StudentDetail: failed to fetch results")
			return nil, apperr.Internal("failed to fetch results", err)
		}

		detail := dto.StudentDetailDTO{
			Username:  user.Username,
			StudentID: user.StudentID,
			Details:   []dto.StudentResultDTO{},
		}
		for _, res := range results {
			entry := dto.StudentResultDTO{
				ExamTitle:    res.Exam.Title,
				Category:     res.Exam.Category,
				TimingMode:   res.Exam.TimingMode,
				StartTime:    res.Exam.StartTime,
				EndTime:      res.Exam.EndTime,
				PassingScore: res.Exam.PassingScore,
				Score:        res.Score,
				CorrectCount: res.CorrectCount,
				TotalTime:    res.TotalTime,
				IsPassed:     res.IsPassed,
				SubmittedAt:  res.SubmittedAt,
			}
			for _, ans := range res.Answers {
				entry.Answers = append(entry.Answers, dto.StudentAnswerDTO{
					QuestionID:    ans.QuestionID,
					Prompt:        ans.Question.Prompt,
					Options:       ans.Question.Options,
					StudentAnswer: ans.ChosenOption,
				})
			}
			detail.Details = append(detail.Details, entry)
		}
		out = append(out, detail)
	}
	return out, nil
}

func examInWindow(exam model.Exam, dayStart, dayEnd time.Time) bool {
	if exam.StartTime == nil || exam.EndTime == nil {
		return false
	}
	return !exam.StartTime.Before(dayStart) && !exam.EndTime.After(dayEnd)
}
