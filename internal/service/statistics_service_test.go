package service

import (
	"testing"
	"time"

	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
)

func statsUsers() *fakeUserRepo {
	return &fakeUserRepo{users: []model.User{
		{ID: 1, Username: "alice", StudentID: "2020000001", FullName: "Alice Tran", Role: model.RoleStudent},
		{ID: 2, Username: "bob", StudentID: "2020000002", FullName: "Bob Nguyen", Role: model.RoleStudent},
		{ID: 3, Username: "root", StudentID: "", FullName: "Site Admin", Role: model.RoleAdmin},
	}}
}

func TestExamStatisticsZeroSubmissions(t *testing.T) {
	exams := &fakeExamRepo{nextID: 1, exams: []model.Exam{
		{ID: 1, Title: "Untaken exam", TimingMode: model.TimingFree},
	}}
	svc := NewStatisticsService(statsUsers(), exams, &fakeResultRepo{})

	stats, err := svc.ExamStatistics()
	if err != nil {
		t.Fatalf("ExamStatistics failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stats, want 1", len(stats))
	}
	if stats[0].Average != 0 || stats[0].PassPercentage != 0 {
		t.Errorf("untaken exam reported average %v pass %v, want zeroes", stats[0].Average, stats[0].PassPercentage)
	}
}

func TestExamStatisticsFold(t *testing.T) {
	exams := &fakeExamRepo{nextID: 1, exams: []model.Exam{
		{ID: 1, Title: "Algorithms midterm", TimingMode: model.TimingFree},
	}}
	results := &fakeResultRepo{results: []model.Result{
		{ID: 1, ExamID: 1, UserID: 1, Score: 8, IsPassed: true},
		{ID: 2, ExamID: 1, UserID: 2, Score: 4, IsPassed: false},
	}}
	svc := NewStatisticsService(statsUsers(), exams, results)

	stats, err := svc.ExamStatistics()
	if err != nil {
		t.Fatalf("ExamStatistics failed: %v", err)
	}
	if stats[0].Average != 6 {
		t.Errorf("average = %v, want 6", stats[0].Average)
	}
	if stats[0].PassPercentage != 50 {
		t.Errorf("pass percentage = %v, want 50", stats[0].PassPercentage)
	}
}

func TestUserStatisticsUnfilteredListsEveryStudent(t *testing.T) {
	exam := model.Exam{ID: 1, Title: "Algorithms midterm", TimingMode: model.TimingFree}
	results := &fakeResultRepo{
		byExam: map[uint]model.Exam{1: exam},
		results: []model.Result{
			{ID: 1, ExamID: 1, UserID: 1, Score: 8, IsPassed: true},
		},
	}
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, results)

	out, err := svc.UserStatistics(dto.StatisticsFilter{})
	if err != nil {
		t.Fatalf("UserStatistics failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want both students and no admin", len(out))
	}

	byUser := map[string]dto.UserStatisticsDTO{}
	for _, s := range out {
		byUser[s.Username] = s
	}
	if byUser["alice"].Average != 8 || byUser["alice"].NumberPerformed != 1 {
		t.Errorf("alice aggregate = %+v, want average 8 over 1 exam", byUser["alice"])
	}
	bob := byUser["bob"]
	if bob.Average != 0 || bob.NumberPerformed != 0 || bob.Details == nil {
		t.Errorf("resultless student should appear zeroed with empty details, got %+v", bob)
	}
}

func TestUserStatisticsFilteredOmitsNonMatching(t *testing.T) {
	algo := model.Exam{ID: 1, Title: "Algorithms midterm", TimingMode: model.TimingFree}
	db := model.Exam{ID: 2, Title: "Databases final", TimingMode: model.TimingFree}
	results := &fakeResultRepo{
		byExam: map[uint]model.Exam{1: algo, 2: db},
		results: []model.Result{
			{ID: 1, ExamID: 1, UserID: 1, Score: 8, IsPassed: true},
			{ID: 2, ExamID: 2, UserID: 2, Score: 3, IsPassed: false},
		},
	}
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, results)

	out, err := svc.UserStatistics(dto.StatisticsFilter{ExamTitle: "algorithms"})
	if err != nil {
		t.Fatalf("UserStatistics failed: %v", err)
	}
	if len(out) != 1 || out[0].Username != "alice" {
		t.Fatalf("filtered output = %+v, want only alice", out)
	}
}

func TestUserStatisticsNoMatchingData(t *testing.T) {
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, &fakeResultRepo{})

	_, err := svc.UserStatistics(dto.StatisticsFilter{ExamTitle: "nonexistent"})
	if apperr.KindOf(err) != apperr.KindNoMatchingData {
		t.Fatalf("got %v, want NoMatchingData", err)
	}
}

func TestUserStatisticsDateWindow(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inStart, inEnd := day.Add(9*time.Hour), day.Add(11*time.Hour)
	outStart, outEnd := day.AddDate(0, 0, 5), day.AddDate(0, 0, 5).Add(2*time.Hour)

	inWindow := model.Exam{ID: 1, Title: "Morning quiz", TimingMode: model.TimingLimited, StartTime: &inStart, EndTime: &inEnd}
	offDay := model.Exam{ID: 2, Title: "Later quiz", TimingMode: model.TimingLimited, StartTime: &outStart, EndTime: &outEnd}
	untimed := model.Exam{ID: 3, Title: "Free quiz", TimingMode: model.TimingFree}

	results := &fakeResultRepo{
		byExam: map[uint]model.Exam{1: inWindow, 2: offDay, 3: untimed},
		results: []model.Result{
			{ID: 1, ExamID: 1, UserID: 1, Score: 10, IsPassed: true},
			{ID: 2, ExamID: 2, UserID: 1, Score: 2, IsPassed: false},
			{ID: 3, ExamID: 3, UserID: 1, Score: 4, IsPassed: true},
		},
	}
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, results)

	out, err := svc.UserStatistics(dto.StatisticsFilter{Date: "2026-03-10"})
	if err != nil {
		t.Fatalf("UserStatistics failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d entries, want 1", len(out))
	}
	// Only the exam whose window lies inside the day counts; free-timing
	// exams have no window and never match a date filter.
	if out[0].NumberPerformed != 1 || out[0].Average != 10 {
		t.Errorf("aggregate = %+v, want exactly the in-window result", out[0])
	}
}

func TestUserStatisticsRejectsBadDate(t *testing.T) {
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, &fakeResultRepo{})

	_, err := svc.UserStatistics(dto.StatisticsFilter{Date: "10/03/2026"})
	if apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Fatalf("got %v, want ValidationFailed", err)
	}
}

func TestStudentDetailRelabelsAnswers(t *testing.T) {
	exam := model.Exam{ID: 1, Title: "Algorithms midterm", Category: model.CategoryMidterm, TimingMode: model.TimingFree, PassingScore: 5}
	results := &fakeResultRepo{
		byExam: map[uint]model.Exam{1: exam},
		results: []model.Result{{
			ID: 1, ExamID: 1, UserID: 1, Score: 8, CorrectCount: 2, IsPassed: true,
			Answers: []model.ResultAnswer{
				{QuestionID: 11, ChosenOption: 1, Position: 0, Question: model.Question{ID: 11, Prompt: "What is a heap?", Options: []string{"A", "B", "C", "D"}, CorrectOption: 1}},
				{QuestionID: 12, ChosenOption: model.UnansweredOption, Position: 1, Question: model.Question{ID: 12, Prompt: "What is a trie?", Options: []string{"A", "B", "C", "D"}, CorrectOption: 0}},
			},
		}},
	}
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, results)

	out, err := svc.StudentDetail(dto.StudentDetailFilter{StudentID: "2020000001"})
	if err != nil {
		t.Fatalf("StudentDetail failed: %v", err)
	}
	if len(out) != 1 || out[0].Username != "alice" {
		t.Fatalf("got %+v, want only alice", out)
	}
	if len(out[0].Details) != 1 {
		t.Fatalf("got %d result entries, want 1", len(out[0].Details))
	}

	entry := out[0].Details[0]
	if entry.ExamTitle != "Algorithms midterm" || entry.Score != 8 {
		t.Errorf("entry = %+v, want exam metadata inlined", entry)
	}
	if len(entry.Answers) != 2 {
		t.Fatalf("got %d answers, want 2", len(entry.Answers))
	}
	if entry.Answers[0].StudentAnswer != 1 {
		t.Errorf("student answer = %d, want 1", entry.Answers[0].StudentAnswer)
	}
	if entry.Answers[1].StudentAnswer != model.UnansweredOption {
		t.Errorf("blank answer = %d, want sentinel", entry.Answers[1].StudentAnswer)
	}
	if entry.Answers[0].Prompt == "" || len(entry.Answers[0].Options) != 4 {
		t.Errorf("answer should carry the question prompt and options, got %+v", entry.Answers[0])
	}
}

func TestStudentDetailNameFilter(t *testing.T) {
	svc := NewStatisticsService(statsUsers(), &fakeExamRepo{}, &fakeResultRepo{})

	out, err := svc.StudentDetail(dto.StudentDetailFilter{FullName: "nguyen"})
	if err != nil {
		t.Fatalf("StudentDetail failed: %v", err)
	}
	if len(out) != 1 || out[0].Username != "bob" {
		t.Fatalf("got %+v, want only bob for the name filter", out)
	}
}
