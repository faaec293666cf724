package service

import (
	"testing"
	"time"

	"github.com/hqdat/examhub/config"
	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
)

func examTestService() (ExamService, *fakeExamRepo) {
	examRepo := &fakeExamRepo{}
	questionRepo := &fakeQuestionRepo{questions: map[uint]model.Question{
		11: {ID: 11, Options: fourOptions(), CorrectOption: 0},
		12: {ID: 12, Options: fourOptions(), CorrectOption: 1},
		13: {ID: 13, Options: fourOptions(), CorrectOption: 2},
	}}
	cfg := &config.Config{Exam: config.Exam{MinQuestions: 3}}
	return NewExamService(examRepo, questionRepo, &fakeResultRepo{}, cfg), examRepo
}

func threeQuestions() []dto.ExamQuestionRef {
	return []dto.ExamQuestionRef{
		{QuestionID: 11, Mark: 3},
		{QuestionID: 12, Mark: 2},
		{QuestionID: 13, Mark: 5},
	}
}

func validCreateRequest() dto.ExamCreateRequest {
	return dto.ExamCreateRequest{
		Title:        "Algorithms midterm exam",
		Description:  "Covers heaps, tries and graphs",
		Category:     model.CategoryMidterm,
		TimingMode:   model.TimingFree,
		Questions:    threeQuestions(),
		PassingScore: 5,
	}
}

func TestCreateExamAssignsPositions(t *testing.T) {
	svc, repo := examTestService()

	out, err := svc.CreateExam(validCreateRequest())
	if err != nil {
		t.Fatalf("CreateExam failed: %v", err)
	}
	if len(out.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(out.Questions))
	}
	for i, eq := range repo.exams[0].Questions {
		if eq.Position != i {
			t.Errorf("question %d stored at position %d, want %d", eq.QuestionID, eq.Position, i)
		}
	}
}

func TestCreateExamLimitedTimingRequiresWindow(t *testing.T) {
	svc, _ := examTestService()

	req := validCreateRequest()
	req.TimingMode = model.TimingLimited
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Errorf("limited exam without window returned %v, want ValidationFailed", err)
	}

	start := time.Now()
	end := start.Add(-time.Hour)
	req.StartTime, req.EndTime = &start, &end
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Errorf("inverted window returned %v, want ValidationFailed", err)
	}

	end = start.Add(2 * time.Hour)
	req.EndTime = &end
	if _, err := svc.CreateExam(req); err != nil {
		t.Errorf("valid limited exam rejected: %v", err)
	}
}

func TestCreateExamFreeTimingForbidsWindow(t *testing.T) {
	svc, _ := examTestService()

	req := validCreateRequest()
	start := time.Now()
	req.StartTime = &start
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Errorf("free exam with a start time returned %v, want ValidationFailed", err)
	}
}

func TestCreateExamEnforcesMinimumQuestions(t *testing.T) {
	svc, _ := examTestService()

	req := validCreateRequest()
	req.Questions = req.Questions[:2]
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Errorf("two-question exam returned %v, want ValidationFailed", err)
	}
}

func TestCreateExamRejectsDuplicateQuestion(t *testing.T) {
	svc, _ := examTestService()

	req := validCreateRequest()
	req.Questions[2].QuestionID = 11
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindValidationFailed {
		t.Errorf("duplicated question returned %v, want ValidationFailed", err)
	}
}

func TestCreateExamRejectsUnknownQuestion(t *testing.T) {
	svc, _ := examTestService()

	req := validCreateRequest()
	req.Questions[2].QuestionID = 999
	if _, err := svc.CreateExam(req); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("unknown question returned %v, want NotFound", err)
	}
}

func TestGetExamForTakingStripsAnswerKey(t *testing.T) {
	svc, repo := examTestService()
	repo.exams = []model.Exam{{
		ID: 1, Title: "Algorithms midterm exam", TimingMode: model.TimingFree,
		Questions: []model.ExamQuestion{
			{QuestionID: 11, Mark: 3, Position: 0, Question: model.Question{ID: 11, Prompt: "What is a heap?", Options: fourOptions(), CorrectOption: 1, Explanation: "A heap is a tree."}},
		},
	}}

	out, err := svc.GetExamForTaking(1)
	if err != nil {
		t.Fatalf("GetExamForTaking failed: %v", err)
	}
	q := out.Questions[0]
	if q.Prompt != "What is a heap?" || len(q.Options) != 4 || q.Mark != 3 {
		t.Errorf("taking view = %+v, want prompt, options and mark", q)
	}
	// TakingQuestionDTO carries no correct option or explanation field; the
	// check above is that everything a student may see survived the mapping.
}

func TestDeleteExamCascadesResults(t *testing.T) {
	examRepo := &fakeExamRepo{nextID: 1, exams: []model.Exam{{ID: 1, Title: "Doomed exam", TimingMode: model.TimingFree}}}
	resultRepo := &fakeResultRepo{results: []model.Result{
		{ID: 1, ExamID: 1, UserID: 7},
		{ID: 2, ExamID: 2, UserID: 7},
	}}
	cfg := &config.Config{Exam: config.Exam{MinQuestions: 3}}
	svc := NewExamService(examRepo, &fakeQuestionRepo{}, resultRepo, cfg)

	if err := svc.DeleteExam(1); err != nil {
		t.Fatalf("DeleteExam failed: %v", err)
	}
	if len(examRepo.exams) != 0 {
		t.Error("exam not deleted")
	}
	if len(resultRepo.results) != 1 || resultRepo.results[0].ExamID != 2 {
		t.Errorf("results after cascade = %+v, want only exam 2's result", resultRepo.results)
	}
}
