package service

import (
	"testing"

	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/model"
)

func catalogRepo() *fakeExamRepo {
	return &fakeExamRepo{
		nextID: 4,
		exams: []model.Exam{
			{ID: 1, Title: "Weekly practice quiz", TimingMode: model.TimingFree, Category: model.CategoryPractice},
			{ID: 2, Title: "Algorithms midterm", TimingMode: model.TimingLimited, Category: model.CategoryMidterm},
			{ID: 3, Title: "Databases final", TimingMode: model.TimingLimited, Category: model.CategoryFinal, IsFinished: true},
			{ID: 4, Title: "Warmup practice quiz", TimingMode: model.TimingFree, Category: model.CategoryPractice},
		},
	}
}

func TestPartitionByTiming(t *testing.T) {
	svc := NewListingService(catalogRepo(), &fakeResultRepo{})

	out, err := svc.PartitionByTiming(dto.ExamListFilter{})
	if err != nil {
		t.Fatalf("PartitionByTiming failed: %v", err)
	}
	if len(out.Free) != 2 || len(out.Limited) != 2 {
		t.Fatalf("got %d free and %d limited, want 2 and 2", len(out.Free), len(out.Limited))
	}
	if len(out.Free)+len(out.Limited) != 4 {
		t.Errorf("partition lost or duplicated exams")
	}
	for _, e := range out.Free {
		if e.TimingMode != model.TimingFree {
			t.Errorf("exam %d in free bucket has timing mode %q", e.ID, e.TimingMode)
		}
	}
}

func TestPartitionByAttempt(t *testing.T) {
	results := &fakeResultRepo{results: []model.Result{
		{ID: 1, ExamID: 1, UserID: 7},
		{ID: 2, ExamID: 3, UserID: 7},
		{ID: 3, ExamID: 2, UserID: 8}, // someone else's attempt
	}}
	svc := NewListingService(catalogRepo(), results)

	out, err := svc.PartitionByAttempt(dto.ExamListFilter{}, 7)
	if err != nil {
		t.Fatalf("PartitionByAttempt failed: %v", err)
	}

	done := map[uint]bool{}
	for _, e := range out.Done {
		done[e.ID] = true
	}
	notDone := map[uint]bool{}
	for _, e := range out.NotDone {
		notDone[e.ID] = true
	}

	if !done[1] || !done[3] || len(done) != 2 {
		t.Errorf("done bucket = %v, want exams 1 and 3", done)
	}
	if !notDone[2] || !notDone[4] || len(notDone) != 2 {
		t.Errorf("not_done bucket = %v, want exams 2 and 4", notDone)
	}
	for id := range done {
		if notDone[id] {
			t.Errorf("exam %d appears in both buckets", id)
		}
	}
}

func TestListExamsFilters(t *testing.T) {
	svc := NewListingService(catalogRepo(), &fakeResultRepo{})

	byTitle, err := svc.ListExams(dto.ExamListFilter{Title: "practice"})
	if err != nil {
		t.Fatalf("ListExams failed: %v", err)
	}
	if len(byTitle) != 2 {
		t.Errorf("title filter matched %d exams, want 2", len(byTitle))
	}

	finished := true
	byState, err := svc.ListExams(dto.ExamListFilter{IsFinished: &finished})
	if err != nil {
		t.Fatalf("ListExams failed: %v", err)
	}
	if len(byState) != 1 || byState[0].ID != 3 {
		t.Errorf("is_finished filter returned %v, want only exam 3", byState)
	}
}

func TestListExamsReportsQuestionCount(t *testing.T) {
	repo := &fakeExamRepo{
		nextID: 1,
		exams: []model.Exam{{
			ID: 1, Title: "Counting quiz", TimingMode: model.TimingFree,
			Questions: []model.ExamQuestion{
				{QuestionID: 1, Mark: 1}, {QuestionID: 2, Mark: 1}, {QuestionID: 3, Mark: 1},
			},
		}},
	}
	svc := NewListingService(repo, &fakeResultRepo{})

	out, err := svc.ListExams(dto.ExamListFilter{})
	if err != nil {
		t.Fatalf("ListExams failed: %v", err)
	}
	if out[0].QuestionCount != 3 {
		t.Errorf("question count = %d, want 3", out[0].QuestionCount)
	}
}
