package service

import (
	"strings"
	"sync"

	"github.com/hqdat/examhub/internal/model"
	"github.com/hqdat/examhub/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the gorm-backed implementations
// closely enough for the services to be exercised without a database,
// including gorm.ErrRecordNotFound and gorm.ErrDuplicatedKey semantics.

type fakeExamRepo struct {
	exams  []model.Exam
	nextID uint
	err    error
}

func (f *fakeExamRepo) Create(exam *model.Exam) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	exam.ID = f.nextID
	f.exams = append(f.exams, *exam)
	return nil
}

func (f *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	return f.FindByIDWithQuestions(id)
}

func (f *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.exams {
		if f.exams[i].ID == id {
			exam := f.exams[i]
			return &exam, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) FindAll(filter repository.ExamFilter) ([]model.Exam, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Exam
	for _, exam := range f.exams {
		if filter.Title != "" && !strings.Contains(strings.ToLower(exam.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.IsFinished != nil && exam.IsFinished != *filter.IsFinished {
			continue
		}
		out = append(out, exam)
	}
	return out, nil
}

func (f *fakeExamRepo) Update(exam *model.Exam) error {
	for i := range f.exams {
		if f.exams[i].ID == exam.ID {
			questions := f.exams[i].Questions
			f.exams[i] = *exam
			f.exams[i].Questions = questions
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) ReplaceQuestions(exam *model.Exam, questions []model.ExamQuestion) error {
	for i := range f.exams {
		if f.exams[i].ID == exam.ID {
			f.exams[i].Questions = questions
			exam.Questions = questions
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeExamRepo) Delete(id uint) error {
	for i := range f.exams {
		if f.exams[i].ID == id {
			f.exams = append(f.exams[:i], f.exams[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []model.Result
	nextID  uint

	// byExam lets the fake emulate the Exam preload on result reads.
	byExam map[uint]model.Exam

	// hideExisting makes ExistsByExamAndUser report false regardless of
	// stored rows, simulating a submission racing past the fast path.
	hideExisting bool
	existsErr    error
}

func (f *fakeResultRepo) Create(result *model.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.results {
		if r.ExamID == result.ExamID && r.UserID == result.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	result.ID = f.nextID
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) ExistsByExamAndUser(examID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if f.hideExisting {
		return false, nil
	}
	for _, r := range f.results {
		if r.ExamID == examID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResultRepo) FindByExamID(examID uint) ([]model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Result
	for _, r := range f.results {
		if r.ExamID == examID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindByUserIDWithExam(userID uint) ([]model.Result, error) {
	return f.findByUser(userID)
}

func (f *fakeResultRepo) FindByUserIDWithDetails(userID uint) ([]model.Result, error) {
	return f.findByUser(userID)
}

func (f *fakeResultRepo) findByUser(userID uint) ([]model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Result
	for _, r := range f.results {
		if r.UserID != userID {
			continue
		}
		if exam, ok := f.byExam[r.ExamID]; ok {
			r.Exam = exam
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResultRepo) DeleteByExamID(examID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.results[:0]
	for _, r := range f.results {
		if r.ExamID != examID {
			kept = append(kept, r)
		}
	}
	f.results = kept
	return nil
}

func (f *fakeResultRepo) DeleteByUserID(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.results[:0]
	for _, r := range f.results {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.results = kept
	return nil
}

type fakeQuestionRepo struct {
	questions  map[uint]model.Question
	referenced bool
}

func (f *fakeQuestionRepo) Create(question *model.Question) error {
	if f.questions == nil {
		f.questions = make(map[uint]model.Question)
	}
	question.ID = uint(len(f.questions) + 1)
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f *fakeQuestionRepo) FindAll() ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionRepo) FindByIDs(ids []uint) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Update(question *model.Question) error {
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) Delete(id uint) error {
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) ReferencedByResult(questionID uint) (bool, error) {
	return f.referenced, nil
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) Create(user *model.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByStudentID(studentID string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].StudentID == studentID {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeUserRepo) FindNonAdmins() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role != model.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindNonAdminsByFilter(fullName, studentID string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.RoleAdmin {
			continue
		}
		if fullName != "" && !strings.Contains(strings.ToLower(u.FullName), strings.ToLower(fullName)) {
			continue
		}
		if studentID != "" && u.StudentID != studentID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(id uint) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func optionPtr(v int) *int {
	return &v
}
