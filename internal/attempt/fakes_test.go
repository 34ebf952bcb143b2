package attempt_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/attempt"
	"github.com/saulo-duarte/examhub/internal/exam"
)

type pair struct {
	user, exam uuid.UUID
}

// memRepo is an in-memory AttemptRepository that enforces one attempt and
// one result per (user, exam) the way the unique indexes do.
type memRepo struct {
	mu       sync.RWMutex
	attempts map[pair]*attempt.Attempt
	results  map[pair]*attempt.Result
	titles   map[uuid.UUID]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		attempts: map[pair]*attempt.Attempt{},
		results:  map[pair]*attempt.Result{},
		titles:   map[uuid.UUID]string{},
	}
}

func (m *memRepo) RecordAttempt(ctx context.Context, a *attempt.Attempt) (*attempt.Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{a.UserID, a.ExamID}
	if existing, ok := m.attempts[key]; ok {
		cp := *existing
		return &cp, nil
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.attempts[key] = &cp
	return a, nil
}

func (m *memRepo) GetAttempt(ctx context.Context, userID, examID uuid.UUID) (*attempt.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[pair{userID, examID}]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) CreateResult(ctx context.Context, r *attempt.Result) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{r.UserID, r.ExamID}
	if _, ok := m.results[key]; ok {
		return false, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	m.results[key] = &cp
	return true, nil
}

func (m *memRepo) FindResult(ctx context.Context, userID, examID uuid.UUID) (*attempt.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[pair{userID, examID}]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) GetResult(ctx context.Context, id uuid.UUID) (*attempt.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.results {
		if r.ID == id {
			cp := *r
			cp.Exam.Title = m.titles[r.ExamID]
			return &cp, nil
		}
	}
	return nil, attempt.ErrResultNotFound
}

func (m *memRepo) ListResultsByUser(ctx context.Context, userID uuid.UUID) ([]*attempt.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*attempt.Result
	for _, r := range m.results {
		if r.UserID == userID {
			cp := *r
			cp.Exam.Title = m.titles[r.ExamID]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (m *memRepo) resultCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}

type memExams struct {
	mu    sync.RWMutex
	exams map[uuid.UUID]*exam.Exam
}

func (f *memExams) GetActiveExam(ctx context.Context, id uuid.UUID) (*exam.Exam, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.exams[id]
	if !ok || !e.IsActive {
		return nil, exam.ErrExamNotFound
	}
	cp := *e
	return &cp, nil
}

type memAssignments struct {
	mu       sync.RWMutex
	assigned map[pair]bool
}

func (f *memAssignments) IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.assigned[pair{userID, examID}], nil
}

func (f *memAssignments) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*assignment.AvailableExam, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*assignment.AvailableExam
	for k := range f.assigned {
		if k.user == userID {
			out = append(out, &assignment.AvailableExam{ExamID: k.exam})
		}
	}
	return out, nil
}

func (f *memAssignments) revoke(userID, examID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.assigned, pair{userID, examID})
}
