package attempt_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/attempt"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/testutil"
	"github.com/saulo-duarte/examhub/internal/user"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewDB(t,
		&user.User{}, &exam.Exam{}, &exam.Question{},
		&assignment.Assignment{}, &attempt.Attempt{}, &attempt.Result{},
	)
}

func seedUserAndExam(t *testing.T, db *gorm.DB, title string) (*user.User, *exam.Exam) {
	t.Helper()
	u := &user.User{Email: title + "@example.com", FullName: title}
	require.NoError(t, db.Create(u).Error)
	e := &exam.Exam{Title: title, DurationMinutes: 10, IsActive: true}
	require.NoError(t, db.Create(e).Error)
	return u, e
}

func TestCreateResultUniquePerUserAndExam(t *testing.T) {
	db := newDB(t)
	repo := attempt.NewRepository(db)
	ctx := context.Background()
	u, e := seedUserAndExam(t, db, "unique")
	now := time.Now().UTC()

	first := &attempt.Result{UserID: u.ID, ExamID: e.ID, TotalQuestions: 2, CorrectAnswers: 2,
		Score: 100, IsPassed: true, Answers: []byte(`["A","B"]`), StartedAt: now, CompletedAt: now}
	created, err := repo.CreateResult(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	dup := &attempt.Result{UserID: u.ID, ExamID: e.ID, TotalQuestions: 2, StartedAt: now, CompletedAt: now}
	created, err = repo.CreateResult(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&attempt.Result{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindResult(ctx, u.ID, e.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
	assert.JSONEq(t, `["A","B"]`, string(found.Answers))

	loaded, err := repo.GetResult(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "unique", loaded.Exam.Title)
}

func TestRecordAttemptKeepsFirst(t *testing.T) {
	db := newDB(t)
	repo := attempt.NewRepository(db)
	ctx := context.Background()
	u, e := seedUserAndExam(t, db, "attempt")
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	a, err := repo.RecordAttempt(ctx, &attempt.Attempt{UserID: u.ID, ExamID: e.ID, StartedAt: t0})
	require.NoError(t, err)
	again, err := repo.RecordAttempt(ctx, &attempt.Attempt{UserID: u.ID, ExamID: e.ID, StartedAt: t0.Add(time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, a.ID, again.ID)
	assert.True(t, t0.Equal(again.StartedAt), "started_at = %v", again.StartedAt)

	stored, err := repo.GetAttempt(ctx, u.ID, e.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, a.ID, stored.ID)
}

func TestListResultsByUserNewestFirst(t *testing.T) {
	db := newDB(t)
	repo := attempt.NewRepository(db)
	ctx := context.Background()
	u, older := seedUserAndExam(t, db, "older")
	newer := &exam.Exam{Title: "newer", DurationMinutes: 10, IsActive: true}
	require.NoError(t, db.Create(newer).Error)
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, e := range []*exam.Exam{older, newer} {
		at := t0.Add(time.Duration(i) * time.Hour)
		_, err := repo.CreateResult(ctx, &attempt.Result{UserID: u.ID, ExamID: e.ID, TotalQuestions: 1, StartedAt: at, CompletedAt: at})
		require.NoError(t, err)
	}

	results, err := repo.ListResultsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "newer", results[0].Exam.Title)
	assert.Equal(t, "older", results[1].Exam.Title)

	_, err = repo.GetResult(ctx, newer.ID)
	assert.ErrorIs(t, err, attempt.ErrResultNotFound)
}
