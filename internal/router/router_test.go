package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/examhub/internal/aiquiz"
	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/attempt"
	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/router"
	"github.com/saulo-duarte/examhub/internal/testutil"
	"github.com/saulo-duarte/examhub/internal/user"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	os.Setenv("JWT_SECRET", "router-test-secret")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })
	auth.Init()

	db := testutil.NewDB(t,
		&user.User{}, &exam.Exam{}, &exam.Question{},
		&assignment.Assignment{}, &attempt.Attempt{}, &attempt.Result{},
	)

	users := user.NewUserContainer(db)
	exams := exam.NewExamContainer(db)
	assignments := assignment.NewAssignmentContainer(db, exams.Service, users.Service)
	attempts := attempt.NewAttemptContainer(db, exams.Service, assignments.Service)
	drafts := aiquiz.NewHandler(aiquiz.NewService(nil, exams.Service))

	return router.New(router.RouterConfig{
		UserHandler:       users.Handler,
		ExamHandler:       exams.Handler,
		AssignmentHandler: assignments.Handler,
		AttemptHandler:    attempts.Handler,
		AIQuizHandler:     drafts,
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(uuid.NewString(), role, time.Minute)
	require.NoError(t, err)
	return tok
}

func TestRouterAccess(t *testing.T) {
	h := newHandler(t)
	admin := token(t, "ADMIN")
	student := token(t, "USER")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"admin list without token", http.MethodGet, "/admin/exams", "", "", http.StatusUnauthorized},
		{"admin list as user", http.MethodGet, "/admin/exams", student, "", http.StatusForbidden},
		{"admin list as admin", http.MethodGet, "/admin/exams", admin, "", http.StatusOK},
		{"admin users", http.MethodGet, "/admin/users", admin, "", http.StatusOK},
		{"assignments of unknown user", http.MethodGet, "/admin/users/" + uuid.NewString() + "/assignments", admin, "", http.StatusNotFound},
		{"drafting without provider", http.MethodPost, "/admin/question-drafts", admin, `{"exam_id":"` + uuid.NewString() + `","topic":"TLS"}`, http.StatusServiceUnavailable},
		{"available exams", http.MethodGet, "/exams/available", student, "", http.StatusOK},
		{"my results", http.MethodGet, "/results", student, "", http.StatusOK},
		{"results need a token", http.MethodGet, "/results", "", "", http.StatusUnauthorized},
		{"logout is public", http.MethodPost, "/auth/logout", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
