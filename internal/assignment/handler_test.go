package assignment_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/config"
)

func newRouter(e *env) http.Handler {
	r := chi.NewRouter()
	r.Mount("/users/{userID}/assignments", assignment.Routes(assignment.NewHandler(e.svc)))
	return r
}

func TestHandlerStatusCodes(t *testing.T) {
	e := newEnv(t)
	h := newRouter(e)
	ex := e.newExam(t, "Geometry")
	base := "/users/" + e.user.ID.String() + "/assignments"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		warned bool
	}{
		{"bad user id", http.MethodGet, "/users/nope/assignments/", "", http.StatusBadRequest, true},
		{"bad exam id", http.MethodPost, base + "/nope", "", http.StatusBadRequest, true},
		{"bad body", http.MethodPut, base + "/", "{", http.StatusBadRequest, true},
		{"unknown exam", http.MethodPost, base + "/" + uuid.NewString(), "", http.StatusNotFound, true},
		{"assign", http.MethodPost, base + "/" + ex.ID.String(), "", http.StatusNoContent, false},
		{"replace", http.MethodPut, base + "/", `{"exam_ids":["` + ex.ID.String() + `"]}`, http.StatusNoContent, false},
		{"list", http.MethodGet, base + "/", "", http.StatusOK, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := config.Logger.ReplaceHooks(make(logrus.LevelHooks))
			t.Cleanup(func() { config.Logger.ReplaceHooks(original) })
			hook := test.NewLocal(config.Logger)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.warned {
				var warned bool
				for _, entry := range hook.AllEntries() {
					warned = warned || entry.Level == logrus.WarnLevel
				}
				assert.True(t, warned)
			}
		})
	}

	assert.Equal(t, []uuid.UUID{ex.ID}, e.assignedIDs(t))
}
