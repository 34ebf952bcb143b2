package exam_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/validation"
)

func TestHandlerStatusCodes(t *testing.T) {
	svc, _ := newService(t)
	routes := exam.Routes(exam.NewHandler(svc))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/", `{"title":"HTTP","duration_minutes":20}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created exam.Exam
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/" + created.ID.String()

	t.Run("validation errors list fields", func(t *testing.T) {
		rec := do(http.MethodPost, "/", `{"title":"","duration_minutes":500}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var verr validation.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verr))
		fields := map[string]bool{}
		for _, f := range verr.Fields {
			fields[f.Field] = true
		}
		assert.True(t, fields["title"])
		assert.True(t, fields["duration_minutes"])
	})

	t.Run("malformed id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/not-a-uuid", "").Code)
	})

	t.Run("unknown exam", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/00000000-0000-0000-0000-000000000001", "").Code)
	})

	t.Run("stale version", func(t *testing.T) {
		body := `{"title":"HTTP/2","duration_minutes":20,"is_active":true,"version":1}`
		assert.Equal(t, http.StatusOK, do(http.MethodPut, path, body).Code)
		assert.Equal(t, http.StatusConflict, do(http.MethodPut, path, body).Code)
	})

	t.Run("add and list questions", func(t *testing.T) {
		body := `{"prompt":"Port for HTTPS?","choice_a":"80","choice_b":"443","choice_c":"22","choice_d":"21","correct_answer":"B"}`
		assert.Equal(t, http.StatusCreated, do(http.MethodPost, path+"/questions", body).Code)

		rec := do(http.MethodGet, path+"/questions", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var questions []exam.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
		require.Len(t, questions, 1)
		assert.Equal(t, "B", questions[0].CorrectAnswer)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, path, "").Code)
		assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, path, "").Code)
	})
}
