package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/shared/failure"
	"taskboard/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithText(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithText(rec, http.StatusCreated, "Todo created successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Todo created successfully", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, []string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "client error keeps its message",
			err:      failure.BadRequestFromString("title must not be blank"),
			wantCode: http.StatusBadRequest,
			wantBody: "title must not be blank",
		},
		{
			name:     "server error hides detail",
			err:      errors.New("UNIQUE constraint failed: todos._id"),
			wantCode: http.StatusInternalServerError,
			wantBody: "Error creating todo",
		},
		{
			name:     "internal failure hides detail",
			err:      failure.InternalError(errors.New("disk full")),
			wantCode: http.StatusInternalServerError,
			wantBody: "Error creating todo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err, "Error creating todo")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDefaultResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVER PREPARING TO SHUT DOWN", rec.Body.String())
}
