package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/users"
	"Chirp/internal/logging"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfileByUsername(ctx context.Context, username string) (*users.AuthorSummary, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AuthorSummary), args.Error(1)
}

func TestHandleGetByUsername(t *testing.T) {
	svc := new(MockUserService)
	h := NewGetUserHandler(svc, logging.Discard())

	svc.On("GetProfileByUsername", mock.Anything, "@alice").Return(&users.AuthorSummary{
		ID:              "user_1",
		Username:        "alice",
		ProfileImageURL: "https://img.example.com/a.png",
	}, nil)

	rec := httptest.NewRecorder()
	h.HandleGetByUsername(rec, httptest.NewRequest(http.MethodGet, "/api/profile.getUserByUsername?username=%40alice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"user_1","username":"alice","profileImageUrl":"https://img.example.com/a.png"}`, rec.Body.String())
}

func TestHandleGetByUsername_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"not found", users.ErrUserNotFound, http.StatusNotFound, handlers.KindNotFound},
		{"invalid", &users.InvalidUsernameError{Username: "", Reason: "username is required"}, http.StatusBadRequest, handlers.KindValidation},
		{"directory down", errors.New("identity directory error (503): unavailable"), http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			h := NewGetUserHandler(svc, logging.Discard())
			svc.On("GetProfileByUsername", mock.Anything, "nonexistent").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.HandleGetByUsername(rec, httptest.NewRequest(http.MethodGet, "/api/profile.getUserByUsername?username=nonexistent", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Error)
			assert.NotContains(t, body.Message, "503")
		})
	}
}
