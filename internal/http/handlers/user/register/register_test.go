package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная регистрация",
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice").Return(&models.User{
					ShortID:  "ab12cd34",
					Username: "alice",
					Exercise: []models.Exercise{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"ab12cd34"`,
		},
		{
			name:     "пустое имя принимается как есть",
			username: "",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "").Return(&models.User{
					ShortID:  "ff00aa11",
					Username: "",
					Exercise: []models.Exercise{},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"ff00aa11"`,
		},
		{
			name:     "имя уже занято",
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice").Return(nil, repository.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "User already exists",
		},
		{
			name:     "ошибка хранилища",
			username: "bob",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "bob").Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			form := url.Values{}
			form.Set("username", tt.username)
			req := httptest.NewRequest(http.MethodPost, "/new-user", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
