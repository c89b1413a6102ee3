package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"messagely/internal/models"
	"messagely/internal/services"
)

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGetter := NewMockUserGetter(ctrl)

	user := &models.UserDB{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Liss",
		Phone:        "+15555550100",
		JoinAt:       time.Now().Add(-24 * time.Hour),
		LastLoginAt:  time.Now(),
	}

	tests := []struct {
		name                string
		username            string
		setupMocks          func()
		expectedStatus      int
		expectedResponseKey string // "user" or "error"
	}{
		{
			name:     "successful fetch",
			username: "alice",
			setupMocks: func() {
				mockGetter.EXPECT().Get(gomock.Any(), "alice").Return(user, nil)
			},
			expectedStatus:      http.StatusOK,
			expectedResponseKey: "user",
		},
		{
			name:     "unknown username",
			username: "ghost",
			setupMocks: func() {
				mockGetter.EXPECT().Get(gomock.Any(), "ghost").Return(nil, services.ErrUserDoesNotExist)
			},
			expectedStatus:      http.StatusNotFound,
			expectedResponseKey: "error",
		},
		{
			name:     "internal server error",
			username: "alice",
			setupMocks: func() {
				mockGetter.EXPECT().Get(gomock.Any(), "alice").Return(nil, errors.New("db error"))
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedResponseKey: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()

			router := chi.NewRouter()
			router.Get("/users/{username}", NewGetUserHandler(mockGetter))

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.username, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var body map[string]interface{}
			err := json.NewDecoder(rr.Body).Decode(&body)
			assert.NoError(t, err)

			_, ok := body[tt.expectedResponseKey]
			assert.True(t, ok, "response should contain key %s", tt.expectedResponseKey)
		})
	}
}

func TestGetUserHandler_NeverExposesPasswordHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGetter := NewMockUserGetter(ctrl)
	mockGetter.EXPECT().Get(gomock.Any(), "alice").Return(&models.UserDB{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
	}, nil)

	router := chi.NewRouter()
	router.Get("/users/{username}", NewGetUserHandler(mockGetter))

	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hash")
	assert.NotContains(t, rr.Body.String(), "password")
}
