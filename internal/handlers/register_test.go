package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"messagely/internal/services"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegisterer := NewMockRegisterer(ctrl)

	validBody := `{"username":"alice","password":"secret123","first_name":"Alice","last_name":"Liss","phone":"+15555550100"}`

	tests := []struct {
		name                string
		body                string
		setupMocks          func()
		expectedStatus      int
		expectedResponseKey string // "token" or "error"
	}{
		{
			name: "successful registration",
			body: validBody,
			setupMocks: func() {
				mockRegisterer.EXPECT().
					Register(gomock.Any(), "alice", "secret123", "Alice", "Liss", "+15555550100").
					Return("JWT_TOKEN", nil)
			},
			expectedStatus:      http.StatusCreated,
			expectedResponseKey: "token",
		},
		{
			name:                "invalid request body",
			body:                `{invalid`,
			setupMocks:          func() {},
			expectedStatus:      http.StatusBadRequest,
			expectedResponseKey: "error",
		},
		{
			name:                "missing fields",
			body:                `{"username":"alice","password":"secret123"}`,
			setupMocks:          func() {},
			expectedStatus:      http.StatusBadRequest,
			expectedResponseKey: "error",
		},
		{
			name: "username already taken",
			body: validBody,
			setupMocks: func() {
				mockRegisterer.EXPECT().
					Register(gomock.Any(), "alice", "secret123", "Alice", "Liss", "+15555550100").
					Return("", services.ErrUserAlreadyExists)
			},
			expectedStatus:      http.StatusBadRequest,
			expectedResponseKey: "error",
		},
		{
			name: "internal server error",
			body: validBody,
			setupMocks: func() {
				mockRegisterer.EXPECT().
					Register(gomock.Any(), "alice", "secret123", "Alice", "Liss", "+15555550100").
					Return("", errors.New("db error"))
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedResponseKey: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()
			handler := NewRegisterHandler(mockRegisterer)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var body map[string]interface{}
			err := json.NewDecoder(rr.Body).Decode(&body)
			assert.NoError(t, err)

			_, ok := body[tt.expectedResponseKey]
			assert.True(t, ok, "response should contain key %s", tt.expectedResponseKey)
		})
	}
}
