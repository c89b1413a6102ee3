package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"messagely/internal/middlewares"
	"messagely/internal/models"
	"messagely/internal/services"
)

func TestCreateMessageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSender := NewMockMessageSender(ctrl)

	validBody := `{"to_username":"bob","body":"hi"}`
	stored := &models.MessageDB{
		MessageID:    uuid.New(),
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hi",
		SentAt:       time.Now(),
	}

	tests := []struct {
		name                string
		identity            string
		body                string
		setupMocks          func()
		expectedStatus      int
		expectedResponseKey string // "message" or "error"
	}{
		{
			name:     "successful send",
			identity: "alice",
			body:     validBody,
			setupMocks: func() {
				mockSender.EXPECT().
					Send(gomock.Any(), "alice", "bob", "hi").
					Return(stored, nil)
			},
			expectedStatus:      http.StatusCreated,
			expectedResponseKey: "message",
		},
		{
			name:                "missing identity",
			identity:            "",
			body:                validBody,
			setupMocks:          func() {},
			expectedStatus:      http.StatusUnauthorized,
			expectedResponseKey: "error",
		},
		{
			name:                "invalid request body",
			identity:            "alice",
			body:                `{invalid`,
			setupMocks:          func() {},
			expectedStatus:      http.StatusBadRequest,
			expectedResponseKey: "error",
		},
		{
			name:                "missing body field",
			identity:            "alice",
			body:                `{"to_username":"bob"}`,
			setupMocks:          func() {},
			expectedStatus:      http.StatusBadRequest,
			expectedResponseKey: "error",
		},
		{
			name:     "unknown recipient",
			identity: "alice",
			body:     validBody,
			setupMocks: func() {
				mockSender.EXPECT().
					Send(gomock.Any(), "alice", "bob", "hi").
					Return(nil, services.ErrUserDoesNotExist)
			},
			expectedStatus:      http.StatusNotFound,
			expectedResponseKey: "error",
		},
		{
			name:     "internal server error",
			identity: "alice",
			body:     validBody,
			setupMocks: func() {
				mockSender.EXPECT().
					Send(gomock.Any(), "alice", "bob", "hi").
					Return(nil, errors.New("db error"))
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedResponseKey: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()
			handler := NewCreateMessageHandler(mockSender)

			req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(tt.body))
			if tt.identity != "" {
				req = req.WithContext(middlewares.SetUsernameToContext(req.Context(), tt.identity))
			}
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

func TestCreateMessageHandler_ResponseShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSender := NewMockMessageSender(ctrl)

	stored := &models.MessageDB{
		MessageID:    uuid.New(),
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hi",
		SentAt:       time.Now(),
	}
	mockSender.EXPECT().
		Send(gomock.Any(), "alice", "bob", "hi").
		Return(stored, nil)

	handler := NewCreateMessageHandler(mockSender)

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"to_username":"bob","body":"hi"}`))
	req = req.WithContext(middlewares.SetUsernameToContext(req.Context(), "alice"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp CreateMessageResponse
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, stored.MessageID.String(), resp.Message.ID)
	assert.Equal(t, "alice", resp.Message.FromUsername)
	assert.Equal(t, "bob", resp.Message.ToUsername)
	assert.Equal(t, "hi", resp.Message.Body)
}
