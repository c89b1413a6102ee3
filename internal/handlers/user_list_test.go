package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"messagely/internal/models"
)

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLister := NewMockUsersLister(ctrl)

	profiles := []models.UserProfile{
		{Username: "alice", FirstName: "Alice", LastName: "Liss", Phone: "+15555550100"},
		{Username: "bob", FirstName: "Bob", LastName: "Bobson", Phone: "+15555550101"},
	}

	tests := []struct {
		name                string
		setupMocks          func()
		expectedStatus      int
		expectedResponseKey string // "users" or "error"
		expectedCount       int
	}{
		{
			name: "two users",
			setupMocks: func() {
				mockLister.EXPECT().List(gomock.Any()).Return(profiles, nil)
			},
			expectedStatus:      http.StatusOK,
			expectedResponseKey: "users",
			expectedCount:       2,
		},
		{
			name: "empty directory returns empty array",
			setupMocks: func() {
				mockLister.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			expectedStatus:      http.StatusOK,
			expectedResponseKey: "users",
			expectedCount:       0,
		},
		{
			name: "internal server error",
			setupMocks: func() {
				mockLister.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedResponseKey: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()
			handler := NewListUsersHandler(mockLister)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var body map[string]interface{}
			err := json.NewDecoder(rr.Body).Decode(&body)
			assert.NoError(t, err)

			val, ok := body[tt.expectedResponseKey]
			assert.True(t, ok, "response should contain key %s", tt.expectedResponseKey)

			if tt.expectedResponseKey == "users" {
				users, ok := val.([]interface{})
				assert.True(t, ok, "users should be an array")
				assert.Len(t, users, tt.expectedCount)
			}
		})
	}
}
