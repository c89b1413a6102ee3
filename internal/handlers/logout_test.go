package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogouter := NewMockLogouter(ctrl)
	mockTokens := NewMockTokenExtractor(ctrl)

	token := "valid-token"

	tests := []struct {
		name                string
		setupMocks          func()
		expectedStatus      int
		expectedResponseKey string // "message" or "error"
	}{
		{
			name: "successful logout",
			setupMocks: func() {
				mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return(token, nil)
				mockLogouter.EXPECT().Logout(gomock.Any(), token).
					Return(nil)
			},
			expectedStatus:      http.StatusOK,
			expectedResponseKey: "message",
		},
		{
			name: "missing token",
			setupMocks: func() {
				mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:      http.StatusUnauthorized,
			expectedResponseKey: "error",
		},
		{
			name: "revocation store failure",
			setupMocks: func() {
				mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return(token, nil)
				mockLogouter.EXPECT().Logout(gomock.Any(), token).
					Return(errors.New("redis down"))
			},
			expectedStatus:      http.StatusInternalServerError,
			expectedResponseKey: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()
			handler := NewLogoutHandler(mockLogouter, mockTokens)

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
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
