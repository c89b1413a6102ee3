package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		mockSetup        func(m *MockTokener, rev *MockRevocationChecker)
		expectedStatus   int
		expectNextCalled bool
		expectedIdentity string
	}{
		{
			name: "NoToken",
			mockSetup: func(m *MockTokener, rev *MockRevocationChecker) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(m *MockTokener, rev *MockRevocationChecker) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().ParseToken(gomock.Any(), "sometoken").
					Return("", "", errors.New("invalid token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "RevokedToken",
			mockSetup: func(m *MockTokener, rev *MockRevocationChecker) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().ParseToken(gomock.Any(), "sometoken").
					Return("alice", "jti-1", nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").
					Return(true, nil)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "RevocationCheckError",
			mockSetup: func(m *MockTokener, rev *MockRevocationChecker) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().ParseToken(gomock.Any(), "sometoken").
					Return("alice", "jti-1", nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").
					Return(false, errors.New("redis down"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectNextCalled: false,
		},
		{
			name: "ValidToken",
			mockSetup: func(m *MockTokener, rev *MockRevocationChecker) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().ParseToken(gomock.Any(), "validtoken").
					Return("alice", "jti-1", nil)
				rev.EXPECT().IsRevoked(gomock.Any(), "jti-1").
					Return(false, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
			expectedIdentity: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockRevoker := NewMockRevocationChecker(ctrl)
			tt.mockSetup(mockTokener, mockRevoker)

			nextCalled := false
			identity := ""
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				identity = GetUsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockRevoker)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			if tt.expectNextCalled {
				assert.Equal(t, tt.expectedIdentity, identity)
			} else {
				// Rejections carry the same JSON error shape as handlers.
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
				var body map[string]string
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestAuthMiddleware_NilRevoker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokener := NewMockTokener(ctrl)
	mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
		Return("validtoken", nil)
	mockTokener.EXPECT().ParseToken(gomock.Any(), "validtoken").
		Return("bob", "jti-2", nil)

	nextCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(mockTokener, nil)(nextHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetUsernameFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUsernameFromContext(req.Context()))
}
