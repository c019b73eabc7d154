package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alcuin/alcuinch/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockChecker := NewMockChecker(ctrl)
	authMiddleware := middleware.NewAuthMiddlewareHandler(mockChecker)

	testCases := []struct {
		name               string
		path               string
		method             string
		bearerToken        string
		expectedStatusCode int
		mockIsValid        bool
		mockIsValidErr     error
		mockCalls          int
	}{
		{
			name:               "PublicPathWithoutToken",
			path:               "/api/articles",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "LoginPathWithoutToken",
			path:               "/api/admin/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "LogoutPathWithoutToken",
			path:               "/api/admin/logout",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "AuthCheckPathWithoutToken",
			path:               "/api/admin/auth/check",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "ProtectedPathWithoutToken",
			path:               "/api/admin/articles",
			method:             "POST",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ProtectedPathValidToken",
			path:               "/api/admin/articles",
			method:             "POST",
			bearerToken:        "valid-token",
			expectedStatusCode: http.StatusOK,
			mockIsValid:        true,
			mockCalls:          1,
		},
		{
			name:               "ProtectedPathInvalidToken",
			path:               "/api/admin/articles/42",
			method:             "DELETE",
			bearerToken:        "invalid-token",
			expectedStatusCode: http.StatusUnauthorized,
			mockIsValid:        false,
			mockCalls:          1,
		},
		{
			name:               "ProtectedPathCheckerError",
			path:               "/api/admin/articles/42",
			method:             "PUT",
			bearerToken:        "some-token",
			expectedStatusCode: http.StatusInternalServerError,
			mockIsValidErr:     errors.New("store unavailable"),
			mockCalls:          1,
		},
		{
			name:               "OptionsAlwaysAllowed",
			path:               "/api/admin/articles",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.bearerToken != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearerToken)
			}

			mockChecker.EXPECT().
				IsValid(gomock.Any(), tc.bearerToken).
				Return(tc.mockIsValid, tc.mockIsValidErr).
				Times(tc.mockCalls)

			rr := httptest.NewRecorder()
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			authMiddleware.AuthCheck()(nextHandler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
		})
	}
}
