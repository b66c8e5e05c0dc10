// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/models"
)

// stubVerifier accepts the token "good" and rejects everything else
type stubVerifier struct {
	claims *auth.Claims
}

func (s stubVerifier) Verify(_ context.Context, token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, &auth.Error{Code: "invalid_token", Description: "bad token", Status: http.StatusUnauthorized}
	}
	return s.claims, nil
}

func TestRequiresAuth(t *testing.T) {
	testCases := []struct {
		name           string
		header         string
		claims         *auth.Claims
		expectedStatus int
	}{
		{"granted", "Bearer good", &auth.Claims{Permissions: []string{"post:drinks"}}, http.StatusOK},
		{"no header", "", nil, http.StatusUnauthorized},
		{"bad scheme", "Token good", nil, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", nil, http.StatusUnauthorized},
		{"no permissions claim", "Bearer good", &auth.Claims{}, http.StatusBadRequest},
		{"missing permission", "Bearer good", &auth.Claims{Permissions: []string{"get:drinks-detail"}}, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got *auth.Claims
			handler := RequiresAuth(stubVerifier{claims: tc.claims}, "post:drinks", func(w http.ResponseWriter, r *http.Request) {
				got, _ = auth.ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("POST", "/drinks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				if got != tc.claims {
					t.Error("Expected claims on the request context")
				}
				return
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Success || resp.Error != tc.expectedStatus {
				t.Errorf("Unexpected error envelope %+v", resp)
			}
		})
	}
}
