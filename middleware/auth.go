// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shkim9348/FSND/auth"
)

// TokenVerifier turns a bearer token into verified claims
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// RequiresAuth lets a request through only when it carries a valid token
// granting permission. The claims are stored on the request context.
func RequiresAuth(v TokenVerifier, permission string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractBearer(r)
		if err != nil {
			authError(w, r, err)
			return
		}

		claims, err := v.Verify(r.Context(), token)
		if err != nil {
			authError(w, r, err)
			return
		}

		if err := auth.CheckPermission(claims, permission); err != nil {
			authError(w, r, err)
			return
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}

func authError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *auth.Error
	if !errors.As(err, &authErr) {
		slog.Error("token verification failed", "error", err)
		ErrorResponse(w, http.StatusUnauthorized, "unable to verify authentication token")
		return
	}

	authFailures.WithLabelValues(authErr.Code).Inc()
	slog.Info("request rejected", "path", r.URL.Path, "code", authErr.Code)
	ErrorResponse(w, authErr.Status, authErr.Description)
}
