// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"net/http"
	"slices"
	"strings"
)

// Error is an authentication or authorization failure carrying the status
// the caller should answer with
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

func newError(code, description string, status int) *Error {
	return &Error{Code: code, Description: description, Status: status}
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>" header
func ExtractBearer(r *http.Request) (string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 0 {
		return "", newError("authorization_header_missing", "Authorization header is expected.", http.StatusUnauthorized)
	}

	switch {
	case !strings.EqualFold(parts[0], "bearer"):
		return "", newError("invalid_header", `Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	case len(parts) == 1:
		return "", newError("invalid_header", "Token not found.", http.StatusUnauthorized)
	case len(parts) > 2:
		return "", newError("invalid_header", "Authorization header must be bearer token.", http.StatusUnauthorized)
	}

	return parts[1], nil
}

// CheckPermission requires perm to be listed in the token's permissions claim
func CheckPermission(claims *Claims, perm string) error {
	if claims == nil || claims.Permissions == nil {
		return newError("invalid_claims", "Permissions not included in JWT.", http.StatusBadRequest)
	}
	if !slices.Contains(claims.Permissions, perm) {
		return newError("unauthorized", "Permission not found.", http.StatusForbidden)
	}
	return nil
}

type claimsKey struct{}

// WithClaims stores verified claims on the context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
