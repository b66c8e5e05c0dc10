// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/testutil"
)

// serve runs handler against a request built from method, path and body.
// pathValues stand in for the wildcards the router would have matched.
func serve(t *testing.T, handler http.HandlerFunc, method, path string, body interface{}, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest(method, path, body, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// asUser wraps handler so it sees verified claims for email
func asUser(email string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := &auth.Claims{Email: email, EmailVerified: true, Subject: "auth0|" + email}
		handler(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}

// withClaims wraps handler so it sees claims
func withClaims(claims *auth.Claims, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	}
}

func id(n uint) map[string]string {
	return map[string]string{"id": strconv.FormatUint(uint64(n), 10)}
}
