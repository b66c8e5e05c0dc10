// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/db"
	"github.com/shkim9348/FSND/models"
)

// TestAudience is the API audience of every test token
const TestAudience = "fsnd-test-api"

// SetupTestDB creates a fresh in-memory database with the tables of app
func SetupTestDB(t *testing.T, app string) *gorm.DB {
	t.Helper()

	cfg := GetTestConfig(app)
	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.Migrate(gdb, app); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(app string) cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DatabaseSQLite,
		App:           app,
		Auth0Domain:   "fsnd-test.auth0.com",
		APIAudience:   TestAudience,
		AllowedOrigin: "*",
		LogMode:       "prod",
	}
}

// ErrorBody is the decoded error envelope
type ErrorBody = models.ErrorResponse

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var payload []byte
		switch b := body.(type) {
		case string:
			payload = []byte(b)
		default:
			payload, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns the Authorization header for token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status and the error envelope of a failed request
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected int) ErrorBody {
	t.Helper()
	AssertStatus(t, w, expected)

	var body ErrorBody
	AssertJSON(t, w, &body)
	require.False(t, body.Success, "error envelope must carry success=false")
	require.Equal(t, expected, body.Error)
	return body
}
