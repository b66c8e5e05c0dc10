// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/models"
	"github.com/shkim9348/FSND/testutil"
)

func serve(mux http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppFyyur)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppFyyur), nil)

	w := serve(mux, "GET", "/health", nil, nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppPybo)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppPybo), nil)

	w := serve(mux, "GET", "/", nil, nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppTrivia)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppTrivia), nil)

	// Produce at least one labelled sample
	serve(mux, "GET", "/categories", nil, nil)

	w := serve(mux, "GET", "/metrics", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "fsnd_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="GET /categories"`)
}

func TestRouteExistence(t *testing.T) {
	testCases := []struct {
		app    string
		method string
		path   string
	}{
		{cliparse.AppFyyur, "GET", "/venues"},
		{cliparse.AppFyyur, "POST", "/venues/search"},
		{cliparse.AppFyyur, "GET", "/venues/1"},
		{cliparse.AppFyyur, "POST", "/venues"},
		{cliparse.AppFyyur, "PUT", "/venues/1"},
		{cliparse.AppFyyur, "DELETE", "/venues/1"},
		{cliparse.AppFyyur, "GET", "/artists"},
		{cliparse.AppFyyur, "POST", "/artists/search"},
		{cliparse.AppFyyur, "GET", "/artists/1"},
		{cliparse.AppFyyur, "GET", "/shows"},
		{cliparse.AppFyyur, "POST", "/shows"},

		{cliparse.AppTrivia, "GET", "/categories"},
		{cliparse.AppTrivia, "GET", "/categories/1/questions"},
		{cliparse.AppTrivia, "GET", "/questions"},
		{cliparse.AppTrivia, "POST", "/questions"},
		{cliparse.AppTrivia, "POST", "/questions/search"},
		{cliparse.AppTrivia, "DELETE", "/questions/1"},
		{cliparse.AppTrivia, "POST", "/quizzes"},

		{cliparse.AppCoffee, "GET", "/drinks"},
		{cliparse.AppCoffee, "GET", "/drinks-detail"},
		{cliparse.AppCoffee, "POST", "/drinks"},
		{cliparse.AppCoffee, "PATCH", "/drinks/1"},
		{cliparse.AppCoffee, "DELETE", "/drinks/1"},

		{cliparse.AppPybo, "GET", "/question"},
		{cliparse.AppPybo, "GET", "/question/1"},
		{cliparse.AppPybo, "POST", "/question"},
		{cliparse.AppPybo, "PUT", "/question/1"},
		{cliparse.AppPybo, "DELETE", "/question/1"},
		{cliparse.AppPybo, "POST", "/question/1/vote"},
		{cliparse.AppPybo, "POST", "/question/1/answer"},
		{cliparse.AppPybo, "GET", "/question/1/answer/1"},
		{cliparse.AppPybo, "PUT", "/question/1/answer/1"},
		{cliparse.AppPybo, "DELETE", "/question/1/answer/1"},
		{cliparse.AppPybo, "POST", "/question/1/answer/1/vote"},
		{cliparse.AppPybo, "POST", "/auth/signup"},
		{cliparse.AppPybo, "POST", "/auth/login"},
	}

	issuer := testutil.NewTokenIssuer(t)
	verifier := issuer.Verifier(t)

	for _, tc := range testCases {
		t.Run(tc.app+" "+tc.method+" "+tc.path, func(t *testing.T) {
			db := testutil.SetupTestDB(t, tc.app)
			mux := NewRouter(db, testutil.GetTestConfig(tc.app), verifier)

			w := serve(mux, tc.method, tc.path, nil, nil)

			// 400, 401, 404 are all valid responses depending on handler logic
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Errorf("Route %s %s did not pass through the logging middleware", tc.method, tc.path)
			}
		})
	}
}

func TestOnlySelectedAppIsServed(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppTrivia)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppTrivia), nil)

	w := serve(mux, "GET", "/venues", nil, nil)
	testutil.AssertError(t, w, http.StatusNotFound)
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppTrivia)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppTrivia), nil)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},       // Only GET is defined
		{"PATCH", "/questions/1"}, // Only DELETE is defined
		{"DELETE", "/categories"}, // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, nil, nil)
			body := testutil.AssertError(t, w, http.StatusMethodNotAllowed)
			assert.Equal(t, "method not allowed", body.Message)
		})
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppFyyur)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppFyyur), nil)

	w := serve(mux, "GET", "/no/such/route", nil, nil)
	body := testutil.AssertError(t, w, http.StatusNotFound)
	assert.Equal(t, "not found", body.Message)

	// Malformed ids reach the handler and answer the same way
	w = serve(mux, "GET", "/venues/abc", nil, nil)
	testutil.AssertError(t, w, http.StatusNotFound)
}

func TestTrailingSlash(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppPybo)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppPybo), nil)

	author := testutil.CreateUser(t, db, "alice", "alice@example.com")
	q := testutil.CreateBoardQuestion(t, db, author, "Trailing slashes")

	for _, path := range []string{"/question/1", "/question/1/"} {
		w := serve(mux, "GET", path, nil, nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		var got models.BoardQuestion
		testutil.AssertJSON(t, w, &got)
		assert.Equal(t, q.ID, got.ID)
	}
}

func TestCORS(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppCoffee)
	cfg := testutil.GetTestConfig(cliparse.AppCoffee)
	cfg.AllowedOrigin = "https://coffee.example.com"
	mux := NewRouter(db, cfg, testutil.NewTokenIssuer(t).Verifier(t))

	// Preflight never reaches the permission check
	w := serve(mux, "OPTIONS", "/drinks-detail", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "https://coffee.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	w = serve(mux, "GET", "/drinks", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "https://coffee.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCoffeePermissions(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppCoffee)
	issuer := testutil.NewTokenIssuer(t)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppCoffee), issuer.Verifier(t))
	testutil.CreateDrink(t, db, "latte")

	barista := issuer.Token(t, "get:drinks-detail")
	manager := issuer.Token(t, "get:drinks-detail", "post:drinks", "patch:drinks", "delete:drinks")
	noPerms := issuer.TokenFor(t, testutil.TokenOptions{Subject: "auth0|nobody"})
	expired := issuer.TokenFor(t, testutil.TokenOptions{Permissions: []string{"get:drinks-detail"}, ExpiresIn: -time.Hour})

	recipe := map[string]interface{}{
		"title":  "mocha",
		"recipe": []map[string]interface{}{{"name": "chocolate", "color": "brown", "parts": 1}},
	}

	testCases := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{"public menu without token", "GET", "/drinks", nil, nil, http.StatusOK},
		{"detail without token", "GET", "/drinks-detail", nil, nil, http.StatusUnauthorized},
		{"malformed header", "GET", "/drinks-detail", nil, map[string]string{"Authorization": "Token abc"}, http.StatusUnauthorized},
		{"garbage token", "GET", "/drinks-detail", nil, testutil.Bearer("abc.def.ghi"), http.StatusUnauthorized},
		{"expired token", "GET", "/drinks-detail", nil, testutil.Bearer(expired), http.StatusUnauthorized},
		{"token without permissions claim", "GET", "/drinks-detail", nil, testutil.Bearer(noPerms), http.StatusBadRequest},
		{"barista reads detail", "GET", "/drinks-detail", nil, testutil.Bearer(barista), http.StatusOK},
		{"barista cannot create", "POST", "/drinks", recipe, testutil.Bearer(barista), http.StatusForbidden},
		{"manager creates", "POST", "/drinks", recipe, testutil.Bearer(manager), http.StatusCreated},
		{"manager patches", "PATCH", "/drinks/1", map[string]string{"title": "caffe latte"}, testutil.Bearer(manager), http.StatusOK},
		{"barista cannot delete", "DELETE", "/drinks/1", nil, testutil.Bearer(barista), http.StatusForbidden},
		{"manager deletes", "DELETE", "/drinks/1", nil, testutil.Bearer(manager), http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, tc.body, tc.headers)
			if tc.expectedStatus >= 400 {
				testutil.AssertError(t, w, tc.expectedStatus)
				return
			}
			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestPyboFlow(t *testing.T) {
	db := testutil.SetupTestDB(t, cliparse.AppPybo)
	issuer := testutil.NewTokenIssuer(t)
	mux := NewRouter(db, testutil.GetTestConfig(cliparse.AppPybo), issuer.Verifier(t))

	all := []string{"post:question", "put:question", "delete:question", "vote:question", "post:answer", "put:answer", "delete:answer", "vote:answer"}
	alice := testutil.Bearer(issuer.UserToken(t, "alice@example.com", all...))
	bob := testutil.Bearer(issuer.UserToken(t, "bob@example.com", all...))
	unverified := testutil.Bearer(issuer.TokenFor(t, testutil.TokenOptions{
		Email:       "eve@example.com",
		Permissions: all,
	}))

	w := serve(mux, "POST", "/question", map[string]string{"subject": "Hello", "content": "First post"}, alice)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var q models.BoardQuestion
	testutil.AssertJSON(t, w, &q)
	require.NotZero(t, q.ID)
	assert.Equal(t, "alice@example.com", q.User.Username)

	w = serve(mux, "POST", "/question", map[string]string{"subject": "Hi", "content": "x"}, unverified)
	testutil.AssertError(t, w, http.StatusForbidden)

	w = serve(mux, "POST", "/question/1/answer", map[string]string{"content": "Welcome"}, bob)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(mux, "POST", "/question/1/vote/", nil, bob)
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "bob@example.com")

	w = serve(mux, "PUT", "/question/1", map[string]string{"subject": "Hijacked", "content": "x"}, bob)
	testutil.AssertError(t, w, http.StatusForbidden)

	w = serve(mux, "GET", "/question?kw=welcome", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var page models.QuestionPageResponse
	testutil.AssertJSON(t, w, &page)
	require.Len(t, page.Questions, 1)
	assert.Len(t, page.Questions[0].AnswerSet, 1)
	assert.Len(t, page.Questions[0].Voter, 1)

	w = serve(mux, "DELETE", "/question/1", nil, alice)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(mux, "GET", "/question/1", nil, nil)
	testutil.AssertError(t, w, http.StatusNotFound)

	// Accounts work without tokens
	w = serve(mux, "POST", "/auth/signup", map[string]string{"username": "carol", "password": "longenough", "email": "carol@example.com"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	w = serve(mux, "POST", "/auth/login", map[string]string{"username": "carol", "password": "longenough"}, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), "longenough") {
		t.Error("Login response leaked the password")
	}
}
