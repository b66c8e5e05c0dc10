// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /venues", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request ID is taken from X-Request-ID or
generated, and echoed back in the response.

# Metrics

WithLogging also records Prometheus metrics labelled by method, route
pattern and status:

	fsnd_http_requests_total
	fsnd_http_request_duration_seconds

RequiresAuth counts rejections in fsnd_auth_failures_total by error code.

# Permissions

Gate a handler behind a bearer token permission:

	mux.HandleFunc("POST /drinks",
		middleware.WithLogging(middleware.RequiresAuth(verifier, "post:drinks", h.CreateDrink)))

The verified claims are available to the handler through
auth.ClaimsFromContext.

# CORS Middleware

Enable cross-origin requests for frontend access:

	handler := middleware.CORS(cfg.AllowedOrigin)(mux)

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization. Preflight requests are answered directly.

# Trailing Slashes

TrimTrailingSlash strips trailing slashes before routing so "/question/1/"
and "/question/1" reach the same handler.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Every error uses the same envelope:

	{"success": false, "error": 404, "message": "resource not found"}

Parse and validate JSON request bodies:

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.Validate(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

Validate uses go-playground/validator tags and reports the first failure
by JSON field name, for example "difficulty must be at most 5".

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
