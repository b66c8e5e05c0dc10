// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the FSND apps.

# Route Registration

NewRouter builds the handler for the app named in the config:

	handler := router.NewRouter(db, cfg, verifier)

Coffee and pybo need a token verifier; fyyur and trivia accept nil.

# Endpoints

Every app serves:

	GET /health  - Liveness probe
	GET /metrics - Prometheus metrics
	GET /        - {"success": true}

The app routes are listed in the handlers package documentation.
Permission-gated routes are wrapped in middleware.RequiresAuth:

	GET    /drinks-detail                    get:drinks-detail
	POST   /drinks                           post:drinks
	PATCH  /drinks/{id}                      patch:drinks
	DELETE /drinks/{id}                      delete:drinks
	POST   /question                         post:question
	PUT    /question/{id}                    put:question
	DELETE /question/{id}                    delete:question
	POST   /question/{id}/vote               vote:question
	POST   /question/{qid}/answer            post:answer
	PUT    /question/{qid}/answer/{aid}      put:answer
	DELETE /question/{qid}/answer/{aid}      delete:answer
	POST   /question/{qid}/answer/{aid}/vote vote:answer

# Middleware

Outermost first: CORS, trailing slash trimming, JSON errors for unmatched
routes and methods. Each route is also wrapped in middleware.WithLogging.
*/
package router
