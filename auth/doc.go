// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies bearer tokens, checks permissions and hashes passwords.

# Bearer Tokens

Protected routes expect an access token issued by Auth0:

	Authorization: Bearer <token>

ExtractBearer pulls the token out of the header. Verifier checks it with
github.com/auth0/go-jwt-middleware/v2:

	v, err := auth.NewVerifier(cfg.Issuer(), cfg.APIAudience)
	claims, err := v.Verify(ctx, token)

Tokens must be RS256 signed, carry a "kid" header naming one of the
issuer's published keys, and match the configured issuer and audience.
Keys are discovered through the issuer's openid-configuration and cached
for five minutes. 30 seconds of clock skew is tolerated.

# Permissions

Routes name the permission they need, for example "post:drinks". The token
must list it in its "permissions" claim:

	err := auth.CheckPermission(claims, "post:drinks")

# Errors

Every failure is an *Error with a code and the HTTP status to answer with:

	authorization_header_missing  401  no Authorization header
	invalid_header                401  not "Bearer <token>", unparsable, no kid
	invalid_token                 401  bad signature, issuer or audience
	token_expired                 401  exp has passed
	invalid_claims                400  no permissions claim
	unauthorized                  403  permission not granted

# Passwords

Local accounts store bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

RandomPassword fills the password of accounts created from a token, which
can never log in with a password.
*/
package auth
