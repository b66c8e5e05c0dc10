// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

const (
	clockSkew = 30 * time.Second
	keysTTL   = 5 * time.Minute
)

// Claims are the custom claims read from an access token
type Claims struct {
	Permissions   []string `json:"permissions"`
	Email         string   `json:"email"`
	EmailVerified bool     `json:"email_verified"`

	// Subject is copied from the registered "sub" claim
	Subject string `json:"-"`
}

// Validate satisfies validator.CustomClaims; permissions are checked per route
func (c *Claims) Validate(context.Context) error {
	return nil
}

// Verifier validates RS256 access tokens against the issuer's published keys
type Verifier struct {
	validator *validator.Validator
}

// NewVerifier builds a verifier for tokens issued by issuer for audience.
// Signing keys are fetched from the issuer's discovery document and cached.
func NewVerifier(issuer, audience string) (*Verifier, error) {
	issuerURL, err := url.Parse(issuer)
	if err != nil {
		return nil, fmt.Errorf("invalid issuer URL: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, keysTTL)

	v, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &Claims{}
		}),
		validator.WithAllowedClockSkew(clockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up token validator: %w", err)
	}

	return &Verifier{validator: v}, nil
}

// Verify checks the token signature, issuer, audience and expiry and
// returns its claims
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, newError("invalid_header", "Unable to parse authentication token.", http.StatusUnauthorized)
	}
	if kid, _ := unverified.Header["kid"].(string); kid == "" {
		return nil, newError("invalid_header", "Authorization malformed.", http.StatusUnauthorized)
	}

	validated, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		if isExpired(unverified) {
			return nil, newError("token_expired", "Token expired.", http.StatusUnauthorized)
		}
		return nil, newError("invalid_token", "Unable to verify authentication token.", http.StatusUnauthorized)
	}

	vc, ok := validated.(*validator.ValidatedClaims)
	if !ok {
		return nil, newError("invalid_token", "Unable to verify authentication token.", http.StatusUnauthorized)
	}
	claims, ok := vc.CustomClaims.(*Claims)
	if !ok {
		return nil, newError("invalid_claims", "Unable to read token claims.", http.StatusBadRequest)
	}
	claims.Subject = vc.RegisteredClaims.Subject

	return claims, nil
}

func isExpired(token *jwt.Token) bool {
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Add(clockSkew))
}
