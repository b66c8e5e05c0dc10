// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shkim9348/FSND/auth"
)

const testKeyID = "fsnd-test-key"

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func signingKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = key
	})
	return testKey
}

// TokenIssuer plays the identity provider: it serves discovery and key set
// documents and mints RS256 access tokens
type TokenIssuer struct {
	Server *httptest.Server
	key    *rsa.PrivateKey
}

// TokenOptions shape a minted token. A nil Permissions omits the claim.
type TokenOptions struct {
	Subject       string
	Permissions   []string
	Email         string
	EmailVerified bool
	Audience      string
	ExpiresIn     time.Duration
	KeyID         *string
}

// NewTokenIssuer starts an issuer that is shut down with the test
func NewTokenIssuer(t *testing.T) *TokenIssuer {
	t.Helper()

	ti := &TokenIssuer{key: signingKey(t)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"issuer":   ti.Issuer(),
			"jwks_uri": ti.Server.URL + "/.well-known/jwks.json",
		})
	})
	mux.HandleFunc("GET /.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		pub := ti.key.PublicKey
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": testKeyID,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			}},
		})
	})

	ti.Server = httptest.NewServer(mux)
	t.Cleanup(ti.Server.Close)

	return ti
}

// Issuer is the "iss" value of minted tokens
func (ti *TokenIssuer) Issuer() string {
	return ti.Server.URL + "/"
}

// Verifier returns a verifier trusting this issuer
func (ti *TokenIssuer) Verifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(ti.Issuer(), TestAudience)
	if err != nil {
		t.Fatalf("Failed to build verifier: %v", err)
	}
	return v
}

// Token mints a valid token carrying perms
func (ti *TokenIssuer) Token(t *testing.T, perms ...string) string {
	t.Helper()
	return ti.TokenFor(t, TokenOptions{Permissions: append([]string{}, perms...)})
}

// UserToken mints a valid token for a verified email address
func (ti *TokenIssuer) UserToken(t *testing.T, email string, perms ...string) string {
	t.Helper()
	return ti.TokenFor(t, TokenOptions{
		Subject:       "auth0|" + email,
		Permissions:   append([]string{}, perms...),
		Email:         email,
		EmailVerified: true,
	})
}

// TokenFor mints a token from opts
func (ti *TokenIssuer) TokenFor(t *testing.T, opts TokenOptions) string {
	t.Helper()

	if opts.Subject == "" {
		opts.Subject = "auth0|tester"
	}
	if opts.Audience == "" {
		opts.Audience = TestAudience
	}
	if opts.ExpiresIn == 0 {
		opts.ExpiresIn = time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": ti.Issuer(),
		"sub": opts.Subject,
		"aud": []string{opts.Audience},
		"iat": now.Add(-2 * time.Hour).Unix(),
		"exp": now.Add(opts.ExpiresIn).Unix(),
	}
	if opts.Permissions != nil {
		claims["permissions"] = opts.Permissions
	}
	if opts.Email != "" {
		claims["email"] = opts.Email
		claims["email_verified"] = opts.EmailVerified
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	if opts.KeyID != nil {
		if *opts.KeyID == "" {
			delete(token.Header, "kid")
		} else {
			token.Header["kid"] = *opts.KeyID
		}
	}

	signed, err := token.SignedString(ti.key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}
