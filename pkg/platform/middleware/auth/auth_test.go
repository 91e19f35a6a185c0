package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/requestcontext"
	"eventcare/pkg/testutil"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

type stubRevocations struct {
	revoked bool
	err     error
}

func (c stubRevocations) IsRevoked(context.Context, string) (bool, error) { return c.revoked, c.err }

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := id.NewUserID()
	exp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	validClaims := &JWTClaims{UserID: userID.String(), Role: "EMT", JTI: "jti-1", ExpiresAt: exp}

	var reached bool
	var gotUser id.UserID
	var gotRole, gotJTI string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotUser = requestcontext.UserID(r.Context())
		gotRole = requestcontext.Role(r.Context())
		gotJTI = requestcontext.TokenID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	serve := func(v JWTValidator, c TokenRevocationChecker, header string) int {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/patients", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := testutil.DoRequest(RequireAuth(v, c, logger)(next), req)
		return rr.Code
	}

	testutil.Given(t, "a valid, unrevoked token", func(t *testing.T) {
		code := serve(stubValidator{claims: validClaims}, stubRevocations{}, "Bearer good")
		testutil.Then(t, "the principal reaches the handler", func(t *testing.T) {
			assert.Equal(t, http.StatusNoContent, code)
			assert.True(t, reached)
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, "EMT", gotRole)
			assert.Equal(t, "jti-1", gotJTI)
		})
	})

	testutil.Given(t, "no Authorization header", func(t *testing.T) {
		code := serve(stubValidator{claims: validClaims}, nil, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, reached)
	})

	testutil.Given(t, "an invalid token", func(t *testing.T) {
		code := serve(stubValidator{err: dErrors.New(dErrors.CodeUnauthorized, "bad")}, nil, "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, reached)
	})

	testutil.Given(t, "claims without a role", func(t *testing.T) {
		claims := *validClaims
		claims.Role = ""
		code := serve(stubValidator{claims: &claims}, nil, "Bearer x")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	testutil.Given(t, "a revoked token", func(t *testing.T) {
		code := serve(stubValidator{claims: validClaims}, stubRevocations{revoked: true}, "Bearer good")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, reached)
	})

	testutil.Given(t, "the revocation list is unreachable", func(t *testing.T) {
		code := serve(stubValidator{claims: validClaims}, stubRevocations{err: errors.New("redis down")}, "Bearer good")
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.False(t, reached)
	})
}
