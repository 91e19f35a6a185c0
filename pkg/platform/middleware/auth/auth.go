// Package auth turns a bearer token into a request principal.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/platform/httputil"
	"eventcare/pkg/requestcontext"
)

type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type TokenRevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTClaims is the subset of a validated token the middleware consumes.
type JWTClaims struct {
	UserID    string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

var errInvalidToken = dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")

// RequireAuth rejects requests without a valid, unrevoked bearer token with
// 401 before any handler runs. A nil revocation checker skips the jti check.
func RequireAuth(validator JWTValidator, revocations TokenRevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			claims, userID, reason, err := authenticate(ctx, r, validator, revocations)
			if err != nil {
				attrs := []any{"reason", reason, "request_id", requestcontext.RequestID(ctx)}
				if dErrors.HasCode(err, dErrors.CodeInternal) {
					logger.ErrorContext(ctx, "token revocation check failed", append(attrs, "error", err)...)
				} else {
					logger.WarnContext(ctx, "unauthenticated request rejected", attrs...)
				}
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, userID, claims.Role)
			ctx = requestcontext.WithToken(ctx, claims.JTI, claims.ExpiresAt)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate returns the claims and principal, or an error plus a short
// reason for the log line.
func authenticate(ctx context.Context, r *http.Request, validator JWTValidator, revocations TokenRevocationChecker) (*JWTClaims, id.UserID, string, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, id.UserID{}, "missing_token",
			dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header")
	}

	claims, err := validator.ValidateToken(raw)
	if err != nil {
		return nil, id.UserID{}, "invalid_token", errInvalidToken
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil || claims.Role == "" {
		return nil, id.UserID{}, "malformed_claims", errInvalidToken
	}

	if revocations == nil {
		return claims, userID, "", nil
	}
	if claims.JTI == "" {
		return nil, id.UserID{}, "missing_jti", errInvalidToken
	}
	revoked, err := revocations.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, id.UserID{}, "revocation_lookup", dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate token")
	}
	if revoked {
		return nil, id.UserID{}, "revoked", dErrors.New(dErrors.CodeUnauthorized, "token has been revoked")
	}
	return claims, userID, "", nil
}
