// Package session resolves principals from bearer tokens and records the
// LOGIN and LOGOUT actions of the audit trail.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventcare/internal/access"
	"eventcare/internal/gateway"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/requestcontext"
)

// Revoker records revoked token ids until the token would have expired.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// IssuedToken is a signed access token and its expiry.
type IssuedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	gateway *gateway.Gateway
	tokens  *TokenService
	revoker Revoker
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(g *gateway.Gateway, tokens *TokenService, revoker Revoker, opts ...Option) (*Service, error) {
	if g == nil || tokens == nil || revoker == nil {
		return nil, errors.New("gateway, token service and revoker are required")
	}
	s := &Service{gateway: g, tokens: tokens, revoker: revoker, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueToken signs a token for p and records a LOGIN entry against p.
func (s *Service) IssueToken(ctx context.Context, p access.Principal) (*IssuedToken, error) {
	req := gateway.Request{
		Principal:  p,
		Action:     audit.ActionLogin,
		Kind:       audit.KindUser,
		ResourceID: p.ID.String(),
		Scope:      gateway.AuthenticatedScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*IssuedToken, error) {
		signed, claims, err := s.tokens.Issue(p, requestcontext.Now(ctx))
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
		}
		return &IssuedToken{
			AccessToken: signed,
			TokenType:   "Bearer",
			ExpiresAt:   claims.ExpiresAt.Time,
		}, nil
	})
}

// Logout revokes the token that authenticated ctx for the rest of its
// lifetime and records a LOGOUT entry.
func (s *Service) Logout(ctx context.Context, p access.Principal) error {
	req := gateway.Request{
		Principal:  p,
		Action:     audit.ActionLogout,
		Kind:       audit.KindUser,
		ResourceID: p.ID.String(),
		Scope:      gateway.AuthenticatedScope(),
	}
	_, err := gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (struct{}, error) {
		jti := requestcontext.TokenID(ctx)
		if jti == "" {
			return struct{}{}, dErrors.New(dErrors.CodeBadRequest, "request was not authenticated by a revocable token")
		}
		ttl := requestcontext.TokenExpiry(ctx).Sub(requestcontext.Now(ctx))
		if ttl <= 0 {
			// already expired
			return struct{}{}, nil
		}
		if err := s.revoker.Revoke(ctx, jti, ttl); err != nil {
			return struct{}{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
		}
		s.logger.InfoContext(ctx, "token revoked",
			"request_id", requestcontext.RequestID(ctx),
			"principal_id", p.ID.String(),
			"jti", jti,
		)
		return struct{}{}, nil
	})
	return err
}
