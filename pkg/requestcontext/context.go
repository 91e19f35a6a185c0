// Package requestcontext carries request-scoped values from middleware to
// services and the gateway without either side importing net/http.
//
// Tests set values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixed)
//	ctx = requestcontext.WithPrincipal(ctx, userID, "EMT")
package requestcontext

import (
	"context"
	"time"

	id "eventcare/pkg/domain"
)

type key int

const (
	keyUserID key = iota
	keyRole
	keyTokenID
	keyTokenExpiry
	keyClientIP
	keyUserAgent
	keyRequestID
	keyRequestTime
)

func lookup[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

func get[T any](ctx context.Context, k key) T {
	v, _ := lookup[T](ctx, k)
	return v
}

// UserID is the authenticated principal, or the zero id.
func UserID(ctx context.Context) id.UserID { return get[id.UserID](ctx, keyUserID) }

func Role(ctx context.Context) string { return get[string](ctx, keyRole) }

func WithPrincipal(ctx context.Context, userID id.UserID, role string) context.Context {
	ctx = context.WithValue(ctx, keyUserID, userID)
	return context.WithValue(ctx, keyRole, role)
}

// TokenID is the jti of the bearer token that authenticated the request.
func TokenID(ctx context.Context) string { return get[string](ctx, keyTokenID) }

// TokenExpiry is zero when the request was not token-authenticated.
func TokenExpiry(ctx context.Context) time.Time { return get[time.Time](ctx, keyTokenExpiry) }

func WithToken(ctx context.Context, jti string, expiresAt time.Time) context.Context {
	ctx = context.WithValue(ctx, keyTokenID, jti)
	return context.WithValue(ctx, keyTokenExpiry, expiresAt)
}

func ClientIP(ctx context.Context) string { return get[string](ctx, keyClientIP) }

func UserAgent(ctx context.Context) string { return get[string](ctx, keyUserAgent) }

func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyClientIP, clientIP)
	return context.WithValue(ctx, keyUserAgent, userAgent)
}

func RequestID(ctx context.Context) string { return get[string](ctx, keyRequestID) }

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// Now is the time pinned for this request by the requesttime middleware.
// Outside a request (workers, the CLI) it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := lookup[time.Time](ctx, keyRequestTime); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyRequestTime, t)
}
