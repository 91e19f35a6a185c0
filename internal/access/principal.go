package access

import (
	"context"

	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/requestcontext"
)

// PrincipalFromContext reads the principal placed by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return Principal{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	role, err := ParseRole(requestcontext.Role(ctx))
	if err != nil {
		return Principal{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return Principal{ID: userID, Role: role}, nil
}
