package testutil

import (
	"net/http"

	id "eventcare/pkg/domain"
	"eventcare/pkg/requestcontext"
)

// WithPrincipal stands in for the auth middleware on handler tests.
func WithPrincipal(req *http.Request, userID id.UserID, role string) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), userID, role))
}
