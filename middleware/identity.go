package middleware

import (
	"context"
	"net/http"
	"strconv"

	"go-ledger-api/common"
	"go-ledger-api/model"
)

// Identity headers set by the gateway on every forwarded request.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
)

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller attached by BearerAuth or TrustedIdentity.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

// StripIdentityHeaders removes any client-supplied identity headers.
func StripIdentityHeaders(h http.Header) {
	h.Del(HeaderUserID)
	h.Del(HeaderUsername)
}

// SetIdentityHeaders overwrites the identity headers with id.
func SetIdentityHeaders(h http.Header, id model.Identity) {
	h.Set(HeaderUserID, strconv.FormatInt(id.UserID, 10))
	h.Set(HeaderUsername, id.Username)
}

// TrustedIdentity reads the caller from gateway-injected headers. Services
// using it must only be reachable through the gateway.
func TrustedIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			common.NewAuthenticationError("Missing user identity", nil).Send(w)
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			common.NewAuthenticationError("Invalid user identity", nil).Send(w)
			return
		}

		id := model.Identity{UserID: userID, Username: r.Header.Get(HeaderUsername)}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
