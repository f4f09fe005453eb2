package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/token"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingToken     = errors.New("authorization header is required")
	ErrMalformedHeader  = errors.New("invalid authorization header format")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token")
)

// TokenVerifier is satisfied by *token.Issuer.
type TokenVerifier interface {
	VerifyAccessToken(raw string) (token.Claims, error)
}

// Authenticate extracts and verifies the bearer token of r. It is the only
// place access tokens are checked.
func Authenticate(r *http.Request, verifier TokenVerifier) (model.Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return model.Identity{}, ErrMissingToken
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") || headerParts[1] == "" {
		return model.Identity{}, ErrMalformedHeader
	}

	claims, err := verifier.VerifyAccessToken(headerParts[1])
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return model.Identity{}, ErrTokenExpired
		}
		return model.Identity{}, ErrInvalidSignature
	}
	return model.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// BearerAuth rejects requests without a valid access token with 401 and
// otherwise stores the caller in the request context.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := Authenticate(r, verifier)
			if err != nil {
				logger.Log.WithFields(logrus.Fields{
					"path":   r.URL.Path,
					"reason": err.Error(),
				}).Info("Request rejected by bearer auth")
				Unauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Unauthorized writes the 401 body for an Authenticate failure.
func Unauthorized(w http.ResponseWriter, err error) {
	common.NewAuthenticationError(authMessage(err), nil).Send(w)
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Authorization header is required"
	case errors.Is(err, ErrMalformedHeader):
		return "Invalid authorization header format"
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired"
	}
	return "Invalid token"
}
