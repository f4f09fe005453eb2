// Package token mints and verifies HS256 access tokens and generates the opaque
// refresh tokens handed out alongside them.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret    = errors.New("token: signing secret is empty")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrExpired          = errors.New("token: expired")
)

// OpaqueTokenBytes is the entropy of a refresh token before hex encoding.
const OpaqueTokenBytes = 32

// Claims is the identity carried inside an access token.
type Claims struct {
	UserID   int64
	Username string
}

// AccessClaims is the signed JWT payload.
type AccessClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AccessToken is a signed token together with its validity window.
type AccessToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. Access tokens live for ttl.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: access ttl must be positive, got %s", ttl)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source used for iat/exp and expiry checks.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// TTL returns the access token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) IssueAccessToken(claims Claims) (AccessToken, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("failed to sign token string: %w", err)
	}
	return AccessToken{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// VerifyAccessToken checks the signature and expiry of raw. Any failure other than
// expiry is reported as ErrInvalidSignature.
func (i *Issuer) VerifyAccessToken(raw string) (Claims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if claims.UserID <= 0 {
		return Claims{}, fmt.Errorf("%w: missing user id", ErrInvalidSignature)
	}
	return Claims{UserID: claims.UserID, Username: claims.Username}, nil
}

// GenerateOpaqueToken returns 32 random bytes as 64 lowercase hex characters.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, OpaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashOpaqueToken returns the SHA-256 hex digest stored in place of the raw token.
func HashOpaqueToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
