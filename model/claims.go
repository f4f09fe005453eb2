package model

// Identity is the authenticated caller attached to a request, either after bearer
// token verification or after trusting gateway-injected headers.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
