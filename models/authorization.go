package models

import "github.com/samber/mo"

type AuthedUser struct {
	ID          string
	AccessToken string
}

// AuthorizationResult is the outcome of exchanging an OAuth code. Remote
// failures are reported through Error rather than as a Go error.
type AuthorizationResult struct {
	AuthedUser mo.Option[AuthedUser]
	Error      string
}

// AuthorizedUser returns the user only when both the id and the access token are present
func (r AuthorizationResult) AuthorizedUser() mo.Option[AuthedUser] {
	user, ok := r.AuthedUser.Get()
	if !ok || user.ID == "" || user.AccessToken == "" {
		return mo.None[AuthedUser]()
	}
	return mo.Some(user)
}

const TokenRevokedError = "token_revoked"

// RevokeResult is the outcome of auth.revoke.
type RevokeResult struct {
	Revoked bool
	Error   string
}

// Succeeded reports whether the token is gone, including when it was revoked earlier
func (r RevokeResult) Succeeded() bool {
	return r.Revoked || r.Error == TokenRevokedError
}
