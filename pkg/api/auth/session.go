// Package auth resolves the caller's session from request cookies and decides
// whether a protected route may proceed.
package auth

import (
	"context"

	"github.com/pkg/errors"
)

// DefaultCookieName is the cookie carrying the identity provider's access token
const DefaultCookieName = "sb-access-token"

// Session is zero-or-one resolved identity. The zero value is "no session".
type Session struct {
	UserID string
	Email  string
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}

func (s Session) CurrentUserID() (string, bool) {
	return s.UserID, s.UserID != ""
}

// ErrNoSession is returned by providers when the token is unknown, expired or revoked
var ErrNoSession = errors.New("no active session")

// SessionProvider looks a token up with the identity service
type SessionProvider interface {
	Lookup(ctx context.Context, token string) (Session, error)
}

// StaticProvider resolves tokens from a fixed map of token to user id
type StaticProvider map[string]string

func (p StaticProvider) Lookup(_ context.Context, token string) (Session, error) {
	userID, ok := p[token]
	if !ok {
		return Session{}, ErrNoSession
	}
	return Session{UserID: userID}, nil
}
