package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/log"
)

// RouteKind says how a route treats a missing session
type RouteKind int

const (
	RouteOpen RouteKind = iota
	// RouteAPI answers 401 JSON
	RouteAPI
	// RoutePage redirects to the login location
	RoutePage
)

// Decision is the outcome of the gate for one request
type Decision struct {
	Allow bool
	// Status is set when Allow is false
	Status int
	// RedirectTo is set for denied page routes
	RedirectTo string
	Err        *apierror.Error
}

// Gate resolves sessions and makes the allow/deny call
type Gate struct {
	provider   SessionProvider
	cookieName string
	loginPath  string
}

func NewGate(provider SessionProvider, cookieName, loginPath string) *Gate {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Gate{provider: provider, cookieName: cookieName, loginPath: loginPath}
}

func (g *Gate) CookieName() string {
	return g.cookieName
}

// Resolve looks the session cookie up with the provider. A missing cookie or
// an unknown token is not an error; provider failures are.
func (g *Gate) Resolve(ctx context.Context, cookies map[string]string) (Session, error) {
	token := cookies[g.cookieName]
	if token == "" || g.provider == nil {
		return Session{}, nil
	}
	session, err := g.provider.Lookup(ctx, token)
	if errors.Is(err, ErrNoSession) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, errors.WithMessage(err, "resolving session")
	}
	return session, nil
}

// ResolveRequest collects the request cookies and resolves them. Provider
// failures are logged and treated as no session.
func (g *Gate) ResolveRequest(r *http.Request) Session {
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}
	session, err := g.Resolve(r.Context(), cookies)
	if err != nil {
		log.Warnf("session lookup failed for %s: %v", r.URL.Path, err)
		return Session{}
	}
	return session
}

// Decide applies the route kind to a resolved session. originalURL is the
// path and query the user asked for and is carried through the login redirect.
func (g *Gate) Decide(session Session, kind RouteKind, originalURL string) Decision {
	if kind == RouteOpen || session.IsAuthenticated() {
		return Decision{Allow: true}
	}
	if kind == RoutePage {
		return Decision{Status: http.StatusFound, RedirectTo: g.LoginRedirect(originalURL)}
	}
	return Decision{Status: http.StatusUnauthorized, Err: apierror.Unauthorized("Unauthorized")}
}

// LoginRedirect is the login location that sends the user back to originalURL
func (g *Gate) LoginRedirect(originalURL string) string {
	if originalURL == "" {
		return g.loginPath
	}
	return g.loginPath + "?" + url.Values{"redirect": {originalURL}}.Encode()
}
