package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultIdentityTimeout = 5 * time.Second

// IdentityProvider asks the external identity service who owns an access token
type IdentityProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewIdentityProvider(baseURL, apiKey string) *IdentityProvider {
	return &IdentityProvider{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: defaultIdentityTimeout},
	}
}

type identityUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (p *IdentityProvider) Lookup(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	if p.BaseURL == "" {
		return Session{}, errors.New("identity provider URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return Session{}, errors.Wrap(err, "build identity request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if p.APIKey != "" {
		req.Header.Set("apikey", p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: defaultIdentityTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Session{}, errors.Wrap(err, "call identity provider")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, errors.Wrap(err, "read identity response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Session{}, ErrNoSession
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		snippet := strings.TrimSpace(string(body))
		if snippet == "" {
			snippet = resp.Status
		}
		return Session{}, errors.Errorf("identity provider failed (%s): %s", resp.Status, snippet)
	}

	var user identityUser
	if err := json.Unmarshal(body, &user); err != nil {
		return Session{}, errors.Wrap(err, "decode identity response")
	}
	if user.ID == "" {
		return Session{}, ErrNoSession
	}
	return Session{UserID: user.ID, Email: user.Email}, nil
}
