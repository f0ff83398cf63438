package auth

import (
	"context"
	"fmt"
)

// Provider acquires a bearer token for the backend, caching it between
// activations. Acquisition is interactive when no usable cached token
// exists; no retry happens internally, a fresh attempt is user-initiated
// by refreshing or re-opening.
type Provider struct {
	tokenStore *KeyringTokenStore
}

// NewProvider creates a token provider backed by the OS keyring.
func NewProvider(tokenStore *KeyringTokenStore) *Provider {
	return &Provider{tokenStore: tokenStore}
}

// AcquireToken returns a bearer token string, running the interactive
// OAuth flow if the cached token is missing or expired. Failures are
// reported as *AuthError carrying the provider's message verbatim.
func (p *Provider) AcquireToken(ctx context.Context) (string, error) {
	if err := EnsureCredentials(); err != nil {
		return "", &AuthError{Message: err.Error()}
	}

	// A cached token that is still fresh (or refreshable) avoids the
	// interactive flow entirely.
	if cached, err := p.tokenStore.LoadToken(); err == nil && cached != nil {
		src := oauthConfig.TokenSource(ctx, cached)
		token, err := src.Token()
		if err == nil && token.AccessToken != "" {
			if token.AccessToken != cached.AccessToken {
				// Refreshed; persist the new token for next time.
				if err := p.tokenStore.SaveToken(token); err != nil {
					return "", &AuthError{Message: err.Error()}
				}
			}
			return token.AccessToken, nil
		}
	}

	token, err := authenticate(ctx)
	if err != nil {
		return "", &AuthError{Message: err.Error()}
	}
	if token.AccessToken == "" {
		return "", &AuthError{Message: "identity provider returned an empty token"}
	}
	if err := p.tokenStore.SaveToken(token); err != nil {
		return "", &AuthError{Message: err.Error()}
	}
	return token.AccessToken, nil
}

// Forget drops the cached token so the next acquisition starts from a
// clean slate.
func (p *Provider) Forget() error {
	if err := p.tokenStore.DeleteToken(); err != nil {
		return fmt.Errorf("failed to forget token: %w", err)
	}
	return nil
}
