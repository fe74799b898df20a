// Package auth attaches the Webmaster API credentials to outgoing requests.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"golang.org/x/oauth2"
)

// ValidateToken checks that token can be sent in an Authorization header.
func ValidateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is empty: %w", webmaster.ErrAuthentication)
	}

	if strings.IndexFunc(token, unicode.IsControl) >= 0 {
		return fmt.Errorf("token contains control characters: %w", webmaster.ErrAuthentication)
	}

	return nil
}

// NewTokenSource returns a source that always yields token with the given scheme.
// An empty scheme selects webmaster.DefaultAuthScheme.
func NewTokenSource(token, scheme string) (oauth2.TokenSource, error) {
	err := ValidateToken(token)
	if err != nil {
		return nil, err
	}

	scheme = strings.TrimSpace(scheme)
	if scheme == "" {
		scheme = webmaster.DefaultAuthScheme
	}

	if strings.ContainsFunc(scheme, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) {
		return nil, fmt.Errorf("invalid auth scheme %q: %w", scheme, webmaster.ErrAuthentication)
	}

	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   scheme,
	}), nil
}

// NewTransport wraps base so that every request carries
// "Authorization: <scheme> <token>". A nil base uses http.DefaultTransport.
// The outgoing request is cloned before the header is set.
func NewTransport(token, scheme string, base http.RoundTripper) (http.RoundTripper, error) {
	source, err := NewTokenSource(token, scheme)
	if err != nil {
		return nil, err
	}

	return WrapTransport(source, base), nil
}

// WrapTransport wraps base with an existing token source.
func WrapTransport(source oauth2.TokenSource, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	return &oauth2.Transport{
		Source: source,
		Base:   base,
	}
}
