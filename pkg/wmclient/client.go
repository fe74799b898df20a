// Package wmclient provides the main entry point for creating Webmaster API clients
package wmclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/client"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"golang.org/x/oauth2"
)

// New creates a new Webmaster API client. The caller's config is not modified.
func New(ctx context.Context, config *webmaster.Config) (webmaster.Client, error) {
	if config == nil {
		return nil, webmaster.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithTokenSource creates a client whose Authorization header comes from source.
// Use it when tokens are refreshed outside this package.
func NewWithTokenSource(ctx context.Context, config *webmaster.Config, source oauth2.TokenSource) (webmaster.Client, error) {
	if config == nil {
		return nil, webmaster.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	c, err := client.NewWithTokenSource(ctx, &normalized, source)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client for the public API with an OAuth token.
func NewWithToken(ctx context.Context, token string) (webmaster.Client, error) {
	return New(ctx, &webmaster.Config{Token: token})
}

// NewFromEnv creates a client configured from YWM_* environment variables.
func NewFromEnv(ctx context.Context) (webmaster.Client, error) {
	config, err := webmaster.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

// normalizeBaseURL trims a trailing slash and adds https:// when no scheme is given.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return webmaster.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
