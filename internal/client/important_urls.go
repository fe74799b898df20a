package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// ImportantURLsClient implements webmaster.ImportantURLsClient.
type ImportantURLsClient struct {
	hostScope
}

// NewImportantURLsClient creates a new important URLs client.
func NewImportantURLsClient(httpClient *http.Client, userID int64) *ImportantURLsClient {
	return &ImportantURLsClient{hostScope: newHostScope(httpClient, userID)}
}

// List implements webmaster.ImportantURLsClient.List.
func (c *ImportantURLsClient) List(ctx context.Context, hostID string) (*webmaster.ImportantURLsResponse, error) {
	path, err := c.hostPath(hostID, "important-urls")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing important URLs: %w", err)
	}

	return decode[webmaster.ImportantURLsResponse](resp, "important URLs")
}

// GetHistory implements webmaster.ImportantURLsClient.GetHistory.
func (c *ImportantURLsClient) GetHistory(ctx context.Context, hostID, pageURL string) (*webmaster.ImportantURLHistoryResponse, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, fmt.Errorf("%w: page URL is required", webmaster.ErrInvalidArgument)
	}

	path, err := c.hostPath(hostID, "important-urls", "history")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, url.Values{"url": []string{pageURL}})
	if err != nil {
		return nil, fmt.Errorf("getting important URL history: %w", err)
	}

	return decode[webmaster.ImportantURLHistoryResponse](resp, "important URL history")
}
