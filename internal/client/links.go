package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// LinksClient implements webmaster.LinksClient.
type LinksClient struct {
	hostScope
}

// NewLinksClient creates a new links client.
func NewLinksClient(httpClient *http.Client, userID int64) *LinksClient {
	return &LinksClient{hostScope: newHostScope(httpClient, userID)}
}

// ListBrokenSamples implements webmaster.LinksClient.ListBrokenSamples.
func (c *LinksClient) ListBrokenSamples(ctx context.Context, hostID string, request *webmaster.BrokenLinksRequest) (*webmaster.BrokenLinksResponse, error) {
	path, err := c.hostPath(hostID, "links", "internal", "broken", "samples")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing broken links: %w", err)
	}

	return decode[webmaster.BrokenLinksResponse](resp, "broken links")
}

// GetBrokenHistory implements webmaster.LinksClient.GetBrokenHistory.
func (c *LinksClient) GetBrokenHistory(ctx context.Context, hostID string, request *webmaster.BrokenLinksHistoryRequest) (*webmaster.BrokenLinksHistoryResponse, error) {
	path, err := c.hostPath(hostID, "links", "internal", "broken", "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting broken links history: %w", err)
	}

	return decode[webmaster.BrokenLinksHistoryResponse](resp, "broken links history")
}

// ListExternalSamples implements webmaster.LinksClient.ListExternalSamples.
func (c *LinksClient) ListExternalSamples(ctx context.Context, hostID string, request *webmaster.ExternalLinksRequest) (*webmaster.ExternalLinksResponse, error) {
	path, err := c.hostPath(hostID, "links", "external", "samples")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing external links: %w", err)
	}

	return decode[webmaster.ExternalLinksResponse](resp, "external links")
}

// GetExternalHistory implements webmaster.LinksClient.GetExternalHistory.
// An empty Indicator is sent as LINKS_TOTAL_COUNT.
func (c *LinksClient) GetExternalHistory(ctx context.Context, hostID string, request *webmaster.ExternalLinksHistoryRequest) (*webmaster.ExternalLinksHistoryResponse, error) {
	path, err := c.hostPath(hostID, "links", "external", "history")
	if err != nil {
		return nil, err
	}

	params := webmaster.ExternalLinksHistoryRequest{}
	if request != nil {
		params = *request
	}

	if params.Indicator == "" {
		params.Indicator = webmaster.ExternalLinkIndicatorLinksTotalCount
	}

	query, err := http.EncodeQuery(&params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting external links history: %w", err)
	}

	return decode[webmaster.ExternalLinksHistoryResponse](resp, "external links history")
}
