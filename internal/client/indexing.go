package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// IndexingClient implements webmaster.IndexingClient.
type IndexingClient struct {
	hostScope
}

// NewIndexingClient creates a new indexing client.
func NewIndexingClient(httpClient *http.Client, userID int64) *IndexingClient {
	return &IndexingClient{hostScope: newHostScope(httpClient, userID)}
}

// GetHistory implements webmaster.IndexingClient.GetHistory.
func (c *IndexingClient) GetHistory(ctx context.Context, hostID string, request *webmaster.IndexingHistoryRequest) (*webmaster.IndexingHistoryResponse, error) {
	path, err := c.hostPath(hostID, "indexing", "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting indexing history: %w", err)
	}

	return decode[webmaster.IndexingHistoryResponse](resp, "indexing history")
}

// ListSamples implements webmaster.IndexingClient.ListSamples.
func (c *IndexingClient) ListSamples(ctx context.Context, hostID string, request *webmaster.IndexingSamplesRequest) (*webmaster.IndexingSamplesResponse, error) {
	path, err := c.hostPath(hostID, "indexing", "samples")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing indexing samples: %w", err)
	}

	return decode[webmaster.IndexingSamplesResponse](resp, "indexing samples")
}
