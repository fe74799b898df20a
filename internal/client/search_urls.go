package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// SearchURLsClient implements webmaster.SearchURLsClient.
type SearchURLsClient struct {
	hostScope
}

// NewSearchURLsClient creates a new search URLs client.
func NewSearchURLsClient(httpClient *http.Client, userID int64) *SearchURLsClient {
	return &SearchURLsClient{hostScope: newHostScope(httpClient, userID)}
}

// GetInSearchHistory implements webmaster.SearchURLsClient.GetInSearchHistory.
func (c *SearchURLsClient) GetInSearchHistory(ctx context.Context, hostID string, request *webmaster.InSearchHistoryRequest) (*webmaster.InSearchHistoryResponse, error) {
	path, err := c.hostPath(hostID, "search-urls", "in-search", "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting in-search history: %w", err)
	}

	return decode[webmaster.InSearchHistoryResponse](resp, "in-search history")
}

// ListInSearchSamples implements webmaster.SearchURLsClient.ListInSearchSamples.
func (c *SearchURLsClient) ListInSearchSamples(ctx context.Context, hostID string, request *webmaster.InSearchSamplesRequest) (*webmaster.InSearchSamplesResponse, error) {
	path, err := c.hostPath(hostID, "search-urls", "in-search", "samples")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing in-search samples: %w", err)
	}

	return decode[webmaster.InSearchSamplesResponse](resp, "in-search samples")
}

// GetEventsHistory implements webmaster.SearchURLsClient.GetEventsHistory.
func (c *SearchURLsClient) GetEventsHistory(ctx context.Context, hostID string, request *webmaster.SearchEventsHistoryRequest) (*webmaster.SearchEventsHistoryResponse, error) {
	path, err := c.hostPath(hostID, "search-urls", "events", "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting search events history: %w", err)
	}

	return decode[webmaster.SearchEventsHistoryResponse](resp, "search events history")
}

// ListEventSamples implements webmaster.SearchURLsClient.ListEventSamples.
func (c *SearchURLsClient) ListEventSamples(ctx context.Context, hostID string, request *webmaster.SearchEventSamplesRequest) (*webmaster.SearchEventSamplesResponse, error) {
	path, err := c.hostPath(hostID, "search-urls", "events", "samples")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing search event samples: %w", err)
	}

	return decode[webmaster.SearchEventSamplesResponse](resp, "search event samples")
}
