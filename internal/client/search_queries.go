package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// SearchQueriesClient implements webmaster.SearchQueriesClient.
type SearchQueriesClient struct {
	hostScope
}

// NewSearchQueriesClient creates a new search queries client.
func NewSearchQueriesClient(httpClient *http.Client, userID int64) *SearchQueriesClient {
	return &SearchQueriesClient{hostScope: newHostScope(httpClient, userID)}
}

// ListPopular implements webmaster.SearchQueriesClient.ListPopular.
// An empty OrderBy is sent as TOTAL_SHOWS.
func (c *SearchQueriesClient) ListPopular(ctx context.Context, hostID string, request *webmaster.PopularQueriesRequest) (*webmaster.PopularQueriesResponse, error) {
	path, err := c.hostPath(hostID, "search-queries", "popular")
	if err != nil {
		return nil, err
	}

	params := webmaster.PopularQueriesRequest{}
	if request != nil {
		params = *request
	}

	if params.OrderBy == "" {
		params.OrderBy = webmaster.QueryOrderFieldTotalShows
	}

	query, err := http.EncodeQuery(&params)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing popular queries: %w", err)
	}

	return decode[webmaster.PopularQueriesResponse](resp, "popular queries")
}

// GetAllHistory implements webmaster.SearchQueriesClient.GetAllHistory.
func (c *SearchQueriesClient) GetAllHistory(ctx context.Context, hostID string, request *webmaster.QueryHistoryRequest) (*webmaster.QueryHistoryResponse, error) {
	path, err := c.hostPath(hostID, "search-queries", "all", "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting search query history: %w", err)
	}

	return decode[webmaster.QueryHistoryResponse](resp, "search query history")
}

// GetHistory implements webmaster.SearchQueriesClient.GetHistory.
func (c *SearchQueriesClient) GetHistory(ctx context.Context, hostID, queryID string, request *webmaster.QueryHistoryRequest) (*webmaster.SingleQueryHistoryResponse, error) {
	err := requireID("query ID", queryID)
	if err != nil {
		return nil, err
	}

	path, err := c.hostPath(hostID, "search-queries", url.PathEscape(queryID), "history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting query history: %w", err)
	}

	return decode[webmaster.SingleQueryHistoryResponse](resp, "query history")
}
