package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// StatisticsClient implements webmaster.StatisticsClient.
type StatisticsClient struct {
	hostScope
}

// NewStatisticsClient creates a new statistics client.
func NewStatisticsClient(httpClient *http.Client, userID int64) *StatisticsClient {
	return &StatisticsClient{hostScope: newHostScope(httpClient, userID)}
}

// GetSummary implements webmaster.StatisticsClient.GetSummary.
func (c *StatisticsClient) GetSummary(ctx context.Context, hostID string) (*webmaster.HostSummary, error) {
	path, err := c.hostPath(hostID, "summary")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting host summary: %w", err)
	}

	return decode[webmaster.HostSummary](resp, "host summary")
}

// GetSQIHistory implements webmaster.StatisticsClient.GetSQIHistory.
func (c *StatisticsClient) GetSQIHistory(ctx context.Context, hostID string, request *webmaster.SQIHistoryRequest) ([]webmaster.HistoryPoint, error) {
	path, err := c.hostPath(hostID, "sqi-history")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting SQI history: %w", err)
	}

	history, err := decode[webmaster.SQIHistoryResponse](resp, "SQI history")
	if err != nil {
		return nil, err
	}

	return history.Points, nil
}
