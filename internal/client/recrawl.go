package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// RecrawlClient implements webmaster.RecrawlClient.
type RecrawlClient struct {
	hostScope
}

// NewRecrawlClient creates a new recrawl client.
func NewRecrawlClient(httpClient *http.Client, userID int64) *RecrawlClient {
	return &RecrawlClient{hostScope: newHostScope(httpClient, userID)}
}

// Queue implements webmaster.RecrawlClient.Queue.
func (c *RecrawlClient) Queue(ctx context.Context, hostID, pageURL string) (*webmaster.RecrawlResponse, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, fmt.Errorf("%w: page URL is required", webmaster.ErrInvalidArgument)
	}

	path, err := c.hostPath(hostID, "recrawl", "queue")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, nil, &webmaster.RecrawlRequest{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("queueing recrawl: %w", err)
	}

	return decode[webmaster.RecrawlResponse](resp, "recrawl")
}

// ListTasks implements webmaster.RecrawlClient.ListTasks.
func (c *RecrawlClient) ListTasks(ctx context.Context, hostID string, request *webmaster.RecrawlTasksRequest) (*webmaster.RecrawlTasksResponse, error) {
	path, err := c.hostPath(hostID, "recrawl", "queue")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing recrawl tasks: %w", err)
	}

	return decode[webmaster.RecrawlTasksResponse](resp, "recrawl tasks")
}

// GetTask implements webmaster.RecrawlClient.GetTask.
func (c *RecrawlClient) GetTask(ctx context.Context, hostID, taskID string) (*webmaster.RecrawlTask, error) {
	err := requireID("task ID", taskID)
	if err != nil {
		return nil, err
	}

	path, err := c.hostPath(hostID, "recrawl", "queue", url.PathEscape(taskID))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting recrawl task: %w", err)
	}

	return decode[webmaster.RecrawlTask](resp, "recrawl task")
}

// GetQuota implements webmaster.RecrawlClient.GetQuota.
func (c *RecrawlClient) GetQuota(ctx context.Context, hostID string) (*webmaster.RecrawlQuota, error) {
	path, err := c.hostPath(hostID, "recrawl", "quota")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting recrawl quota: %w", err)
	}

	return decode[webmaster.RecrawlQuota](resp, "recrawl quota")
}
