package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// DiagnosticsClient implements webmaster.DiagnosticsClient.
type DiagnosticsClient struct {
	hostScope
}

// NewDiagnosticsClient creates a new diagnostics client.
func NewDiagnosticsClient(httpClient *http.Client, userID int64) *DiagnosticsClient {
	return &DiagnosticsClient{hostScope: newHostScope(httpClient, userID)}
}

// Get implements webmaster.DiagnosticsClient.Get.
func (c *DiagnosticsClient) Get(ctx context.Context, hostID string) (*webmaster.DiagnosticsResponse, error) {
	path, err := c.hostPath(hostID, "diagnostics")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting diagnostics: %w", err)
	}

	return decode[webmaster.DiagnosticsResponse](resp, "diagnostics")
}
