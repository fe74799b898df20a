package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// HostsClient implements webmaster.HostsClient.
type HostsClient struct {
	hostScope
}

// NewHostsClient creates a new hosts client.
func NewHostsClient(httpClient *http.Client, userID int64) *HostsClient {
	return &HostsClient{hostScope: newHostScope(httpClient, userID)}
}

// List implements webmaster.HostsClient.List.
func (c *HostsClient) List(ctx context.Context) ([]webmaster.HostInfo, error) {
	path, err := c.userPath("hosts")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing hosts: %w", err)
	}

	hosts, err := decode[webmaster.HostsResponse](resp, "hosts list")
	if err != nil {
		return nil, err
	}

	return hosts.Hosts, nil
}

// Add implements webmaster.HostsClient.Add.
func (c *HostsClient) Add(ctx context.Context, hostURL string) (*webmaster.AddHostResponse, error) {
	if strings.TrimSpace(hostURL) == "" {
		return nil, fmt.Errorf("%w: host URL is required", webmaster.ErrInvalidArgument)
	}

	path, err := c.userPath("hosts")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, nil, &webmaster.AddHostRequest{HostURL: hostURL})
	if err != nil {
		return nil, fmt.Errorf("adding host: %w", err)
	}

	return decode[webmaster.AddHostResponse](resp, "add host")
}

// Get implements webmaster.HostsClient.Get.
func (c *HostsClient) Get(ctx context.Context, hostID string) (*webmaster.FullHostInfo, error) {
	path, err := c.hostPath(hostID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting host: %w", err)
	}

	return decode[webmaster.FullHostInfo](resp, "host")
}

// Delete implements webmaster.HostsClient.Delete.
func (c *HostsClient) Delete(ctx context.Context, hostID string) error {
	path, err := c.hostPath(hostID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting host: %w", err)
	}

	return nil
}
