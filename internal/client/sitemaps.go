package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// SitemapsClient implements webmaster.SitemapsClient.
type SitemapsClient struct {
	hostScope
}

// NewSitemapsClient creates a new sitemaps client.
func NewSitemapsClient(httpClient *http.Client, userID int64) *SitemapsClient {
	return &SitemapsClient{hostScope: newHostScope(httpClient, userID)}
}

// List implements webmaster.SitemapsClient.List.
func (c *SitemapsClient) List(ctx context.Context, hostID string, request *webmaster.SitemapsRequest) (*webmaster.SitemapsResponse, error) {
	path, err := c.hostPath(hostID, "sitemaps")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing sitemaps: %w", err)
	}

	return decode[webmaster.SitemapsResponse](resp, "sitemaps list")
}

// Get implements webmaster.SitemapsClient.Get.
func (c *SitemapsClient) Get(ctx context.Context, hostID, sitemapID string) (*webmaster.SitemapInfo, error) {
	err := requireID("sitemap ID", sitemapID)
	if err != nil {
		return nil, err
	}

	path, err := c.hostPath(hostID, "sitemaps", url.PathEscape(sitemapID))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting sitemap: %w", err)
	}

	return decode[webmaster.SitemapInfo](resp, "sitemap")
}

// ListUserAdded implements webmaster.SitemapsClient.ListUserAdded.
func (c *SitemapsClient) ListUserAdded(ctx context.Context, hostID string, request *webmaster.UserSitemapsRequest) (*webmaster.UserSitemapsResponse, error) {
	path, err := c.hostPath(hostID, "user-added-sitemaps")
	if err != nil {
		return nil, err
	}

	query, err := http.EncodeQuery(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing user sitemaps: %w", err)
	}

	return decode[webmaster.UserSitemapsResponse](resp, "user sitemaps list")
}

// GetUserAdded implements webmaster.SitemapsClient.GetUserAdded.
func (c *SitemapsClient) GetUserAdded(ctx context.Context, hostID, sitemapID string) (*webmaster.UserSitemap, error) {
	err := requireID("sitemap ID", sitemapID)
	if err != nil {
		return nil, err
	}

	path, err := c.hostPath(hostID, "user-added-sitemaps", url.PathEscape(sitemapID))
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user sitemap: %w", err)
	}

	return decode[webmaster.UserSitemap](resp, "user sitemap")
}

// Add implements webmaster.SitemapsClient.Add.
func (c *SitemapsClient) Add(ctx context.Context, hostID, sitemapURL string) (*webmaster.AddSitemapResponse, error) {
	if strings.TrimSpace(sitemapURL) == "" {
		return nil, fmt.Errorf("%w: sitemap URL is required", webmaster.ErrInvalidArgument)
	}

	path, err := c.hostPath(hostID, "user-added-sitemaps")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, nil, &webmaster.AddSitemapRequest{URL: sitemapURL})
	if err != nil {
		return nil, fmt.Errorf("adding sitemap: %w", err)
	}

	return decode[webmaster.AddSitemapResponse](resp, "add sitemap")
}

// Delete implements webmaster.SitemapsClient.Delete.
func (c *SitemapsClient) Delete(ctx context.Context, hostID, sitemapID string) error {
	err := requireID("sitemap ID", sitemapID)
	if err != nil {
		return err
	}

	path, err := c.hostPath(hostID, "user-added-sitemaps", url.PathEscape(sitemapID))
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting sitemap: %w", err)
	}

	return nil
}
