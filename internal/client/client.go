package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/auth"
	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"golang.org/x/oauth2"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenSourceConfigured = errors.New("no token source configured")
)

// Client implements the webmaster.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     webmaster.Logger
	userID     int64

	// Resource clients
	hosts         *HostsClient
	verification  *VerificationClient
	statistics    *StatisticsClient
	searchQueries *SearchQueriesClient
	sitemaps      *SitemapsClient
	indexing      *IndexingClient
	searchURLs    *SearchURLsClient
	importantURLs *ImportantURLsClient
	recrawl       *RecrawlClient
	links         *LinksClient
	diagnostics   *DiagnosticsClient
}

// createHTTPClientOptions maps the public config onto transport options.
func createHTTPClientOptions(config *webmaster.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.MetricsRegisterer != nil {
		httpOpts = append(httpOpts, http.WithMetrics(config.MetricsRegisterer))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new Webmaster API client. Unless config.UserID is set, the
// user bound to the token is resolved with GET /user.
func New(ctx context.Context, config *webmaster.Config) (*Client, error) {
	if config == nil {
		return nil, webmaster.ErrConfigRequired
	}

	tokenSource, err := auth.NewTokenSource(config.Token, config.AuthScheme)
	if err != nil {
		return nil, fmt.Errorf("creating token source: %w", err)
	}

	return NewWithTokenSource(ctx, config, tokenSource)
}

// NewWithTokenSource creates a client that takes its credentials from tokenSource.
// config.Token and config.AuthScheme are ignored.
func NewWithTokenSource(ctx context.Context, config *webmaster.Config, tokenSource oauth2.TokenSource) (*Client, error) {
	if config == nil {
		return nil, webmaster.ErrConfigRequired
	}

	if tokenSource == nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTokenSourceConfigured, webmaster.ErrAuthentication)
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	httpOpts := createHTTPClientOptions(config)

	client := &Client{
		httpClient: http.NewClient(baseURL, tokenSource, httpOpts...),
		baseURL:    baseURL,
		logger:     config.Logger,
		userID:     config.UserID,
	}

	if client.userID == 0 {
		user, err := client.GetUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving user ID: %w", err)
		}

		client.userID = user.UserID

		if client.logger != nil {
			client.logger.Info("Successfully authenticated", map[string]interface{}{
				"user_id": client.userID,
			})
		}
	}

	client.initializeResourceClients()

	return client, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserID implements webmaster.Client.UserID.
func (c *Client) UserID() int64 {
	return c.userID
}

// GetUser implements webmaster.Client.GetUser.
func (c *Client) GetUser(ctx context.Context) (*webmaster.User, error) {
	resp, err := c.httpClient.Get(ctx, "/user", nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	user, err := decode[webmaster.User](resp, "user")
	if err != nil {
		return nil, err
	}

	if user.UserID == 0 {
		return nil, &webmaster.DecodeError{Target: "user", Body: resp.Body, Err: webmaster.ErrUserIDRequired}
	}

	return user, nil
}

// Hosts implements webmaster.Client.Hosts.
func (c *Client) Hosts() webmaster.HostsClient {
	return c.hosts
}

// Verification implements webmaster.Client.Verification.
func (c *Client) Verification() webmaster.VerificationClient {
	return c.verification
}

// Statistics implements webmaster.Client.Statistics.
func (c *Client) Statistics() webmaster.StatisticsClient {
	return c.statistics
}

// SearchQueries implements webmaster.Client.SearchQueries.
func (c *Client) SearchQueries() webmaster.SearchQueriesClient {
	return c.searchQueries
}

// Sitemaps implements webmaster.Client.Sitemaps.
func (c *Client) Sitemaps() webmaster.SitemapsClient {
	return c.sitemaps
}

// Indexing implements webmaster.Client.Indexing.
func (c *Client) Indexing() webmaster.IndexingClient {
	return c.indexing
}

// SearchURLs implements webmaster.Client.SearchURLs.
func (c *Client) SearchURLs() webmaster.SearchURLsClient {
	return c.searchURLs
}

// ImportantURLs implements webmaster.Client.ImportantURLs.
func (c *Client) ImportantURLs() webmaster.ImportantURLsClient {
	return c.importantURLs
}

// Recrawl implements webmaster.Client.Recrawl.
func (c *Client) Recrawl() webmaster.RecrawlClient {
	return c.recrawl
}

// Links implements webmaster.Client.Links.
func (c *Client) Links() webmaster.LinksClient {
	return c.links
}

// Diagnostics implements webmaster.Client.Diagnostics.
func (c *Client) Diagnostics() webmaster.DiagnosticsClient {
	return c.diagnostics
}

func (c *Client) initializeResourceClients() {
	c.hosts = NewHostsClient(c.httpClient, c.userID)
	c.verification = NewVerificationClient(c.httpClient, c.userID)
	c.statistics = NewStatisticsClient(c.httpClient, c.userID)
	c.searchQueries = NewSearchQueriesClient(c.httpClient, c.userID)
	c.sitemaps = NewSitemapsClient(c.httpClient, c.userID)
	c.indexing = NewIndexingClient(c.httpClient, c.userID)
	c.searchURLs = NewSearchURLsClient(c.httpClient, c.userID)
	c.importantURLs = NewImportantURLsClient(c.httpClient, c.userID)
	c.recrawl = NewRecrawlClient(c.httpClient, c.userID)
	c.links = NewLinksClient(c.httpClient, c.userID)
	c.diagnostics = NewDiagnosticsClient(c.httpClient, c.userID)
}
