// Package http implements the request loop shared by every resource client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/auth"
	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"
)

// Client performs requests against the Webmaster API.
type Client struct {
	baseURL      string
	tokenSource  oauth2.TokenSource
	httpClient   *http.Client
	retryClient  *retryablehttp.Client
	logger       webmaster.Logger
	userAgent    string
	debug        bool
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	registerer   prometheus.Registerer
}

// Request describes a single API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response holds a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. The client is copied, not modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger webmaster.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMetrics registers request metrics on registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = registerer
	}
}

// NewClient creates a new HTTP client. A nil tokenSource sends no Authorization header.
func NewClient(baseURL string, tokenSource oauth2.TokenSource, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		tokenSource:  tokenSource,
		userAgent:    constants.DefaultUserAgent,
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     0,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retryClient = client.newRetryClient()

	return client
}

func (c *Client) newRetryClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = c.retryMax
	retryClient.RetryWaitMin = c.retryWaitMin
	retryClient.RetryWaitMax = c.retryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.logger != nil {
		retryClient.Logger = &leveledLogger{logger: c.logger}
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				c.logger.Warn("Retrying HTTP request", map[string]interface{}{
					"method":  req.Method,
					"url":     req.URL.String(),
					"attempt": attempt,
				})
			}
		}
	}

	httpClient := retryClient.HTTPClient
	if c.httpClient != nil {
		copied := *c.httpClient
		httpClient = &copied
	}

	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if c.registerer != nil {
		transport = instrumentTransport(c.registerer, transport)
	}

	if c.tokenSource != nil {
		transport = auth.WrapTransport(c.tokenSource, transport)
	}

	httpClient.Transport = transport
	if c.timeout > 0 {
		httpClient.Timeout = c.timeout
	}

	retryClient.HTTPClient = httpClient

	return retryClient
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req. For non-2xx responses both the Response and a *webmaster.APIError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, &webmaster.EncodeError{Err: fmt.Errorf("marshaling request body: %w", err)}
		}
	}

	var body interface{}
	if bodyBytes != nil {
		body = bytes.NewReader(bodyBytes)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, &webmaster.TransportError{Method: req.Method, URL: fullURL, Err: err}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if bodyBytes != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   string(bodyBytes),
		})
	}

	start := time.Now()

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, &webmaster.TransportError{Method: req.Method, URL: fullURL, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &webmaster.TransportError{
			Method: req.Method,
			URL:    fullURL,
			Err:    fmt.Errorf("reading response body: %w", err),
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"body":     string(respBody),
			"duration": time.Since(start).String(),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, webmaster.ParseAPIError(httpResp.StatusCode, respBody)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  query,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}
