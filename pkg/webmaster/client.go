package webmaster

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBaseURL is the Webmaster API v4 endpoint.
const DefaultBaseURL = "https://api.webmaster.yandex.net/v4"

// DefaultAuthScheme is the Authorization scheme the Webmaster API expects.
const DefaultAuthScheme = "OAuth"

// Client is the Webmaster API client. Every host-scoped call is made on
// behalf of the user returned by UserID.
type Client interface {
	// UserID returns the user the client acts for.
	UserID() int64

	// GetUser calls GET /user and returns the user ID bound to the token.
	GetUser(ctx context.Context) (*User, error)

	Hosts() HostsClient
	Verification() VerificationClient
	Statistics() StatisticsClient
	SearchQueries() SearchQueriesClient
	Sitemaps() SitemapsClient
	Indexing() IndexingClient
	SearchURLs() SearchURLsClient
	ImportantURLs() ImportantURLsClient
	Recrawl() RecrawlClient
	Links() LinksClient
	Diagnostics() DiagnosticsClient
}

// HostsClient manages the sites added to the user's account.
type HostsClient interface {
	List(ctx context.Context) ([]HostInfo, error)
	Add(ctx context.Context, hostURL string) (*AddHostResponse, error)
	Get(ctx context.Context, hostID string) (*FullHostInfo, error)
	Delete(ctx context.Context, hostID string) error
}

// VerificationClient checks and starts host ownership verification.
type VerificationClient interface {
	GetStatus(ctx context.Context, hostID string) (*HostVerification, error)
	Verify(ctx context.Context, hostID string, verificationType ExplicitVerificationType) (*HostVerification, error)
	ListOwners(ctx context.Context, hostID string) ([]Owner, error)
}

// StatisticsClient reads site summary statistics.
type StatisticsClient interface {
	GetSummary(ctx context.Context, hostID string) (*HostSummary, error)
	GetSQIHistory(ctx context.Context, hostID string, request *SQIHistoryRequest) ([]HistoryPoint, error)
}

// SearchQueriesClient reads search query analytics.
type SearchQueriesClient interface {
	ListPopular(ctx context.Context, hostID string, request *PopularQueriesRequest) (*PopularQueriesResponse, error)
	GetAllHistory(ctx context.Context, hostID string, request *QueryHistoryRequest) (*QueryHistoryResponse, error)
	GetHistory(ctx context.Context, hostID, queryID string, request *QueryHistoryRequest) (*SingleQueryHistoryResponse, error)
}

// SitemapsClient reads robot-discovered sitemaps and manages user-added ones.
type SitemapsClient interface {
	List(ctx context.Context, hostID string, request *SitemapsRequest) (*SitemapsResponse, error)
	Get(ctx context.Context, hostID, sitemapID string) (*SitemapInfo, error)
	ListUserAdded(ctx context.Context, hostID string, request *UserSitemapsRequest) (*UserSitemapsResponse, error)
	GetUserAdded(ctx context.Context, hostID, sitemapID string) (*UserSitemap, error)
	Add(ctx context.Context, hostID, sitemapURL string) (*AddSitemapResponse, error)
	Delete(ctx context.Context, hostID, sitemapID string) error
}

// IndexingClient reads crawl statistics.
type IndexingClient interface {
	GetHistory(ctx context.Context, hostID string, request *IndexingHistoryRequest) (*IndexingHistoryResponse, error)
	ListSamples(ctx context.Context, hostID string, request *IndexingSamplesRequest) (*IndexingSamplesResponse, error)
}

// SearchURLsClient reads pages in search and search appearance events.
type SearchURLsClient interface {
	GetInSearchHistory(ctx context.Context, hostID string, request *InSearchHistoryRequest) (*InSearchHistoryResponse, error)
	ListInSearchSamples(ctx context.Context, hostID string, request *InSearchSamplesRequest) (*InSearchSamplesResponse, error)
	GetEventsHistory(ctx context.Context, hostID string, request *SearchEventsHistoryRequest) (*SearchEventsHistoryResponse, error)
	ListEventSamples(ctx context.Context, hostID string, request *SearchEventSamplesRequest) (*SearchEventSamplesResponse, error)
}

// ImportantURLsClient reads monitored pages.
type ImportantURLsClient interface {
	List(ctx context.Context, hostID string) (*ImportantURLsResponse, error)
	GetHistory(ctx context.Context, hostID, pageURL string) (*ImportantURLHistoryResponse, error)
}

// RecrawlClient queues pages for recrawl and tracks the requests.
type RecrawlClient interface {
	Queue(ctx context.Context, hostID, pageURL string) (*RecrawlResponse, error)
	ListTasks(ctx context.Context, hostID string, request *RecrawlTasksRequest) (*RecrawlTasksResponse, error)
	GetTask(ctx context.Context, hostID, taskID string) (*RecrawlTask, error)
	GetQuota(ctx context.Context, hostID string) (*RecrawlQuota, error)
}

// LinksClient reads broken internal links and external backlinks.
type LinksClient interface {
	ListBrokenSamples(ctx context.Context, hostID string, request *BrokenLinksRequest) (*BrokenLinksResponse, error)
	GetBrokenHistory(ctx context.Context, hostID string, request *BrokenLinksHistoryRequest) (*BrokenLinksHistoryResponse, error)
	ListExternalSamples(ctx context.Context, hostID string, request *ExternalLinksRequest) (*ExternalLinksResponse, error)
	GetExternalHistory(ctx context.Context, hostID string, request *ExternalLinksHistoryRequest) (*ExternalLinksHistoryResponse, error)
}

// DiagnosticsClient reads site diagnostics.
type DiagnosticsClient interface {
	Get(ctx context.Context, hostID string) (*DiagnosticsResponse, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a webmaster.Client.
//
// Only Token is required. The zero value of every other field selects the
// documented default:
//
//	cfg := &webmaster.Config{Token: os.Getenv("YWM_TOKEN")}
//	client, err := wmclient.New(ctx, cfg)
type Config struct {
	// Token: OAuth token attached to every request.
	Token string
	// AuthScheme: Authorization scheme placed before the token. Defaults to "OAuth".
	AuthScheme string
	// BaseURL: API endpoint. Defaults to DefaultBaseURL. wmclient.New trims a
	// trailing slash and adds "https://" if no scheme is present.
	BaseURL string
	// UserID: when non-zero the GET /user lookup on construction is skipped.
	UserID int64

	// HTTPTimeout: per-attempt timeout of the underlying HTTP client.
	HTTPTimeout time.Duration
	// RetryMax: number of retries for connection errors, 429 and 5xx responses.
	// Zero, the default, makes exactly one attempt per call.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPClient: optional base client. Its transport is wrapped by the auth layer.
	HTTPClient *http.Client
	// MetricsRegisterer: when set, request counters and latency histograms are registered on it.
	MetricsRegisterer prometheus.Registerer
}
