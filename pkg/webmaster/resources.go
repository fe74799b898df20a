package webmaster

import "time"

// User is the response of GET /user.
type User struct {
	UserID int64 `json:"user_id" yaml:"user_id"`
}

// HostInfo is a site added to the user's account.
type HostInfo struct {
	HostID         string    `json:"host_id"               yaml:"host_id"`
	ASCIIHostURL   string    `json:"ascii_host_url"        yaml:"ascii_host_url"`
	UnicodeHostURL string    `json:"unicode_host_url"      yaml:"unicode_host_url"`
	Verified       bool      `json:"verified"              yaml:"verified"`
	MainMirror     *HostInfo `json:"main_mirror,omitempty" yaml:"main_mirror,omitempty"`
}

// FullHostInfo is the response of GET /user/{user_id}/hosts/{host_id}.
type FullHostInfo struct {
	HostInfo `yaml:",inline"`

	HostDataStatus  *HostDataStatus `json:"host_data_status,omitempty"  yaml:"host_data_status,omitempty"`
	HostDisplayName string          `json:"host_display_name,omitempty" yaml:"host_display_name,omitempty"`
}

// HostsResponse is the response of GET /user/{user_id}/hosts.
type HostsResponse struct {
	Hosts []HostInfo `json:"hosts" yaml:"hosts"`
}

// AddHostRequest adds a site to the user's account.
type AddHostRequest struct {
	HostURL string `json:"host_url" yaml:"host_url"`
}

// AddHostResponse carries the identifier of an added site.
type AddHostResponse struct {
	HostID string `json:"host_id" yaml:"host_id"`
}

// VerificationFailInfo describes why the last verification attempt failed.
type VerificationFailInfo struct {
	Reason  VerificationFailReason `json:"reason"            yaml:"reason"`
	Message string                 `json:"message,omitempty" yaml:"message,omitempty"`
}

// HostVerification is the ownership verification state of a site.
type HostVerification struct {
	VerificationUIN        string                     `json:"verification_uin"                   yaml:"verification_uin"`
	VerificationState      VerificationState          `json:"verification_state"                 yaml:"verification_state"`
	VerificationType       VerificationType           `json:"verification_type,omitempty"        yaml:"verification_type,omitempty"`
	LatestVerificationTime *Time                      `json:"latest_verification_time,omitempty" yaml:"latest_verification_time,omitempty"`
	FailInfo               *VerificationFailInfo      `json:"fail_info,omitempty"                yaml:"fail_info,omitempty"`
	ApplicableVerifiers    []ExplicitVerificationType `json:"applicable_verifiers,omitempty"     yaml:"applicable_verifiers,omitempty"`
}

// Owner is a user who has verified rights to a site.
type Owner struct {
	UserLogin        string           `json:"user_login"                  yaml:"user_login"`
	VerificationUIN  string           `json:"verification_uin"            yaml:"verification_uin"`
	VerificationType VerificationType `json:"verification_type"           yaml:"verification_type"`
	VerificationDate *Time            `json:"verification_date,omitempty" yaml:"verification_date,omitempty"`
}

// OwnersResponse is the response of GET .../owners.
type OwnersResponse struct {
	Users []Owner `json:"users" yaml:"users"`
}

// HostSummary is the site summary statistics.
type HostSummary struct {
	SQI                  int64                         `json:"sqi"                     yaml:"sqi"`
	ExcludedPagesCount   int64                         `json:"excluded_pages_count"    yaml:"excluded_pages_count"`
	SearchablePagesCount int64                         `json:"searchable_pages_count"  yaml:"searchable_pages_count"`
	SiteProblems         map[SiteProblemSeverity]int64 `json:"site_problems,omitempty" yaml:"site_problems,omitempty"`
}

// DateRange bounds a history request. Nil bounds are left to the API defaults.
type DateRange struct {
	DateFrom *time.Time `url:"date_from,omitempty" json:"-" yaml:"date_from,omitempty"`
	DateTo   *time.Time `url:"date_to,omitempty"   json:"-" yaml:"date_to,omitempty"`
}

// SQIHistoryRequest selects the SQI history range.
type SQIHistoryRequest struct {
	DateRange
}

// SQIHistoryResponse is the site quality index history.
type SQIHistoryResponse struct {
	Points []HistoryPoint `json:"points" yaml:"points"`
}

// PopularQueriesRequest selects popular search queries.
type PopularQueriesRequest struct {
	OrderBy             QueryOrderField  `url:"order_by"                        json:"-" yaml:"order_by"`
	QueryIndicator      []QueryIndicator `url:"query_indicator,omitempty"       json:"-" yaml:"query_indicator,omitempty"`
	DeviceTypeIndicator DeviceType       `url:"device_type_indicator,omitempty" json:"-" yaml:"device_type_indicator,omitempty"`
	DateFrom            *Date            `url:"date_from,omitempty"             json:"-" yaml:"date_from,omitempty"`
	DateTo              *Date            `url:"date_to,omitempty"               json:"-" yaml:"date_to,omitempty"`
	Offset              *int             `url:"offset,omitempty"                json:"-" yaml:"offset,omitempty"`
	Limit               *int             `url:"limit,omitempty"                 json:"-" yaml:"limit,omitempty"`
}

// PopularQuery is a single popular search query with its indicators.
type PopularQuery struct {
	QueryID    string                     `json:"query_id"   yaml:"query_id"`
	QueryText  string                     `json:"query_text" yaml:"query_text"`
	Indicators map[QueryIndicator]float64 `json:"indicators" yaml:"indicators"`
}

// PopularQueriesResponse is the response of GET .../search-queries/popular.
type PopularQueriesResponse struct {
	Queries  []PopularQuery `json:"queries"   yaml:"queries"`
	DateFrom Date           `json:"date_from" yaml:"date_from"`
	DateTo   Date           `json:"date_to"   yaml:"date_to"`
	Count    int64          `json:"count"     yaml:"count"`
}

// QueryHistoryRequest selects the history of all queries or of a single query.
type QueryHistoryRequest struct {
	QueryIndicator      []QueryIndicator `url:"query_indicator,omitempty"       json:"-" yaml:"query_indicator,omitempty"`
	DeviceTypeIndicator DeviceType       `url:"device_type_indicator,omitempty" json:"-" yaml:"device_type_indicator,omitempty"`
	DateFrom            *Date            `url:"date_from,omitempty"             json:"-" yaml:"date_from,omitempty"`
	DateTo              *Date            `url:"date_to,omitempty"               json:"-" yaml:"date_to,omitempty"`
}

// QueryHistoryResponse is the indicator history of all search queries.
type QueryHistoryResponse struct {
	Indicators map[QueryIndicator][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// SingleQueryHistoryResponse is the indicator history of one search query.
type SingleQueryHistoryResponse struct {
	QueryID    string                            `json:"query_id"   yaml:"query_id"`
	QueryText  string                            `json:"query_text" yaml:"query_text"`
	Indicators map[QueryIndicator][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// SitemapsRequest pages through sitemaps known to the robot.
type SitemapsRequest struct {
	ParentID string `url:"parent_id,omitempty" json:"-" yaml:"parent_id,omitempty"`
	Limit    *int   `url:"limit,omitempty"     json:"-" yaml:"limit,omitempty"`
	From     string `url:"from,omitempty"      json:"-" yaml:"from,omitempty"`
}

// SitemapInfo is a sitemap known to the robot.
type SitemapInfo struct {
	SitemapID      string          `json:"sitemap_id"                 yaml:"sitemap_id"`
	SitemapURL     string          `json:"sitemap_url"                yaml:"sitemap_url"`
	LastAccessDate *Time           `json:"last_access_date,omitempty" yaml:"last_access_date,omitempty"`
	ErrorsCount    int64           `json:"errors_count"               yaml:"errors_count"`
	URLsCount      int64           `json:"urls_count"                 yaml:"urls_count"`
	ChildrenCount  *int64          `json:"children_count,omitempty"   yaml:"children_count,omitempty"`
	Sources        []SitemapSource `json:"sources"                    yaml:"sources"`
	SitemapType    SitemapType     `json:"sitemap_type"               yaml:"sitemap_type"`
}

// SitemapsResponse is the response of GET .../sitemaps.
type SitemapsResponse struct {
	Sitemaps []SitemapInfo `json:"sitemaps" yaml:"sitemaps"`
}

// PageRequest is an offset/limit page selector.
type PageRequest struct {
	Offset *int `url:"offset,omitempty" json:"-" yaml:"offset,omitempty"`
	Limit  *int `url:"limit,omitempty"  json:"-" yaml:"limit,omitempty"`
}

// UserSitemapsRequest pages through user-added sitemaps.
type UserSitemapsRequest struct {
	PageRequest
}

// UserSitemap is a sitemap added through the Webmaster API or UI.
type UserSitemap struct {
	SitemapID  string `json:"sitemap_id"  yaml:"sitemap_id"`
	SitemapURL string `json:"sitemap_url" yaml:"sitemap_url"`
	AddedDate  Time   `json:"added_date"  yaml:"added_date"`
}

// UserSitemapsResponse is the response of GET .../user-added-sitemaps.
type UserSitemapsResponse struct {
	Sitemaps []UserSitemap `json:"sitemaps" yaml:"sitemaps"`
	Count    int64         `json:"count"    yaml:"count"`
}

// AddSitemapRequest adds a sitemap.
type AddSitemapRequest struct {
	URL string `json:"url" yaml:"url"`
}

// AddSitemapResponse carries the identifier of an added sitemap.
type AddSitemapResponse struct {
	SitemapID string `json:"sitemap_id" yaml:"sitemap_id"`
}

// IndexingHistoryRequest selects the indexing history range.
type IndexingHistoryRequest struct {
	DateRange
}

// IndexingHistoryResponse is the crawl history grouped by HTTP status class.
type IndexingHistoryResponse struct {
	Indicators map[IndexingStatus][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// IndexingSamplesRequest pages through crawled page samples.
type IndexingSamplesRequest struct {
	PageRequest
}

// IndexingSample is a page downloaded by the robot.
type IndexingSample struct {
	URL        string         `json:"url"         yaml:"url"`
	HTTPCode   int            `json:"http_code"   yaml:"http_code"`
	Status     IndexingStatus `json:"status"      yaml:"status"`
	AccessDate Time           `json:"access_date" yaml:"access_date"`
}

// IndexingSamplesResponse is the response of GET .../indexing/samples.
type IndexingSamplesResponse struct {
	Count   int64            `json:"count"   yaml:"count"`
	Samples []IndexingSample `json:"samples" yaml:"samples"`
}

// InSearchHistoryRequest selects the in-search page count history range.
type InSearchHistoryRequest struct {
	DateRange
}

// InSearchHistoryResponse is the number of pages in search over time.
type InSearchHistoryResponse struct {
	History []HistoryPoint `json:"history" yaml:"history"`
}

// InSearchSamplesRequest pages through pages in search.
type InSearchSamplesRequest struct {
	PageRequest
}

// InSearchSample is a page currently in search.
type InSearchSample struct {
	URL        string `json:"url"         yaml:"url"`
	LastAccess Time   `json:"last_access" yaml:"last_access"`
	Title      string `json:"title"       yaml:"title"`
}

// InSearchSamplesResponse is the response of GET .../search-urls/in-search/samples.
type InSearchSamplesResponse struct {
	Count   int64            `json:"count"   yaml:"count"`
	Samples []InSearchSample `json:"samples" yaml:"samples"`
}

// SearchEventsHistoryRequest selects the search events history range.
type SearchEventsHistoryRequest struct {
	DateRange
}

// SearchEventsHistoryResponse is the appeared/removed page counts over time.
type SearchEventsHistoryResponse struct {
	Indicators map[SearchEvent][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// SearchEventSamplesRequest pages through search events.
type SearchEventSamplesRequest struct {
	PageRequest
}

// SearchEventSample is a page that appeared in or was removed from search.
type SearchEventSample struct {
	URL               string             `json:"url"                           yaml:"url"`
	Title             string             `json:"title"                         yaml:"title"`
	EventDate         Time               `json:"event_date"                    yaml:"event_date"`
	LastAccess        Time               `json:"last_access"                   yaml:"last_access"`
	Event             SearchEvent        `json:"event"                         yaml:"event"`
	ExcludedURLStatus *ExcludedURLStatus `json:"excluded_url_status,omitempty" yaml:"excluded_url_status,omitempty"`
	BadHTTPStatus     *int               `json:"bad_http_status,omitempty"     yaml:"bad_http_status,omitempty"`
	TargetURL         string             `json:"target_url,omitempty"          yaml:"target_url,omitempty"`
}

// SearchEventSamplesResponse is the response of GET .../search-urls/events/samples.
type SearchEventSamplesResponse struct {
	Count   int64               `json:"count"   yaml:"count"`
	Samples []SearchEventSample `json:"samples" yaml:"samples"`
}

// ImportantURLIndexingStatus is the last crawl result of a monitored page.
type ImportantURLIndexingStatus struct {
	Status     IndexingStatus `json:"status"                yaml:"status"`
	HTTPCode   *int           `json:"http_code,omitempty"   yaml:"http_code,omitempty"`
	AccessDate *Time          `json:"access_date,omitempty" yaml:"access_date,omitempty"`
}

// ImportantURLSearchStatus is the search state of a monitored page.
type ImportantURLSearchStatus struct {
	Title             string             `json:"title,omitempty"               yaml:"title,omitempty"`
	Description       string             `json:"description,omitempty"         yaml:"description,omitempty"`
	LastAccess        *Time              `json:"last_access,omitempty"         yaml:"last_access,omitempty"`
	ExcludedURLStatus *ExcludedURLStatus `json:"excluded_url_status,omitempty" yaml:"excluded_url_status,omitempty"`
	BadHTTPStatus     *int               `json:"bad_http_status,omitempty"     yaml:"bad_http_status,omitempty"`
	Searchable        bool               `json:"searchable"                    yaml:"searchable"`
	TargetURL         string             `json:"target_url,omitempty"          yaml:"target_url,omitempty"`
}

// ImportantURL is a page monitored for changes.
type ImportantURL struct {
	URL              string                        `json:"url"                         yaml:"url"`
	UpdateDate       *Time                         `json:"update_date,omitempty"       yaml:"update_date,omitempty"`
	ChangeIndicators []ImportantURLChangeIndicator `json:"change_indicators,omitempty" yaml:"change_indicators,omitempty"`
	IndexingStatus   *ImportantURLIndexingStatus   `json:"indexing_status,omitempty"   yaml:"indexing_status,omitempty"`
	SearchStatus     *ImportantURLSearchStatus     `json:"search_status,omitempty"     yaml:"search_status,omitempty"`
}

// ImportantURLsResponse is the response of GET .../important-urls.
type ImportantURLsResponse struct {
	URLs []ImportantURL `json:"urls" yaml:"urls"`
}

// ImportantURLHistoryResponse is the change history of one monitored page.
type ImportantURLHistoryResponse struct {
	History []ImportantURL `json:"history" yaml:"history"`
}

// RecrawlRequest asks the robot to recrawl a page.
type RecrawlRequest struct {
	URL string `json:"url" yaml:"url"`
}

// RecrawlResponse is the queued recrawl task.
type RecrawlResponse struct {
	TaskID         string `json:"task_id"                   yaml:"task_id"`
	QuotaRemainder *int64 `json:"quota_remainder,omitempty" yaml:"quota_remainder,omitempty"`
}

// RecrawlTasksRequest pages through recrawl tasks.
type RecrawlTasksRequest struct {
	Offset   *int       `url:"offset,omitempty"    json:"-" yaml:"offset,omitempty"`
	Limit    *int       `url:"limit,omitempty"     json:"-" yaml:"limit,omitempty"`
	DateFrom *time.Time `url:"date_from,omitempty" json:"-" yaml:"date_from,omitempty"`
	DateTo   *time.Time `url:"date_to,omitempty"   json:"-" yaml:"date_to,omitempty"`
}

// RecrawlTask is a recrawl request and its state.
type RecrawlTask struct {
	TaskID    string           `json:"task_id"    yaml:"task_id"`
	URL       string           `json:"url"        yaml:"url"`
	AddedTime Time             `json:"added_time" yaml:"added_time"`
	State     RecrawlTaskState `json:"state"      yaml:"state"`
}

// RecrawlTasksResponse is the response of GET .../recrawl/queue.
type RecrawlTasksResponse struct {
	Tasks []RecrawlTask `json:"tasks" yaml:"tasks"`
}

// RecrawlQuota is the daily recrawl quota of a site.
type RecrawlQuota struct {
	DailyQuota     int64 `json:"daily_quota"     yaml:"daily_quota"`
	QuotaRemainder int64 `json:"quota_remainder" yaml:"quota_remainder"`
}

// BrokenLinksRequest pages through broken internal links.
type BrokenLinksRequest struct {
	Indicator []BrokenLinkIndicator `url:"indicator,omitempty" json:"-" yaml:"indicator,omitempty"`
	Offset    *int                  `url:"offset,omitempty"    json:"-" yaml:"offset,omitempty"`
	Limit     *int                  `url:"limit,omitempty"     json:"-" yaml:"limit,omitempty"`
}

// BrokenLink is an internal link pointing to an unavailable page.
type BrokenLink struct {
	SourceURL            string `json:"source_url"              yaml:"source_url"`
	DestinationURL       string `json:"destination_url"         yaml:"destination_url"`
	DiscoveryDate        Date   `json:"discovery_date"          yaml:"discovery_date"`
	SourceLastAccessDate Date   `json:"source_last_access_date" yaml:"source_last_access_date"`
}

// BrokenLinksResponse is the response of GET .../links/internal/broken/samples.
type BrokenLinksResponse struct {
	Count int64        `json:"count" yaml:"count"`
	Links []BrokenLink `json:"links" yaml:"links"`
}

// BrokenLinksHistoryRequest selects the broken links history range.
type BrokenLinksHistoryRequest struct {
	DateRange
}

// BrokenLinksHistoryResponse is the broken link counts over time.
type BrokenLinksHistoryResponse struct {
	Indicators map[BrokenLinkIndicator][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// ExternalLinksRequest pages through external backlinks.
type ExternalLinksRequest struct {
	PageRequest
}

// ExternalLink is a link from another site.
type ExternalLink struct {
	SourceURL            string `json:"source_url"              yaml:"source_url"`
	DestinationURL       string `json:"destination_url"         yaml:"destination_url"`
	DiscoveryDate        Date   `json:"discovery_date"          yaml:"discovery_date"`
	SourceLastAccessDate Date   `json:"source_last_access_date" yaml:"source_last_access_date"`
}

// ExternalLinksResponse is the response of GET .../links/external/samples.
type ExternalLinksResponse struct {
	Count int64          `json:"count" yaml:"count"`
	Links []ExternalLink `json:"links" yaml:"links"`
}

// ExternalLinksHistoryRequest selects the external link indicator.
type ExternalLinksHistoryRequest struct {
	Indicator ExternalLinkIndicator `url:"indicator" json:"-" yaml:"indicator"`
}

// ExternalLinksHistoryResponse is the backlink counts over time.
type ExternalLinksHistoryResponse struct {
	Indicators map[ExternalLinkIndicator][]HistoryPoint `json:"indicators" yaml:"indicators"`
}

// SiteProblem is the state of a single diagnostics check.
type SiteProblem struct {
	Severity        SiteProblemSeverity `json:"severity"                    yaml:"severity"`
	State           SiteProblemState    `json:"state"                       yaml:"state"`
	LastStateUpdate *Time               `json:"last_state_update,omitempty" yaml:"last_state_update,omitempty"`
}

// DiagnosticsResponse is the site diagnostics keyed by problem type.
type DiagnosticsResponse struct {
	Problems map[string]SiteProblem `json:"problems" yaml:"problems"`
}
