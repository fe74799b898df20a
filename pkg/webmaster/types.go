package webmaster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// DateLayout is the layout of calendar dates in requests and responses.
const DateLayout = "2006-01-02"

// timeLayouts are tried in order when decoding timestamps.
// The API mixes RFC 3339 with ISO 8601 offsets without a colon and comma fractions.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05,000-0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	DateLayout,
}

// Time is a timestamp returned by the API.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// ParseTime parses any timestamp format the API is known to emit.
func ParseTime(value string) (Time, error) {
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return Time{Time: parsed}, nil
		}
	}

	return Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Time{}

		return nil
	}

	var value string

	err := json.Unmarshal(data, &value)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(data))
	}

	if value == "" {
		*t = Time{}

		return nil
	}

	parsed, err := ParseTime(value)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.Format(time.RFC3339Nano))
}

// MarshalYAML implements yaml.Marshaler.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.Format(time.RFC3339), nil
}

// Date is a calendar date used by search query statistics.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	year, month, day := t.Date()

	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	return Date{Time: parsed}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// EncodeValues implements query.Encoder.
func (d Date) EncodeValues(key string, values *url.Values) error {
	values.Set(key, d.String())

	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Full timestamps are truncated to their date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value Time

	err := value.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	if value.IsZero() {
		*d = Date{}

		return nil
	}

	*d = NewDate(value.Time)

	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}

	return d.String(), nil
}

// HistoryPoint is a single dated value of a time series.
type HistoryPoint struct {
	Date  Time    `json:"date"  yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// HostDataStatus describes whether a host's data is available.
type HostDataStatus string

// Host data statuses.
const (
	HostDataStatusNotIndexed HostDataStatus = "NOT_INDEXED"
	HostDataStatusNotLoaded  HostDataStatus = "NOT_LOADED"
	HostDataStatusOK         HostDataStatus = "OK"
)

// VerificationState is the state of a host ownership check.
type VerificationState string

// Verification states.
const (
	VerificationStateNone               VerificationState = "NONE"
	VerificationStateVerified           VerificationState = "VERIFIED"
	VerificationStateInProgress         VerificationState = "IN_PROGRESS"
	VerificationStateVerificationFailed VerificationState = "VERIFICATION_FAILED"
	VerificationStateInternalError      VerificationState = "INTERNAL_ERROR"
)

// VerificationType is a method of proving host ownership.
type VerificationType string

// Verification types.
const (
	VerificationTypeAuto      VerificationType = "AUTO"
	VerificationTypeDelegated VerificationType = "DELEGATED"
	VerificationTypePDD       VerificationType = "PDD"
	VerificationTypeTXTFile   VerificationType = "TXT_FILE"
	VerificationTypeDNS       VerificationType = "DNS"
	VerificationTypeMetaTag   VerificationType = "META_TAG"
	VerificationTypeHTMLFile  VerificationType = "HTML_FILE"
	VerificationTypeWhois     VerificationType = "WHOIS"
)

// ExplicitVerificationType is a verification type a user can request.
type ExplicitVerificationType string

// Explicit verification types.
const (
	ExplicitVerificationTypeDNS      ExplicitVerificationType = "DNS"
	ExplicitVerificationTypeMetaTag  ExplicitVerificationType = "META_TAG"
	ExplicitVerificationTypeHTMLFile ExplicitVerificationType = "HTML_FILE"
)

// Valid reports whether v can be passed to a verify request.
func (v ExplicitVerificationType) Valid() bool {
	switch v {
	case ExplicitVerificationTypeDNS, ExplicitVerificationTypeMetaTag, ExplicitVerificationTypeHTMLFile:
		return true
	default:
		return false
	}
}

// VerificationFailReason explains a failed verification.
type VerificationFailReason string

// Verification failure reasons.
const (
	VerificationFailReasonDelegationCancelled      VerificationFailReason = "DELEGATION_CANCELLED"
	VerificationFailReasonDNSRecordNotFound        VerificationFailReason = "DNS_RECORD_NOT_FOUND"
	VerificationFailReasonMetaTagNotFound          VerificationFailReason = "META_TAG_NOT_FOUND"
	VerificationFailReasonWrongHTMLPageContent     VerificationFailReason = "WRONG_HTML_PAGE_CONTENT"
	VerificationFailReasonPDDVerificationCancelled VerificationFailReason = "PDD_VERIFICATION_CANCELLED"
)

// QueryOrderField orders popular search queries.
type QueryOrderField string

// Query order fields.
const (
	QueryOrderFieldTotalShows  QueryOrderField = "TOTAL_SHOWS"
	QueryOrderFieldTotalClicks QueryOrderField = "TOTAL_CLICKS"
)

// QueryIndicator is a search query statistic.
type QueryIndicator string

// Query indicators.
const (
	QueryIndicatorTotalShows       QueryIndicator = "TOTAL_SHOWS"
	QueryIndicatorTotalClicks      QueryIndicator = "TOTAL_CLICKS"
	QueryIndicatorAvgShowPosition  QueryIndicator = "AVG_SHOW_POSITION"
	QueryIndicatorAvgClickPosition QueryIndicator = "AVG_CLICK_POSITION"
)

// DeviceType filters statistics by device.
type DeviceType string

// Device types.
const (
	DeviceTypeAll             DeviceType = "ALL"
	DeviceTypeDesktop         DeviceType = "DESKTOP"
	DeviceTypeMobileAndTablet DeviceType = "MOBILE_AND_TABLET"
	DeviceTypeMobile          DeviceType = "MOBILE"
	DeviceTypeTablet          DeviceType = "TABLET"
)

// IndexingStatus groups crawled pages by HTTP response class.
type IndexingStatus string

// Indexing statuses.
const (
	IndexingStatusHTTP2xx IndexingStatus = "HTTP_2XX"
	IndexingStatusHTTP3xx IndexingStatus = "HTTP_3XX"
	IndexingStatusHTTP4xx IndexingStatus = "HTTP_4XX"
	IndexingStatusHTTP5xx IndexingStatus = "HTTP_5XX"
	IndexingStatusOther   IndexingStatus = "OTHER"
)

// SearchEvent is a page appearing in or leaving the search index.
type SearchEvent string

// Search events.
const (
	SearchEventAppearedInSearch  SearchEvent = "APPEARED_IN_SEARCH"
	SearchEventRemovedFromSearch SearchEvent = "REMOVED_FROM_SEARCH"
)

// ExcludedURLStatus explains why a page is not in search.
type ExcludedURLStatus string

// Excluded URL statuses.
const (
	ExcludedURLStatusNothingFound           ExcludedURLStatus = "NOTHING_FOUND"
	ExcludedURLStatusHostError              ExcludedURLStatus = "HOST_ERROR"
	ExcludedURLStatusRedirectNotSearchable  ExcludedURLStatus = "REDIRECT_NOTSEARCHABLE"
	ExcludedURLStatusHTTPError              ExcludedURLStatus = "HTTP_ERROR"
	ExcludedURLStatusNotCanonical           ExcludedURLStatus = "NOT_CANONICAL"
	ExcludedURLStatusNotMainMirror          ExcludedURLStatus = "NOT_MAIN_MIRROR"
	ExcludedURLStatusParserError            ExcludedURLStatus = "PARSER_ERROR"
	ExcludedURLStatusRobotsHostError        ExcludedURLStatus = "ROBOTS_HOST_ERROR"
	ExcludedURLStatusRobotsURLError         ExcludedURLStatus = "ROBOTS_URL_ERROR"
	ExcludedURLStatusDuplicate              ExcludedURLStatus = "DUPLICATE"
	ExcludedURLStatusLowQuality             ExcludedURLStatus = "LOW_QUALITY"
	ExcludedURLStatusCleanParams            ExcludedURLStatus = "CLEAN_PARAMS"
	ExcludedURLStatusNoIndex                ExcludedURLStatus = "NO_INDEX"
	ExcludedURLStatusForbiddenByRobotsTxt   ExcludedURLStatus = "FORBIDDEN_BY_ROBOTS_TXT"
	ExcludedURLStatusURLNotAllowed          ExcludedURLStatus = "URL_NOT_ALLOWED"
	ExcludedURLStatusContainsNoindexMetaTag ExcludedURLStatus = "CONTAINS_NOINDEX_META_TAG"
	ExcludedURLStatusOther                  ExcludedURLStatus = "OTHER"
)

// RecrawlTaskState is the processing state of a recrawl request.
type RecrawlTaskState string

// Recrawl task states.
const (
	RecrawlTaskStateInProgress RecrawlTaskState = "IN_PROGRESS"
	RecrawlTaskStateDone       RecrawlTaskState = "DONE"
	RecrawlTaskStateFailed     RecrawlTaskState = "FAILED"
)

// SiteProblemSeverity ranks diagnostics problems.
type SiteProblemSeverity string

// Site problem severities.
const (
	SiteProblemSeverityFatal           SiteProblemSeverity = "FATAL"
	SiteProblemSeverityCritical        SiteProblemSeverity = "CRITICAL"
	SiteProblemSeverityPossibleProblem SiteProblemSeverity = "POSSIBLE_PROBLEM"
	SiteProblemSeverityRecommendation  SiteProblemSeverity = "RECOMMENDATION"
)

// SiteProblemState tells whether a diagnostics problem currently applies.
type SiteProblemState string

// Site problem states.
const (
	SiteProblemStatePresent   SiteProblemState = "PRESENT"
	SiteProblemStateAbsent    SiteProblemState = "ABSENT"
	SiteProblemStateUndefined SiteProblemState = "UNDEFINED"
)

// BrokenLinkIndicator classifies broken internal links.
type BrokenLinkIndicator string

// Broken link indicators.
const (
	BrokenLinkIndicatorSiteError          BrokenLinkIndicator = "SITE_ERROR"
	BrokenLinkIndicatorDisallowedByUser   BrokenLinkIndicator = "DISALLOWED_BY_USER"
	BrokenLinkIndicatorUnsupportedByRobot BrokenLinkIndicator = "UNSUPPORTED_BY_ROBOT"
)

// ExternalLinkIndicator is an external link statistic.
type ExternalLinkIndicator string

// External link indicators.
const (
	ExternalLinkIndicatorLinksTotalCount ExternalLinkIndicator = "LINKS_TOTAL_COUNT"
)

// SitemapType distinguishes plain sitemaps from sitemap indexes.
type SitemapType string

// Sitemap types.
const (
	SitemapTypeSitemap      SitemapType = "SITEMAP"
	SitemapTypeIndexSitemap SitemapType = "INDEX_SITEMAP"
)

// SitemapSource tells where the robot learned about a sitemap.
type SitemapSource string

// Sitemap sources.
const (
	SitemapSourceRobotsTxt    SitemapSource = "ROBOTS_TXT"
	SitemapSourceWebmaster    SitemapSource = "WEBMASTER"
	SitemapSourceIndexSitemap SitemapSource = "INDEX_SITEMAP"
)

// ImportantURLChangeIndicator names what changed on a monitored page.
type ImportantURLChangeIndicator string

// Important URL change indicators.
const (
	ImportantURLChangeIndexingHTTPCode ImportantURLChangeIndicator = "INDEXING_HTTP_CODE"
	ImportantURLChangeSearchStatus     ImportantURLChangeIndicator = "SEARCH_STATUS"
	ImportantURLChangeTitle            ImportantURLChangeIndicator = "TITLE"
	ImportantURLChangeDescription      ImportantURLChangeIndicator = "DESCRIPTION"
)
