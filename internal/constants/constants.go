package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint and headers.
const (
	// DefaultBaseURL is the root of the Webmaster API v4.
	DefaultBaseURL = "https://api.webmaster.yandex.net/v4"

	// DefaultUserAgent is sent when no other User-Agent is configured.
	DefaultUserAgent = "webmaster-client-go/1.0"

	// ContentTypeJSON is used for Accept and Content-Type headers.
	ContentTypeJSON = "application/json"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are disabled unless RetryMax is raised.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent calls made by the report command.
	DefaultConcurrencyLimit = 4
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of samples per page.
	DefaultPageSize = 100

	// MaxPageSize is the largest limit accepted by sample endpoints.
	MaxPageSize = 100

	// MaxPopularQueriesLimit is the largest limit accepted by popular queries.
	MaxPopularQueriesLimit = 500

	// ReportSampleLimit limits sample rows shown in reports.
	ReportSampleLimit = 10
)

// Validation and limits.
const (
	// MinimumArgumentCount is the argument count of "config set".
	MinimumArgumentCount = 2

	// TokenVisiblePrefix is the number of token characters shown when masked.
	TokenVisiblePrefix = 4
)

// UI and display constants.
const (
	// CheckMarkSymbol marks verified hosts.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for tabular output.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatMarkdown for markdown output format.
	FormatMarkdown = "markdown"
)

// Logging constants.
const (
	// LogFormatConsole writes human readable log lines.
	LogFormatConsole = "console"

	// LogFormatJSON writes one JSON object per log line.
	LogFormatJSON = "json"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "warn"
)
