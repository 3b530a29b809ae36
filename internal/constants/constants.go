package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for longer operations such as uploads.
	ExtendedHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The pipeline itself never retries; these only apply when a
// caller opts in via the retry option.
const (
	// DefaultRetryMax is the maximum number of retries when retries are
	// explicitly enabled.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache sizing and lifetimes.
const (
	// DefaultCacheSize is the default maximum number of cached entries.
	DefaultCacheSize = 1000

	// DefaultCacheTTL bounds how long a cached read mirrors server state.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheCleanupInterval is how often expired entries are swept.
	DefaultCacheCleanupInterval = 1 * time.Minute

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// Search behavior.
const (
	// DefaultDebounceWindow is the quiescence window before a search
	// recompute fires.
	DefaultDebounceWindow = 1 * time.Second
)

// Concurrency limits.
const (
	// DefaultBatchConcurrency limits concurrent requests in batch operations.
	DefaultBatchConcurrency = 3
)

// Upload behavior.
const (
	// UploadFieldName is the multipart form field the server expects.
	UploadFieldName = "file"

	// PercentageMultiplier converts a fraction to a 0-100 progress value.
	PercentageMultiplier = 100
)

// Output format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for tabular output format.
	FormatTable = "table"
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest represents a client error. It is also the status
	// assigned to failures that cannot be parsed into a structured shape.
	HTTPStatusBadRequest = 400

	// HTTPStatusUnprocessable represents a validation failure.
	HTTPStatusUnprocessable = 422

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)

// Command argument counts.
const (
	// MinimumArgumentCount is the minimum number of command line arguments
	// for key/value commands.
	MinimumArgumentCount = 2
)

// Display constants.
const (
	// TimeDisplayFormat is the timestamp layout used in table output.
	TimeDisplayFormat = "2006-01-02 15:04:05"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
