package blogapi

import (
	"context"
	"time"
)

// Client provides access to the blog admin API resources.
type Client interface {
	Posts() PostsClient
	Categories() CategoriesClient
	Images() ImagesClient
}

// PostsClient provides access to post operations. List and Get return the
// server envelope; the remaining operations return bare bodies.
type PostsClient interface {
	List(ctx context.Context, params *QueryParams) (*PostList, error)
	ListByCategory(ctx context.Context, categoryID string, params *QueryParams) ([]Post, error)
	Get(ctx context.Context, id string) (*PostDetail, error)
	Create(ctx context.Context, request *PostCreateRequest) (*Post, error)
	Update(ctx context.Context, id string, request *PostUpdateRequest) (*Post, error)
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (*Post, error)
}

// CategoriesClient provides access to category operations.
type CategoriesClient interface {
	List(ctx context.Context, params *QueryParams) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, request *CategoryCreateRequest) (*Category, error)
	Update(ctx context.Context, id string, request *CategoryUpdateRequest) (*Category, error)
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (*Category, error)
}

// ImagesClient provides access to the image library.
type ImagesClient interface {
	List(ctx context.Context) ([]Image, error)
	Upload(ctx context.Context, files []UploadFile, progress ProgressFunc) ([]FileMeta, error)
}

// Config represents the client configuration.
type Config struct {
	// APIEndpoint is the base URL of the blog admin API (required).
	APIEndpoint string

	// HTTPTimeout overrides the default per-request timeout.
	HTTPTimeout time.Duration

	// RetryMax is the number of retries for failed requests. The default is
	// zero: requests are not retried unless a caller opts in.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables request/response logging.
	Debug bool

	// Logger receives structured log output. Nil disables logging.
	Logger Logger

	// Notifier receives user-facing success/error notifications. Nil
	// defaults to NopNotifier.
	Notifier Notifier
}

// Logger is the interface for structured logging within the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
