package blogclient

import (
	"strings"

	"github.com/netdepviet/blogadmin/internal/client"
	internalhttp "github.com/netdepviet/blogadmin/internal/http"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// New creates a new blog admin API client from configuration. The endpoint
// is normalized: a trailing slash is dropped and a bare host gets https.
func New(config *blogapi.Config) (blogapi.Client, error) {
	if config == nil {
		return nil, blogapi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, blogapi.ErrAPIEndpointRequired
	}

	httpClient := internalhttp.NewClient(normalizeEndpoint(config.APIEndpoint), pipelineOptions(config)...)

	return client.New(httpClient), nil
}

// NewStore creates a client together with a Store layering caching,
// request coalescing and mutation-driven invalidation over it.
func NewStore(config *blogapi.Config, cacheConfig *blogapi.CacheConfig, opts ...blogapi.StoreOption) (*blogapi.Store, error) {
	apiClient, err := New(config)
	if err != nil {
		return nil, err
	}

	cache, err := blogapi.NewCacheFromConfig(cacheConfig)
	if err != nil {
		return nil, err
	}

	manager := blogapi.NewCacheManager(cache, config.Logger)

	if config.Notifier != nil {
		opts = append([]blogapi.StoreOption{blogapi.WithStoreNotifier(config.Notifier)}, opts...)
	}

	return blogapi.NewStore(apiClient, manager, opts...), nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

func pipelineOptions(config *blogapi.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.Notifier != nil {
		opts = append(opts, internalhttp.WithNotifier(config.Notifier))
	}

	return opts
}
