package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/netdepviet/blogadmin/internal/constants"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
	"github.com/netdepviet/blogadmin/pkg/blogclient"
)

// stderrLogger writes structured log lines to stderr. Used when --verbose is
// set.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

// effectiveAPI resolves the API endpoint from the flag, environment or
// persisted config.
func effectiveAPI(apiOverride string) (string, error) {
	if apiOverride != "" {
		return apiOverride, nil
	}

	if api := viper.GetString("api"); api != "" {
		return api, nil
	}

	return "", blogapi.ErrAPIEndpointRequired
}

// newAPIConfig builds the client configuration from global settings.
func newAPIConfig(apiOverride string) (*blogapi.Config, error) {
	api, err := effectiveAPI(apiOverride)
	if err != nil {
		return nil, err
	}

	config := &blogapi.Config{
		APIEndpoint: api,
		Debug:       viper.GetBool("verbose") || viper.GetBool("debug"),
	}

	if config.Debug {
		config.Logger = stderrLogger{}
	}

	if viper.GetBool("no-color") {
		config.Notifier = blogapi.NopNotifier{}
	} else {
		config.Notifier = blogapi.NewTerminalNotifier(os.Stderr)
	}

	return config, nil
}

// CreateClientWithAPI creates an API client honoring the global flags.
func CreateClientWithAPI(apiOverride string) (blogapi.Client, error) {
	config, err := newAPIConfig(apiOverride)
	if err != nil {
		return nil, err
	}

	apiClient, err := blogclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return apiClient, nil
}

// CreateStoreWithAPI creates a caching store honoring the global flags and
// the configured cache backend.
func CreateStoreWithAPI(apiOverride string) (*blogapi.Store, error) {
	config, err := newAPIConfig(apiOverride)
	if err != nil {
		return nil, err
	}

	store, err := blogclient.NewStore(config, cacheConfigFromSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// cacheConfigFromSettings maps persisted cache settings to a cache config.
func cacheConfigFromSettings() *blogapi.CacheConfig {
	switch blogapi.CacheType(viper.GetString("cache_type")) {
	case blogapi.CacheTypeNATS:
		return &blogapi.CacheConfig{
			Type: blogapi.CacheTypeNATS,
			NATS: &blogapi.NATSKVConfig{
				URL:    viper.GetString("nats_url"),
				Bucket: valueOr(viper.GetString("nats_bucket"), "blogadmin-cache"),
				TTL:    constants.DefaultCacheTTL,
			},
		}
	case blogapi.CacheTypeNone:
		return &blogapi.CacheConfig{Type: blogapi.CacheTypeNone}
	default:
		return blogapi.DefaultCacheConfig()
	}
}

// requireLogin fails commands that mutate server state when the operator has
// not logged in.
func requireLogin() error {
	if !viper.GetBool("logged_in") {
		return fmt.Errorf("%w. Use 'blogadmin login' first", blogapi.ErrNotLoggedIn)
	}

	return nil
}

// renderStructured writes data as JSON or YAML when the output flag asks for
// it. It reports whether it handled the output.
func renderStructured(data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return true, fmt.Errorf("encoding to JSON: %w", err)
		}

		return true, nil
	case constants.FormatYAML:
		err := yaml.NewEncoder(os.Stdout).Encode(data)
		if err != nil {
			return true, fmt.Errorf("encoding to YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

// publishedLabel renders a published flag for table output.
func publishedLabel(published bool) string {
	if published {
		return "published"
	}

	return "draft"
}
