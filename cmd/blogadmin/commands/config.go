package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	API        string `json:"api,omitempty"         yaml:"api,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
	Debug      bool   `json:"debug,omitempty"       yaml:"debug,omitempty"`
	LoggedIn   bool   `json:"logged_in"             yaml:"logged_in"`
	LastLogin  string `json:"last_login,omitempty"  yaml:"last_login,omitempty"`
	Username   string `json:"username,omitempty"    yaml:"username,omitempty"`
	CacheType  string `json:"cache_type,omitempty"  yaml:"cache_type,omitempty"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	NATSBucket string `json:"nats_bucket,omitempty" yaml:"nats_bucket,omitempty"`
}

var errUnknownConfigKey = errors.New("unknown configuration key")

// loadConfig reads the persisted configuration through viper.
func loadConfig() *Config {
	return &Config{
		API:        viper.GetString("api"),
		Output:     viper.GetString("output"),
		Debug:      viper.GetBool("debug"),
		LoggedIn:   viper.GetBool("logged_in"),
		LastLogin:  viper.GetString("last_login"),
		Username:   viper.GetString("username"),
		CacheType:  viper.GetString("cache_type"),
		NATSURL:    viper.GetString("nats_url"),
		NATSBucket: viper.GetString("nats_bucket"),
	}
}

// saveConfigStruct writes the configuration to the config file.
func saveConfigStruct(config *Config) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".blogadmin")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		path = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and modify the persisted blogadmin configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(os.Stdout).Encode(config)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("API", valueOr(config.API, constants.NotAvailable))
				_ = table.Append("Output", valueOr(config.Output, "table"))
				_ = table.Append("Debug", fmt.Sprintf("%t", config.Debug))
				_ = table.Append("Logged In", fmt.Sprintf("%t", config.LoggedIn))
				_ = table.Append("Last Login", valueOr(config.LastLogin, constants.NotAvailable))
				_ = table.Append("Username", valueOr(config.Username, constants.NotAvailable))
				_ = table.Append("Cache Type", valueOr(config.CacheType, "memory"))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := applyConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := applyConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

func applyConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "output":
		config.Output = value
	case "debug":
		config.Debug = value == "true"
	case "cache_type":
		config.CacheType = value
	case "nats_url":
		config.NATSURL = value
	case "nats_bucket":
		config.NATSBucket = value
	default:
		return fmt.Errorf("%w: %s", errUnknownConfigKey, key)
	}

	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
