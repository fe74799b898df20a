package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory under XDG_CONFIG_HOME.
const AppName = "ywm"

// Config represents the CLI configuration file.
type Config struct {
	API        string `json:"api,omitempty"         yaml:"api,omitempty"`
	Token      string `json:"token,omitempty"       yaml:"token,omitempty"`
	AuthScheme string `json:"auth_scheme,omitempty" yaml:"auth_scheme,omitempty"`
	UserID     int64  `json:"user_id,omitempty"     yaml:"user_id,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
	LogLevel   string `json:"log_level,omitempty"   yaml:"log_level,omitempty"`
	LogFormat  string `json:"log_format,omitempty"  yaml:"log_format,omitempty"`
	Timeout    string `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
	RetryMax   *int   `json:"retry_max,omitempty"   yaml:"retry_max,omitempty"`
}

// configSetters validate and apply "config set" values by key.
var configSetters = map[string]func(*Config, string) error{
	"api": func(c *Config, v string) error {
		c.API = strings.TrimRight(v, "/")

		return nil
	},
	"token": func(c *Config, v string) error {
		if v == "" {
			return constants.ErrEmptyToken
		}

		c.Token = v

		return nil
	},
	"auth_scheme": func(c *Config, v string) error {
		c.AuthScheme = v

		return nil
	},
	"user_id": func(c *Config, v string) error {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user_id %q: %w", v, err)
		}

		c.UserID = id

		return nil
	},
	"output": func(c *Config, v string) error {
		if !slices.Contains(outputFormats, v) {
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, v)
		}

		c.Output = v

		return nil
	},
	"log_level": func(c *Config, v string) error {
		c.LogLevel = strings.ToLower(v)

		return nil
	},
	"log_format": func(c *Config, v string) error {
		if v != constants.LogFormatConsole && v != constants.LogFormatJSON {
			return fmt.Errorf("%w: %s", constants.ErrInvalidLogFormat, v)
		}

		c.LogFormat = v

		return nil
	},
	"timeout": func(c *Config, v string) error {
		_, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", v, err)
		}

		c.Timeout = v

		return nil
	},
	"retry_max": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid retry_max %q: %w", v, constants.ErrInvalidLimit)
		}

		c.RetryMax = &n

		return nil
	},
}

var outputFormats = []string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML, constants.FormatMarkdown}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the ywm configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file contents with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.Token = maskToken(config.Token)

			return render(cmd, config, func() *tableData {
				data := propertyTable()
				data.add("API", formatConfigValue(config.API))
				data.add("Token", formatConfigValue(config.Token))
				data.add("Auth Scheme", formatConfigValue(config.AuthScheme))
				data.add("User ID", formatConfigValue(formatUserID(config.UserID)))
				data.add("Output", formatConfigValue(config.Output))
				data.add("Log Level", formatConfigValue(config.LogLevel))
				data.add("Log Format", formatConfigValue(config.LogFormat))
				data.add("Timeout", formatConfigValue(config.Timeout))

				retryMax := ""
				if config.RetryMax != nil {
					retryMax = strconv.Itoa(*config.RetryMax)
				}

				data.add("Retry Max", formatConfigValue(retryMax))

				return data
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setter(config, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			if key == "token" {
				value = maskToken(value)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value so its default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configSetters[key]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			unsetConfigValue(config, key)

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Long:  "Print the path of the configuration file read and written by ywm",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), configFile())

			return err
		},
	}
}

func unsetConfigValue(config *Config, key string) {
	switch key {
	case "api":
		config.API = ""
	case "token":
		config.Token = ""
	case "auth_scheme":
		config.AuthScheme = ""
	case "user_id":
		config.UserID = 0
	case "output":
		config.Output = ""
	case "log_level":
		config.LogLevel = ""
	case "log_format":
		config.LogFormat = ""
	case "timeout":
		config.Timeout = ""
	case "retry_max":
		config.RetryMax = nil
	}
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for key := range configSetters {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

func configDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// configFile returns the file in use, or the default location when none was read.
func configFile() string {
	if file := viper.ConfigFileUsed(); file != "" {
		return file
	}

	return filepath.Join(configDir(), "config.yml")
}

// loadConfig reads the configuration file. A missing file yields an empty Config.
func loadConfig() (*Config, error) {
	path := filepath.Clean(configFile())

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &config, nil
}

// saveConfig writes config with owner-only permissions.
func saveConfig(config *Config) error {
	path := filepath.Clean(configFile())

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) <= constants.TokenVisiblePrefix {
		return constants.MaskedSecret
	}

	return token[:constants.TokenVisiblePrefix] + constants.MaskedSecret
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatUserID(id int64) string {
	if id == 0 {
		return ""
	}

	return strconv.FormatInt(id, 10)
}
