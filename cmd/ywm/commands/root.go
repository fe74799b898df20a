package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/fivetwenty-io/webmaster-client/pkg/wmclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the ywm command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ywm",
		Short: "Yandex Webmaster API v4 CLI",
		Long: `A command-line interface for the Yandex Webmaster API v4.

It covers site management, ownership verification, search statistics,
sitemaps, indexing, recrawl requests, links and diagnostics.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/ywm/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL (default "+webmaster.DefaultBaseURL+")")
	flags.StringP("token", "t", "", "OAuth token")
	flags.Int64("user-id", 0, "user ID, skips the GET /user lookup")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml, markdown)")
	flags.BoolP("verbose", "v", false, "verbose output, logs every request")
	flags.String("log-format", constants.LogFormatConsole, "log format (console, json)")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "HTTP request timeout")
	flags.Int("retry-max", constants.DefaultRetryMax, "retries for connection errors, 429 and 5xx responses")

	for key, flag := range map[string]string{
		"config":     "config",
		"api":        "api",
		"token":      "token",
		"user_id":    "user-id",
		"output":     "output",
		"verbose":    "verbose",
		"log_format": "log-format",
		"timeout":    "timeout",
		"retry_max":  "retry-max",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewHostsCommand())
	rootCmd.AddCommand(NewVerificationCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewQueriesCommand())
	rootCmd.AddCommand(NewSitemapsCommand())
	rootCmd.AddCommand(NewIndexingCommand())
	rootCmd.AddCommand(NewSearchURLsCommand())
	rootCmd.AddCommand(NewImportantURLsCommand())
	rootCmd.AddCommand(NewRecrawlCommand())
	rootCmd.AddCommand(NewLinksCommand())
	rootCmd.AddCommand(NewDiagnosticsCommand())
	rootCmd.AddCommand(NewReportCommand())

	return rootCmd
}

// initConfig reads the config file and YWM_ environment variables into viper.
func initConfig() error {
	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(webmaster.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// newClient builds an API client from the effective configuration.
func newClient(cmd *cobra.Command) (webmaster.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, constants.ErrNotAuthenticated
	}

	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	config := &webmaster.Config{
		Token:       token,
		AuthScheme:  viper.GetString("auth_scheme"),
		BaseURL:     viper.GetString("api"),
		UserID:      viper.GetInt64("user_id"),
		HTTPTimeout: viper.GetDuration("timeout"),
		RetryMax:    viper.GetInt("retry_max"),
		Debug:       viper.GetBool("verbose"),
		Logger:      webmaster.NewZerologLogger(logger),
		UserAgent:   userAgent(cmd),
	}

	client, err := wmclient.New(cmd.Context(), config)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func userAgent(cmd *cobra.Command) string {
	version := cmd.Root().Version
	if version == "" {
		version = "dev"
	}

	return "ywm/" + version
}
