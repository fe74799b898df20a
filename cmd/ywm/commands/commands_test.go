package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, subcmd := range cmd.Commands() {
		names = append(names, subcmd.Name())
	}

	return names
}

func TestNewRootCommand(t *testing.T) {
	viper.Reset()

	cmd := NewRootCommand("1.2.3", "abc123", "2024-05-20")
	assert.Equal(t, "ywm", cmd.Use)
	assert.Equal(t, "Yandex Webmaster API v4 CLI", cmd.Short)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	names := subcommandNames(cmd)
	for _, name := range []string{
		"version", "login", "logout", "config", "user", "hosts", "verification", "stats", "queries",
		"sitemaps", "indexing", "search-urls", "important-urls", "recrawl", "links", "diagnostics", "report",
	} {
		assert.Contains(t, names, name)
	}

	flags := []string{"config", "api", "token", "user-id", "output", "verbose", "log-format", "timeout", "retry-max"}
	for _, flagName := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	output := cmd.PersistentFlags().Lookup("output")
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "table", output.DefValue)
	assert.Equal(t, "0", cmd.PersistentFlags().Lookup("retry-max").DefValue)
}

func TestCommandGroups(t *testing.T) {
	tests := []struct {
		name        string
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{"hosts", NewHostsCommand(), "hosts", []string{"list", "get", "add", "delete"}},
		{"verification", NewVerificationCommand(), "verification", []string{"status", "verify", "owners"}},
		{"stats", NewStatsCommand(), "stats", []string{"summary", "sqi"}},
		{"queries", NewQueriesCommand(), "queries", []string{"popular", "history", "query"}},
		{"sitemaps", NewSitemapsCommand(), "sitemaps", []string{"list", "get", "user-list", "user-get", "add", "delete"}},
		{"indexing", NewIndexingCommand(), "indexing", []string{"history", "samples"}},
		{"search-urls", NewSearchURLsCommand(), "search-urls", []string{"history", "samples", "events-history", "events"}},
		{"important-urls", NewImportantURLsCommand(), "important-urls", []string{"list", "history"}},
		{"recrawl", NewRecrawlCommand(), "recrawl", []string{"add", "list", "get", "quota"}},
		{"links", NewLinksCommand(), "links", []string{"broken", "broken-history", "external", "external-history"}},
		{"config", NewConfigCommand(), "config", []string{"show", "set", "unset", "path"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
			assert.ElementsMatch(t, tt.subcommands, subcommandNames(tt.cmd))

			for _, subcmd := range tt.cmd.Commands() {
				assert.NotNil(t, subcmd.RunE, "%s %s should have RunE", tt.use, subcmd.Name())
				assert.NotEmpty(t, subcmd.Short)
			}
		})
	}
}

func TestHostsGetCommand(t *testing.T) {
	cmd := newHostsGetCommand()
	assert.Equal(t, "get HOST_ID", cmd.Use)
	assert.Equal(t, "Show a site", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
	require.Error(t, cmd.Args(cmd, nil))
	require.NoError(t, cmd.Args(cmd, []string{"https:example.com:443"}))
}

func TestVerificationVerifyCommand(t *testing.T) {
	cmd := newVerificationVerifyCommand()
	assert.Equal(t, "verify HOST_ID", cmd.Use)

	method := cmd.Flags().Lookup("method")
	require.NotNil(t, method)
	assert.Equal(t, "m", method.Shorthand)
	assert.Equal(t, "META_TAG", method.DefValue)
}

func TestQueriesPopularCommand(t *testing.T) {
	cmd := newQueriesPopularCommand()
	assert.Equal(t, "popular HOST_ID", cmd.Use)

	for _, flagName := range []string{"from", "to", "indicator", "device", "offset", "limit", "order-by"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "TOTAL_SHOWS", cmd.Flags().Lookup("order-by").DefValue)
	assert.Equal(t, "i", cmd.Flags().Lookup("indicator").Shorthand)
}

func TestQueriesQueryCommand(t *testing.T) {
	cmd := newQueriesQueryCommand()
	assert.Equal(t, "query HOST_ID QUERY_ID", cmd.Use)
	require.Error(t, cmd.Args(cmd, []string{"https:example.com:443"}))
	require.NoError(t, cmd.Args(cmd, []string{"https:example.com:443", "0001"}))
}

func TestSitemapsListCommand(t *testing.T) {
	cmd := newSitemapsListCommand()
	assert.Equal(t, "list HOST_ID", cmd.Use)

	for _, flagName := range []string{"parent", "from", "limit"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestLinksExternalHistoryCommand(t *testing.T) {
	cmd := newLinksExternalHistoryCommand()
	assert.Equal(t, "external-history HOST_ID", cmd.Use)
	assert.Equal(t, "LINKS_TOTAL_COUNT", cmd.Flags().Lookup("indicator").DefValue)
}

func TestDiagnosticsCommand(t *testing.T) {
	cmd := NewDiagnosticsCommand()
	assert.Equal(t, "diagnostics HOST_ID", cmd.Use)
	assert.Equal(t, []string{"diag"}, cmd.Aliases)
	assert.Equal(t, "false", cmd.Flags().Lookup("all").DefValue)
}

func TestReportCommand(t *testing.T) {
	cmd := NewReportCommand()
	assert.Equal(t, "report HOST_ID", cmd.Use)
	assert.Equal(t, "10", cmd.Flags().Lookup("queries").DefValue)
}

func TestLoginCommand(t *testing.T) {
	cmd := NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("token"))

	logout := NewLogoutCommand()
	assert.Equal(t, "logout", logout.Use)
	assert.NotNil(t, logout.RunE)
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.0.0", "abc", "today")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Display version information", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestFindSubcommand(t *testing.T) {
	viper.Reset()

	root := NewRootCommand("dev", "none", "unknown")
	recrawl := findSubcommand(root, "recrawl")
	require.NotNil(t, recrawl)
	assert.NotNil(t, findSubcommand(recrawl, "quota"))
	assert.Nil(t, findSubcommand(recrawl, "missing"))
}
