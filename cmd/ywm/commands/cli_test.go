package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/internal/twin"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var cliNow = time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

// cliEnv runs the CLI against an in-memory API with a private config file.
type cliEnv struct {
	twin       *twin.Twin
	api        string
	configFile string
	hostID     string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	for _, key := range []string{"TOKEN", "API", "USER_ID", "OUTPUT", "LOG_LEVEL", "LOG_FORMAT", "TIMEOUT", "RETRY_MAX", "AUTH_SCHEME"} {
		t.Setenv(webmaster.EnvPrefix+"_"+key, "")
		require.NoError(t, os.Unsetenv(webmaster.EnvPrefix+"_"+key))
	}

	fake, server := twin.NewServer(twin.WithClock(func() time.Time { return cliNow }))
	t.Cleanup(server.Close)

	return &cliEnv{
		twin:       fake,
		api:        server.URL + "/v4",
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		hostID:     fake.AddHost("https://example.com", true),
	}
}

// run executes ywm with the environment's API, token and config file.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return e.runRaw(t, append([]string{"--api", e.api, "--token", e.twin.Token()}, args...)...)
}

// runRaw executes ywm with only the config file preset.
func (e *cliEnv) runRaw(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand("1.2.3", "abc123", "2024-05-20")

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", e.configFile}, args...))

	err := root.Execute()

	return stdout.String(), err
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()

	var v T

	require.NoError(t, json.Unmarshal([]byte(out), &v), out)

	return v
}

func TestCLI_Version(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.runRaw(t, "version", "-o", "json")
	require.NoError(t, err)

	info := decodeJSON[map[string]string](t, out)
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc123", "built": "2024-05-20"}, info)

	out, err = env.runRaw(t, "version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.2.3")
}

func TestCLI_NotAuthenticated(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.runRaw(t, "--api", env.api, "hosts", "list")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)
	assert.Empty(t, env.twin.Requests())
}

func TestCLI_User(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "user", "-o", "json")
	require.NoError(t, err)

	user := decodeJSON[webmaster.User](t, out)
	assert.Equal(t, env.twin.UserID(), user.UserID)

	for _, request := range env.twin.Requests() {
		assert.Equal(t, "OAuth "+env.twin.Token(), request.Authorization)
	}
}

func TestCLI_UserIDSkipsLookup(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "--user-id", strconv.FormatInt(env.twin.UserID(), 10), "hosts", "list", "-o", "json")
	require.NoError(t, err)

	requests := env.twin.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/v4/user/"+strconv.FormatInt(env.twin.UserID(), 10)+"/hosts", requests[0].Path)
}

func TestCLI_Hosts(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "hosts", "list", "-o", "json")
	require.NoError(t, err)

	hosts := decodeJSON[[]webmaster.HostInfo](t, out)
	require.Len(t, hosts, 1)
	assert.Equal(t, env.hostID, hosts[0].HostID)

	out, err = env.run(t, "hosts", "add", "https://shop.example.org", "-o", "json")
	require.NoError(t, err)

	added := decodeJSON[webmaster.AddHostResponse](t, out)
	assert.Equal(t, "https:shop.example.org:443", added.HostID)

	_, err = env.run(t, "hosts", "add", "https://shop.example.org")
	require.Error(t, err)
	assert.True(t, webmaster.HasErrorCode(err, webmaster.ErrorCodeHostAlreadyAdded))
	assert.Contains(t, err.Error(), "failed to add host")

	out, err = env.run(t, "hosts", "get", added.HostID)
	require.NoError(t, err)
	assert.Contains(t, out, "shop.example.org")
	assert.Contains(t, out, "Not Loaded")

	out, err = env.run(t, "hosts", "delete", added.HostID)
	require.NoError(t, err)
	assert.Equal(t, "Host https:shop.example.org:443 deleted\n", out)

	_, err = env.run(t, "hosts", "get", added.HostID)
	require.Error(t, err)
	assert.True(t, webmaster.IsNotFound(err))
}

func TestCLI_HostsListEmpty(t *testing.T) {
	env := newCLIEnv(t)
	env.twin.Reset()

	out, err := env.run(t, "hosts", "list")
	require.NoError(t, err)
	assert.Equal(t, "No hosts found\n", out)
}

func TestCLI_Verification(t *testing.T) {
	env := newCLIEnv(t)
	hostID := env.twin.AddHost("https://pending.example", false)

	_, err := env.run(t, "verification", "verify", hostID, "--method", "whois")
	require.ErrorIs(t, err, constants.ErrInvalidVerificationType)

	out, err := env.run(t, "verification", "verify", hostID, "--method", "dns", "-o", "json")
	require.NoError(t, err)

	verification := decodeJSON[webmaster.HostVerification](t, out)
	assert.Equal(t, webmaster.VerificationStateInProgress, verification.VerificationState)
	assert.Equal(t, webmaster.VerificationTypeDNS, verification.VerificationType)

	out, err = env.run(t, "verification", "status", hostID)
	require.NoError(t, err)
	assert.Contains(t, out, "In Progress")

	out, err = env.run(t, "verification", "owners", env.hostID, "-o", "json")
	require.NoError(t, err)

	owners := decodeJSON[[]webmaster.Owner](t, out)
	require.Len(t, owners, 1)
	assert.Equal(t, "webmaster", owners[0].UserLogin)
}

func TestCLI_Stats(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "stats", "summary", env.hostID, "-o", "json")
	require.NoError(t, err)

	summary := decodeJSON[webmaster.HostSummary](t, out)
	assert.Equal(t, int64(120), summary.SQI)

	out, err = env.run(t, "stats", "summary", env.hostID)
	require.NoError(t, err)
	assert.Contains(t, out, "Critical Problems")

	_, err = env.run(t, "stats", "sqi", env.hostID, "--from", "2024-13-01")
	require.ErrorIs(t, err, constants.ErrInvalidDate)

	out, err = env.run(t, "stats", "sqi", env.hostID, "--from", "2024-05-18", "-o", "json")
	require.NoError(t, err)

	points := decodeJSON[[]webmaster.HistoryPoint](t, out)
	assert.Len(t, points, 3)

	requests := env.twin.Requests()
	last := requests[len(requests)-1]
	assert.Equal(t, "2024-05-18T00:00:00Z", last.Query.Get("date_from"))
}

func TestCLI_Queries(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "queries", "popular", env.hostID,
		"--order-by", "total_clicks", "-i", "TOTAL_CLICKS", "--limit", "2", "-o", "json")
	require.NoError(t, err)

	popular := decodeJSON[webmaster.PopularQueriesResponse](t, out)
	require.Len(t, popular.Queries, 2)
	assert.Equal(t, "buy widgets", popular.Queries[0].QueryText)
	assert.Equal(t, int64(4), popular.Count)

	requests := env.twin.Requests()
	query := requests[len(requests)-1].Query
	assert.Equal(t, "TOTAL_CLICKS", query.Get("order_by"))
	assert.Equal(t, []string{"TOTAL_CLICKS"}, query["query_indicator"])
	assert.Equal(t, "2", query.Get("limit"))

	_, err = env.run(t, "queries", "popular", env.hostID, "--order-by", "position")
	require.ErrorIs(t, err, constants.ErrInvalidOrderBy)

	_, err = env.run(t, "queries", "popular", env.hostID, "--limit", "501")
	require.ErrorIs(t, err, constants.ErrInvalidLimit)

	out, err = env.run(t, "queries", "history", env.hostID, "-i", "TOTAL_SHOWS", "--device", "desktop", "-o", "json")
	require.NoError(t, err)

	history := decodeJSON[webmaster.QueryHistoryResponse](t, out)
	assert.Contains(t, history.Indicators, webmaster.QueryIndicatorTotalShows)

	requests = env.twin.Requests()
	assert.Equal(t, "DESKTOP", requests[len(requests)-1].Query.Get("device_type_indicator"))

	queryID := popular.Queries[0].QueryID

	out, err = env.run(t, "queries", "query", env.hostID, queryID)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-05-20")
}

func TestCLI_Sitemaps(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "sitemaps", "list", env.hostID, "-o", "json")
	require.NoError(t, err)

	sitemaps := decodeJSON[webmaster.SitemapsResponse](t, out)
	require.Len(t, sitemaps.Sitemaps, 1)

	sitemapID := sitemaps.Sitemaps[0].SitemapID

	out, err = env.run(t, "sitemaps", "get", env.hostID, sitemapID)
	require.NoError(t, err)
	assert.Contains(t, out, "Robots Txt")

	out, err = env.run(t, "sitemaps", "add", env.hostID, "https://example.com/news.xml", "-o", "json")
	require.NoError(t, err)

	added := decodeJSON[webmaster.AddSitemapResponse](t, out)
	require.NotEmpty(t, added.SitemapID)

	out, err = env.run(t, "sitemaps", "user-list", env.hostID, "-o", "json")
	require.NoError(t, err)

	userSitemaps := decodeJSON[webmaster.UserSitemapsResponse](t, out)
	assert.Equal(t, int64(1), userSitemaps.Count)

	out, err = env.run(t, "sitemaps", "user-get", env.hostID, added.SitemapID, "-o", "yaml")
	require.NoError(t, err)

	var userSitemap map[string]interface{}

	require.NoError(t, yaml.Unmarshal([]byte(out), &userSitemap))
	assert.Equal(t, "https://example.com/news.xml", userSitemap["sitemap_url"])

	_, err = env.run(t, "sitemaps", "delete", env.hostID, added.SitemapID)
	require.NoError(t, err)

	_, err = env.run(t, "sitemaps", "user-get", env.hostID, added.SitemapID)
	require.Error(t, err)
	assert.True(t, webmaster.HasErrorCode(err, webmaster.ErrorCodeSitemapNotFound))
}

func TestCLI_Indexing(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "indexing", "history", env.hostID, "-o", "json")
	require.NoError(t, err)

	history := decodeJSON[webmaster.IndexingHistoryResponse](t, out)
	assert.Len(t, history.Indicators, 5)

	out, err = env.run(t, "indexing", "samples", env.hostID, "--limit", "2", "-o", "json")
	require.NoError(t, err)

	samples := decodeJSON[webmaster.IndexingSamplesResponse](t, out)
	assert.Len(t, samples.Samples, 2)
	assert.Equal(t, int64(5), samples.Count)

	out, err = env.run(t, "search-urls", "samples", env.hostID)
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com/catalog/")

	_, err = env.run(t, "search-urls", "history", env.hostID)
	require.NoError(t, err)

	_, err = env.run(t, "search-urls", "events-history", env.hostID)
	require.NoError(t, err)

	_, err = env.run(t, "search-urls", "events", env.hostID)
	require.NoError(t, err)

	out, err = env.run(t, "important-urls", "list", env.hostID, "-o", "json")
	require.NoError(t, err)

	important := decodeJSON[webmaster.ImportantURLsResponse](t, out)
	require.NotEmpty(t, important.URLs)

	_, err = env.run(t, "important-urls", "history", env.hostID, important.URLs[0].URL)
	require.NoError(t, err)
}

func TestCLI_Recrawl(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "recrawl", "add", env.hostID, "https://example.com/catalog/", "-o", "json")
	require.NoError(t, err)

	queued := decodeJSON[webmaster.RecrawlResponse](t, out)
	require.NotEmpty(t, queued.TaskID)

	out, err = env.run(t, "recrawl", "get", env.hostID, queued.TaskID, "-o", "json")
	require.NoError(t, err)

	task := decodeJSON[webmaster.RecrawlTask](t, out)
	assert.Equal(t, webmaster.RecrawlTaskStateInProgress, task.State)

	out, err = env.run(t, "recrawl", "list", env.hostID, "-o", "json")
	require.NoError(t, err)

	tasks := decodeJSON[webmaster.RecrawlTasksResponse](t, out)
	assert.Len(t, tasks.Tasks, 1)

	out, err = env.run(t, "recrawl", "quota", env.hostID, "-o", "json")
	require.NoError(t, err)

	quota := decodeJSON[webmaster.RecrawlQuota](t, out)
	assert.Equal(t, int64(20), quota.DailyQuota)
	assert.Equal(t, int64(19), quota.QuotaRemainder)

	env.twin.SetRecrawlQuota(env.hostID, 20, 0)

	_, err = env.run(t, "recrawl", "add", env.hostID, "https://example.com/about")
	require.Error(t, err)
	assert.True(t, webmaster.IsQuotaExceeded(err))
}

func TestCLI_Links(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "links", "broken", env.hostID, "-i", "SITE_ERROR", "-o", "json")
	require.NoError(t, err)

	requests := env.twin.Requests()
	assert.Equal(t, []string{"SITE_ERROR"}, requests[len(requests)-1].Query["indicator"])

	_, err = env.run(t, "links", "broken", env.hostID, "-i", "BROKEN")
	require.ErrorIs(t, err, constants.ErrInvalidIndicator)

	_, err = env.run(t, "links", "broken-history", env.hostID)
	require.NoError(t, err)

	_, err = env.run(t, "links", "external", env.hostID, "--limit", "1")
	require.NoError(t, err)

	out, err := env.run(t, "links", "external-history", env.hostID, "-o", "json")
	require.NoError(t, err)

	history := decodeJSON[webmaster.ExternalLinksHistoryResponse](t, out)
	assert.Contains(t, history.Indicators, webmaster.ExternalLinkIndicatorLinksTotalCount)
}

func TestCLI_Diagnostics(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "diagnostics", env.hostID)
	require.NoError(t, err)
	assert.Contains(t, out, "No Sitemaps")
	assert.NotContains(t, out, "Dns Error")

	out, err = env.run(t, "diagnostics", env.hostID, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Dns Error")
}

func TestCLI_Report(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "report", env.hostID, "-o", "json")
	require.NoError(t, err)

	report := decodeJSON[SiteReport](t, out)
	require.NotNil(t, report.Host)
	assert.Equal(t, env.hostID, report.Host.HostID)
	assert.Equal(t, int64(120), report.Summary.SQI)
	assert.Equal(t, int64(20), report.Quota.DailyQuota)
	require.NotNil(t, report.TopQueries)
	assert.Len(t, report.TopQueries.Queries, 4)

	out, err = env.run(t, "report", env.hostID, "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Site Report: https://example.com/")
	assert.Contains(t, out, "## Recrawl Quota")
	assert.Contains(t, out, "buy widgets")

	out, err = env.run(t, "report", env.hostID, "--queries", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary:")
	assert.NotContains(t, out, "Top Queries")

	env.twin.SetFault("/v4/user/"+strconv.FormatInt(env.twin.UserID(), 10)+"/hosts/"+env.hostID+"/diagnostics",
		twin.Fault{StatusCode: 500, Body: "boom"})

	_, err = env.run(t, "report", env.hostID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get diagnostics")
	assert.Equal(t, webmaster.KindStatus, webmaster.KindOf(err))
}

func TestCLI_ReportUnverifiedHost(t *testing.T) {
	env := newCLIEnv(t)
	hostID := env.twin.AddHost("https://pending.example", false)

	_, err := env.run(t, "report", hostID)
	require.Error(t, err)
	assert.True(t, webmaster.HasErrorCode(err, webmaster.ErrorCodeHostNotVerified))
}

func TestCLI_LoginLogout(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.runRaw(t, "--api", env.api, "login", "--token", "wrong-token")
	require.Error(t, err)
	assert.True(t, webmaster.IsUnauthorized(err))

	out, err := env.runRaw(t, "--api", env.api, "login", "--token", env.twin.Token())
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged in as user "+strconv.FormatInt(env.twin.UserID(), 10))

	info, err := os.Stat(env.configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	// The stored token, API and user ID are picked up without flags.
	out, err = env.runRaw(t, "hosts", "list", "-o", "json")
	require.NoError(t, err)

	hosts := decodeJSON[[]webmaster.HostInfo](t, out)
	assert.Len(t, hosts, 1)

	out, err = env.runRaw(t, "config", "show", "-o", "json")
	require.NoError(t, err)

	config := decodeJSON[Config](t, out)
	assert.Equal(t, env.api, config.API)
	assert.Equal(t, env.twin.UserID(), config.UserID)
	assert.Equal(t, env.twin.Token()[:constants.TokenVisiblePrefix]+constants.MaskedSecret, config.Token)

	out, err = env.runRaw(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged out\n", out)

	_, err = env.runRaw(t, "hosts", "list")
	require.ErrorIs(t, err, constants.ErrNotAuthenticated)
}

func TestCLI_Config(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.runRaw(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.configFile+"\n", out)

	_, err = env.runRaw(t, "config", "set", "output", "json")
	require.NoError(t, err)

	_, err = env.runRaw(t, "config", "set", "retry_max", "2")
	require.NoError(t, err)

	_, err = env.runRaw(t, "config", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutput)

	_, err = env.runRaw(t, "config", "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = env.runRaw(t, "config", "set", "timeout", "soon")
	require.Error(t, err)

	out, err = env.runRaw(t, "config", "set", "token", "y0_secret-token")
	require.NoError(t, err)
	assert.Equal(t, "Set token to y0_s***\n", out)

	// output=json from the file applies when no flag is given.
	out, err = env.runRaw(t, "config", "show")
	require.NoError(t, err)

	config := decodeJSON[Config](t, out)
	assert.Equal(t, "json", config.Output)
	require.NotNil(t, config.RetryMax)
	assert.Equal(t, 2, *config.RetryMax)

	_, err = env.runRaw(t, "config", "unset", "output")
	require.NoError(t, err)

	out, err = env.runRaw(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "y0_s***")

	data, err := os.ReadFile(env.configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "output")
	assert.Contains(t, string(data), "token: y0_secret-token")
}

func TestCLI_InvalidLogFormat(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "--log-format", "xml", "user")
	require.ErrorIs(t, err, constants.ErrInvalidLogFormat)
}
