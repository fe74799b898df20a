package twin_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/twin"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	twin   *twin.Twin
	apiURL string
}

func newHarness(t *testing.T, opts ...twin.Option) *harness {
	t.Helper()

	opts = append([]twin.Option{twin.WithClock(func() time.Time { return fixedNow })}, opts...)
	fake, server := twin.NewServer(opts...)
	t.Cleanup(server.Close)

	return &harness{t: t, twin: fake, apiURL: server.URL + "/v4"}
}

func (h *harness) userPath(suffix string) string {
	return "/user/" + strconv.FormatInt(h.twin.UserID(), 10) + suffix
}

// do sends an authenticated request and returns status and body.
func (h *harness) do(method, path, body string) (int, []byte) {
	h.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, h.apiURL+path, reader)
	require.NoError(h.t, err)
	req.Header.Set("Authorization", "OAuth "+h.twin.Token())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)

	return resp.StatusCode, data
}

func (h *harness) decode(path string, target interface{}) {
	h.t.Helper()

	status, body := h.do(http.MethodGet, path, "")
	require.Equal(h.t, http.StatusOK, status, string(body))
	require.NoError(h.t, json.Unmarshal(body, target))
}

func errorCode(t *testing.T, body []byte) webmaster.ErrorCode {
	t.Helper()

	var resp webmaster.APIErrorResponse

	require.NoError(t, json.Unmarshal(body, &resp))

	return resp.ErrorCode
}

func TestTwin_Authentication(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token", "OAuth nope"},
		{"wrong scheme", "Bearer " + twin.DefaultToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, h.apiURL+"/user", nil)
			require.NoError(t, err)

			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, webmaster.ErrorCodeInvalidOAuthToken, errorCode(t, body))
		})
	}

	t.Run("custom scheme and token", func(t *testing.T) {
		t.Parallel()

		custom := newHarness(t, twin.WithAuthScheme("Bearer"), twin.WithToken("abc"), twin.WithUserID(7))

		req, err := http.NewRequest(http.MethodGet, custom.apiURL+"/user", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer abc")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		defer func() { _ = resp.Body.Close() }()

		var user webmaster.User

		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, int64(7), user.UserID)
	})
}

func TestTwin_UserMismatch(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/user/1/hosts", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, webmaster.ErrorCodeInvalidUserID, errorCode(t, body))
}

func TestTwin_Hosts(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	status, body := h.do(http.MethodPost, h.userPath("/hosts"), `{"host_url":"https://Example.com"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	var added webmaster.AddHostResponse

	require.NoError(t, json.Unmarshal(body, &added))
	assert.Equal(t, "https:example.com:443", added.HostID)

	t.Run("duplicate", func(t *testing.T) {
		status, body := h.do(http.MethodPost, h.userPath("/hosts"), `{"host_url":"https://example.com/"}`)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, webmaster.ErrorCodeHostAlreadyAdded, errorCode(t, body))
	})

	t.Run("invalid url", func(t *testing.T) {
		status, body := h.do(http.MethodPost, h.userPath("/hosts"), `{"host_url":"ftp://example.com"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, webmaster.ErrorCodeInvalidURL, errorCode(t, body))
	})

	t.Run("internationalized name", func(t *testing.T) {
		hostID := h.twin.AddHost("http://пример.рф:8080", false)
		assert.Equal(t, "http:xn--e1afmkfd.xn--p1ai:8080", hostID)

		var host webmaster.FullHostInfo

		h.decode(h.userPath("/hosts/"+hostID), &host)
		assert.Equal(t, "http://xn--e1afmkfd.xn--p1ai:8080/", host.ASCIIHostURL)
		assert.Equal(t, "http://пример.рф:8080/", host.UnicodeHostURL)
		assert.Equal(t, "пример.рф", host.HostDisplayName)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		var hosts webmaster.HostsResponse

		h.decode(h.userPath("/hosts"), &hosts)
		require.Len(t, hosts.Hosts, 2)
		assert.Equal(t, "https:example.com:443", hosts.Hosts[0].HostID)
		assert.False(t, hosts.Hosts[0].Verified)
	})

	t.Run("delete", func(t *testing.T) {
		status, _ := h.do(http.MethodDelete, h.userPath("/hosts/https:example.com:443"), "")
		assert.Equal(t, http.StatusNoContent, status)

		status, body := h.do(http.MethodGet, h.userPath("/hosts/https:example.com:443"), "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, webmaster.ErrorCodeHostNotFound, errorCode(t, body))
	})
}

func TestTwin_Verification(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", false)
	base := h.userPath("/hosts/" + hostID)

	status, body := h.do(http.MethodGet, base+"/summary", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeHostNotVerified, errorCode(t, body))

	status, body = h.do(http.MethodPost, base+"/verification?verification_type=WHOIS", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	status, body = h.do(http.MethodPost, base+"/verification?verification_type=META_TAG", "")
	require.Equal(t, http.StatusAccepted, status, string(body))

	var verification webmaster.HostVerification

	require.NoError(t, json.Unmarshal(body, &verification))
	assert.Equal(t, webmaster.VerificationStateInProgress, verification.VerificationState)
	assert.Equal(t, webmaster.VerificationTypeMetaTag, verification.VerificationType)
	assert.Len(t, verification.VerificationUIN, 16)

	status, body = h.do(http.MethodPost, base+"/verification?verification_type=DNS", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, webmaster.ErrorCodeVerificationAlreadyInProgress, errorCode(t, body))

	h.twin.CompleteVerification(hostID)

	var owners webmaster.OwnersResponse

	h.decode(base+"/owners", &owners)
	require.Len(t, owners.Users, 1)
	assert.Equal(t, webmaster.VerificationTypeMetaTag, owners.Users[0].VerificationType)
}

func TestTwin_Statistics(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", true)
	base := h.userPath("/hosts/" + hostID)

	var history webmaster.SQIHistoryResponse

	h.decode(base+"/sqi-history", &history)
	assert.Len(t, history.Points, 7)

	h.decode(base+"/sqi-history?date_from=2024-05-19T00:00:00Z", &history)
	assert.Len(t, history.Points, 2)

	status, body := h.do(http.MethodGet, base+"/sqi-history?date_from=2024-05-20&date_to=2024-05-01", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	var diagnostics webmaster.DiagnosticsResponse

	h.decode(base+"/diagnostics", &diagnostics)
	assert.Equal(t, webmaster.SiteProblemSeverityCritical, diagnostics.Problems["NO_SITEMAPS"].Severity)
}

func TestTwin_PopularQueries(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", true)
	base := h.userPath("/hosts/" + hostID + "/search-queries")

	status, body := h.do(http.MethodGet, base+"/popular", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	var popular webmaster.PopularQueriesResponse

	h.decode(base+"/popular?order_by=TOTAL_CLICKS&query_indicator=TOTAL_CLICKS&limit=2&offset=1", &popular)
	assert.Equal(t, int64(4), popular.Count)
	require.Len(t, popular.Queries, 2)
	assert.Equal(t, "widget repair", popular.Queries[0].QueryText)
	assert.Equal(t, map[webmaster.QueryIndicator]float64{webmaster.QueryIndicatorTotalClicks: 65}, popular.Queries[0].Indicators)
	assert.Equal(t, "2024-05-14", popular.DateFrom.String())
	assert.Equal(t, "2024-05-20", popular.DateTo.String())

	status, body = h.do(http.MethodGet, base+"/popular?order_by=TOTAL_SHOWS&limit=501", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	queryID := popular.Queries[0].QueryID

	var single webmaster.SingleQueryHistoryResponse

	h.decode(base+"/"+queryID+"/history?query_indicator=TOTAL_SHOWS", &single)
	assert.Equal(t, "widget repair", single.QueryText)
	assert.Len(t, single.Indicators, 1)
	assert.Len(t, single.Indicators[webmaster.QueryIndicatorTotalShows], 7)

	status, body = h.do(http.MethodGet, base+"/ffff/history", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeQueryIDNotFound, errorCode(t, body))

	var all webmaster.QueryHistoryResponse

	h.decode(base+"/all/history?query_indicator=TOTAL_SHOWS&query_indicator=AVG_SHOW_POSITION", &all)
	require.Len(t, all.Indicators[webmaster.QueryIndicatorTotalShows], 7)
	assert.Greater(t, all.Indicators[webmaster.QueryIndicatorTotalShows][0].Value, single.Indicators[webmaster.QueryIndicatorTotalShows][0].Value)
	assert.InDelta(t, 3.5, all.Indicators[webmaster.QueryIndicatorAvgShowPosition][0].Value, 0.001)
}

func TestTwin_Sitemaps(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", true)
	base := h.userPath("/hosts/" + hostID)

	var robot webmaster.SitemapsResponse

	h.decode(base+"/sitemaps", &robot)
	require.Len(t, robot.Sitemaps, 1)
	assert.Equal(t, "https://example.com/sitemap.xml", robot.Sitemaps[0].SitemapURL)

	h.decode(base+"/sitemaps?parent_id="+robot.Sitemaps[0].SitemapID, &robot)
	assert.Empty(t, robot.Sitemaps)

	status, body := h.do(http.MethodGet, base+"/sitemaps/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeSitemapNotFound, errorCode(t, body))

	status, body = h.do(http.MethodPost, base+"/user-added-sitemaps", `{"url":"https://other.example/sitemap.xml"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeInvalidURL, errorCode(t, body))

	status, body = h.do(http.MethodPost, base+"/user-added-sitemaps", `{"url":"https://example.com/news.xml"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	var added webmaster.AddSitemapResponse

	require.NoError(t, json.Unmarshal(body, &added))
	assert.NotEmpty(t, added.SitemapID)

	status, body = h.do(http.MethodPost, base+"/user-added-sitemaps", `{"url":"https://example.com/news.xml"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, webmaster.ErrorCodeSitemapAlreadyAdded, errorCode(t, body))

	var userAdded webmaster.UserSitemapsResponse

	h.decode(base+"/user-added-sitemaps", &userAdded)
	assert.Equal(t, int64(1), userAdded.Count)

	status, _ = h.do(http.MethodDelete, base+"/user-added-sitemaps/"+added.SitemapID, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = h.do(http.MethodGet, base+"/user-added-sitemaps/"+added.SitemapID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeSitemapNotFound, errorCode(t, body))
}

func TestTwin_Recrawl(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", true)
	h.twin.SetRecrawlQuota(hostID, 20, 1)
	base := h.userPath("/hosts/" + hostID + "/recrawl")

	status, body := h.do(http.MethodPost, base+"/queue", `{"url":"https://elsewhere.example/"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeInvalidURL, errorCode(t, body))

	status, body = h.do(http.MethodPost, base+"/queue", `{"url":"https://example.com/catalog/"}`)
	require.Equal(t, http.StatusAccepted, status, string(body))

	var queued webmaster.RecrawlResponse

	require.NoError(t, json.Unmarshal(body, &queued))
	require.NotNil(t, queued.QuotaRemainder)
	assert.Equal(t, int64(0), *queued.QuotaRemainder)

	status, body = h.do(http.MethodPost, base+"/queue", `{"url":"https://example.com/about"}`)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, webmaster.ErrorCodeQuotaExceeded, errorCode(t, body))

	h.twin.FinishRecrawl(hostID, queued.TaskID, webmaster.RecrawlTaskStateDone)

	var task webmaster.RecrawlTask

	h.decode(base+"/queue/"+queued.TaskID, &task)
	assert.Equal(t, webmaster.RecrawlTaskStateDone, task.State)
	assert.True(t, task.AddedTime.Equal(fixedNow))

	var tasks webmaster.RecrawlTasksResponse

	h.decode(base+"/queue", &tasks)
	assert.Len(t, tasks.Tasks, 1)

	status, body = h.do(http.MethodGet, base+"/queue/unknown", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeTaskNotFound, errorCode(t, body))
}

func TestTwin_Links(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	hostID := h.twin.AddHost("https://example.com", true)
	base := h.userPath("/hosts/" + hostID + "/links")

	var broken webmaster.BrokenLinksResponse

	h.decode(base+"/internal/broken/samples?indicator=SITE_ERROR", &broken)
	assert.Equal(t, int64(1), broken.Count)

	status, body := h.do(http.MethodGet, base+"/internal/broken/samples?indicator=NOPE", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	status, body = h.do(http.MethodGet, base+"/external/history", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, webmaster.ErrorCodeFieldValidationError, errorCode(t, body))

	var external webmaster.ExternalLinksHistoryResponse

	h.decode(base+"/external/history?indicator=LINKS_TOTAL_COUNT", &external)
	assert.Len(t, external.Indicators[webmaster.ExternalLinkIndicatorLinksTotalCount], 7)
}

func TestTwin_FaultsAndRecording(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	h.twin.SetFault("/v4/user", twin.Fault{StatusCode: http.StatusServiceUnavailable, Body: "maintenance", Times: 1})

	status, body := h.do(http.MethodGet, "/user", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "maintenance", string(body))

	status, _ = h.do(http.MethodGet, "/user", "")
	assert.Equal(t, http.StatusOK, status)

	requests := h.twin.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/v4/user", requests[1].Path)
	assert.Equal(t, "OAuth "+twin.DefaultToken, requests[1].Authorization)

	status, body = h.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, webmaster.ErrorCodeResourceNotFound, errorCode(t, body))

	h.twin.Reset()
	assert.Empty(t, h.twin.Requests())
}
