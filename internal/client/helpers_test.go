package client_test

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/client"
	"github.com/fivetwenty-io/webmaster-client/internal/twin"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)

// twinEnv is a client wired to a fresh in-memory API.
type twinEnv struct {
	twin   *twin.Twin
	server *httptest.Server
	client *client.Client
	hostID string
}

// newTwinEnv starts a twin with one verified host and returns a client for it.
func newTwinEnv(t *testing.T) *twinEnv {
	t.Helper()

	fake, server := twin.NewServer(twin.WithClock(func() time.Time { return testNow }))
	t.Cleanup(server.Close)

	hostID := fake.AddHost("https://example.com", true)

	c, err := client.New(context.Background(), &webmaster.Config{
		Token:   fake.Token(),
		BaseURL: server.URL + "/v4",
	})
	require.NoError(t, err)

	return &twinEnv{twin: fake, server: server, client: c, hostID: hostID}
}

func intPtr(v int) *int {
	return &v
}

func requireAPIError(t *testing.T, err error, code webmaster.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	require.Equal(t, webmaster.KindStatus, webmaster.KindOf(err), err.Error())
	require.True(t, webmaster.HasErrorCode(err, code), "want %s, got %v", code, err)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
