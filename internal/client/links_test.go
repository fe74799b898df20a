package client_test

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksClient(t *testing.T) {
	t.Parallel()

	env := newTwinEnv(t)
	ctx := context.Background()
	links := env.client.Links()

	broken, err := links.ListBrokenSamples(ctx, env.hostID, &webmaster.BrokenLinksRequest{
		Indicator: []webmaster.BrokenLinkIndicator{webmaster.BrokenLinkIndicatorSiteError},
	})
	require.NoError(t, err)
	require.Len(t, broken.Links, 1)
	assert.Equal(t, "https://example.com/old-page", broken.Links[0].DestinationURL)

	brokenHistory, err := links.GetBrokenHistory(ctx, env.hostID, nil)
	require.NoError(t, err)
	assert.Len(t, brokenHistory.Indicators, 3)

	external, err := links.ListExternalSamples(ctx, env.hostID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, external.Links)

	t.Run("external history defaults the indicator", func(t *testing.T) {
		history, err := links.GetExternalHistory(ctx, env.hostID, nil)
		require.NoError(t, err)
		assert.Len(t, history.Indicators[webmaster.ExternalLinkIndicatorLinksTotalCount], 7)

		requests := env.twin.Requests()
		assert.Equal(t, "LINKS_TOTAL_COUNT", requests[len(requests)-1].Query.Get("indicator"))
	})
}
