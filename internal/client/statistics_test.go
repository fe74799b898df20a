package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsClient(t *testing.T) {
	t.Parallel()

	env := newTwinEnv(t)
	ctx := context.Background()
	statistics := env.client.Statistics()

	summary, err := statistics.GetSummary(ctx, env.hostID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), summary.SQI)
	assert.Equal(t, int64(1), summary.SiteProblems[webmaster.SiteProblemSeverityCritical])

	points, err := statistics.GetSQIHistory(ctx, env.hostID, nil)
	require.NoError(t, err)
	assert.Len(t, points, 7)

	from := testNow.Add(-48 * time.Hour)
	points, err = statistics.GetSQIHistory(ctx, env.hostID, &webmaster.SQIHistoryRequest{
		DateRange: webmaster.DateRange{DateFrom: &from},
	})
	require.NoError(t, err)
	assert.Len(t, points, 3)

	requests := env.twin.Requests()
	assert.Equal(t, from.Format(time.RFC3339), requests[len(requests)-1].Query.Get("date_from"))

	diagnostics, err := env.client.Diagnostics().Get(ctx, env.hostID)
	require.NoError(t, err)
	assert.Len(t, diagnostics.Problems, 3)
	assert.Equal(t, webmaster.SiteProblemStatePresent, diagnostics.Problems["NO_SITEMAPS"].State)
}

func TestSearchQueriesClient(t *testing.T) {
	t.Parallel()

	env := newTwinEnv(t)
	ctx := context.Background()
	queries := env.client.SearchQueries()

	t.Run("order defaults to shows", func(t *testing.T) {
		request := &webmaster.PopularQueriesRequest{Limit: intPtr(2)}

		popular, err := queries.ListPopular(ctx, env.hostID, request)
		require.NoError(t, err)
		assert.Equal(t, int64(4), popular.Count)
		require.Len(t, popular.Queries, 2)
		assert.Equal(t, "buy widgets", popular.Queries[0].QueryText)
		assert.Empty(t, request.OrderBy)

		requests := env.twin.Requests()
		assert.Equal(t, "TOTAL_SHOWS", requests[len(requests)-1].Query.Get("order_by"))
	})

	t.Run("indicators and dates", func(t *testing.T) {
		from := webmaster.NewDate(testNow.AddDate(0, 0, -2))
		to := webmaster.NewDate(testNow)

		popular, err := queries.ListPopular(ctx, env.hostID, &webmaster.PopularQueriesRequest{
			OrderBy:        webmaster.QueryOrderFieldTotalClicks,
			QueryIndicator: []webmaster.QueryIndicator{webmaster.QueryIndicatorTotalClicks, webmaster.QueryIndicatorAvgClickPosition},
			DateFrom:       &from,
			DateTo:         &to,
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-05-18", popular.DateFrom.String())
		assert.Len(t, popular.Queries[0].Indicators, 2)

		requests := env.twin.Requests()
		query := requests[len(requests)-1].Query
		assert.Equal(t, []string{"TOTAL_CLICKS", "AVG_CLICK_POSITION"}, query["query_indicator"])
		assert.Equal(t, "2024-05-20", query.Get("date_to"))
	})

	t.Run("history", func(t *testing.T) {
		all, err := queries.GetAllHistory(ctx, env.hostID, &webmaster.QueryHistoryRequest{
			QueryIndicator: []webmaster.QueryIndicator{webmaster.QueryIndicatorTotalClicks},
		})
		require.NoError(t, err)
		assert.Len(t, all.Indicators, 1)

		popular, err := queries.ListPopular(ctx, env.hostID, nil)
		require.NoError(t, err)

		single, err := queries.GetHistory(ctx, env.hostID, popular.Queries[0].QueryID, nil)
		require.NoError(t, err)
		assert.Equal(t, popular.Queries[0].QueryText, single.QueryText)
		assert.Len(t, single.Indicators, 4)

		_, err = queries.GetHistory(ctx, env.hostID, "0123", nil)
		requireAPIError(t, err, webmaster.ErrorCodeQueryIDNotFound)

		_, err = queries.GetHistory(ctx, env.hostID, "", nil)
		require.ErrorIs(t, err, webmaster.ErrInvalidArgument)
	})
}
