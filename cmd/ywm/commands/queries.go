package commands

import (
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

var queryIndicators = []webmaster.QueryIndicator{
	webmaster.QueryIndicatorTotalShows,
	webmaster.QueryIndicatorTotalClicks,
	webmaster.QueryIndicatorAvgShowPosition,
	webmaster.QueryIndicatorAvgClickPosition,
}

var deviceTypes = []webmaster.DeviceType{
	webmaster.DeviceTypeAll,
	webmaster.DeviceTypeDesktop,
	webmaster.DeviceTypeMobileAndTablet,
	webmaster.DeviceTypeMobile,
	webmaster.DeviceTypeTablet,
}

// queryFlags are the indicator, device and date selectors shared by query commands.
type queryFlags struct {
	dateFlags

	indicators []string
	device     string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	q.dateFlags.register(cmd)
	cmd.Flags().StringSliceVarP(&q.indicators, "indicator", "i", nil,
		"indicators (TOTAL_SHOWS, TOTAL_CLICKS, AVG_SHOW_POSITION, AVG_CLICK_POSITION)")
	cmd.Flags().StringVar(&q.device, "device", "", "device type (ALL, DESKTOP, MOBILE_AND_TABLET, MOBILE, TABLET)")
}

func (q *queryFlags) historyRequest() (*webmaster.QueryHistoryRequest, error) {
	indicators, err := parseEnums(q.indicators, queryIndicators, constants.ErrInvalidIndicator)
	if err != nil {
		return nil, err
	}

	device, err := q.deviceType()
	if err != nil {
		return nil, err
	}

	from, to, err := q.dates()
	if err != nil {
		return nil, err
	}

	return &webmaster.QueryHistoryRequest{
		QueryIndicator:      indicators,
		DeviceTypeIndicator: device,
		DateFrom:            from,
		DateTo:              to,
	}, nil
}

func (q *queryFlags) deviceType() (webmaster.DeviceType, error) {
	if q.device == "" {
		return "", nil
	}

	device, err := parseEnums([]string{q.device}, deviceTypes, constants.ErrInvalidIndicator)
	if err != nil {
		return "", err
	}

	return device[0], nil
}

// selected returns the requested indicators in display order, all of them when none were given.
func (q *queryFlags) selected(requested []webmaster.QueryIndicator) []webmaster.QueryIndicator {
	if len(requested) == 0 {
		return queryIndicators
	}

	return requested
}

// NewQueriesCommand creates the queries command group
func NewQueriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queries",
		Aliases: []string{"search-queries"},
		Short:   "Show search query analytics",
		Long:    "Display popular search queries and their indicator history",
	}

	cmd.AddCommand(newQueriesPopularCommand())
	cmd.AddCommand(newQueriesHistoryCommand())
	cmd.AddCommand(newQueriesQueryCommand())

	return cmd
}

func newQueriesPopularCommand() *cobra.Command {
	var (
		flags   queryFlags
		page    pageFlags
		orderBy string
	)

	cmd := &cobra.Command{
		Use:   "popular HOST_ID",
		Short: "List popular queries",
		Long:  "List the most popular search queries of a site ordered by shows or clicks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := flags.historyRequest()
			if err != nil {
				return err
			}

			order, err := parseEnums([]string{orderBy}, []webmaster.QueryOrderField{
				webmaster.QueryOrderFieldTotalShows,
				webmaster.QueryOrderFieldTotalClicks,
			}, constants.ErrInvalidOrderBy)
			if err != nil {
				return err
			}

			selector, err := page.page(constants.MaxPopularQueriesLimit)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			queries, err := client.SearchQueries().ListPopular(cmd.Context(), hostIDArg(args), &webmaster.PopularQueriesRequest{
				OrderBy:             order[0],
				QueryIndicator:      history.QueryIndicator,
				DeviceTypeIndicator: history.DeviceTypeIndicator,
				DateFrom:            history.DateFrom,
				DateTo:              history.DateTo,
				Offset:              selector.Offset,
				Limit:               selector.Limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list popular queries: %w", err)
			}

			return render(cmd, queries, func() *tableData {
				indicators := flags.selected(history.QueryIndicator)
				data := &tableData{header: []string{"Query ID", "Query"}}

				for _, indicator := range indicators {
					data.header = append(data.header, humanize(indicator))
				}

				for _, query := range queries.Queries {
					row := []string{query.QueryID, query.QueryText}
					for _, indicator := range indicators {
						row = append(row, formatFloat(query.Indicators[indicator]))
					}

					data.add(row...)
				}

				return data
			})
		},
	}

	flags.register(cmd)
	page.register(cmd, constants.MaxPopularQueriesLimit)
	cmd.Flags().StringVar(&orderBy, "order-by", string(webmaster.QueryOrderFieldTotalShows), "order (TOTAL_SHOWS, TOTAL_CLICKS)")

	return cmd
}

func newQueriesHistoryCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "history HOST_ID",
		Short: "Show history of all queries",
		Long:  "Display the aggregated indicator history of all search queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.historyRequest()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.SearchQueries().GetAllHistory(cmd.Context(), hostIDArg(args), request)
			if err != nil {
				return fmt.Errorf("failed to get query history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, flags.selected(request.QueryIndicator))
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newQueriesQueryCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "query HOST_ID QUERY_ID",
		Short: "Show history of one query",
		Long:  "Display the indicator history of a single search query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.historyRequest()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.SearchQueries().GetHistory(cmd.Context(), hostIDArg(args), args[1], request)
			if err != nil {
				return fmt.Errorf("failed to get query history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, flags.selected(request.QueryIndicator))
			})
		},
	}

	flags.register(cmd)

	return cmd
}
