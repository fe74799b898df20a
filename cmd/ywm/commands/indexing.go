package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

var indexingStatuses = []webmaster.IndexingStatus{
	webmaster.IndexingStatusHTTP2xx,
	webmaster.IndexingStatusHTTP3xx,
	webmaster.IndexingStatusHTTP4xx,
	webmaster.IndexingStatusHTTP5xx,
	webmaster.IndexingStatusOther,
}

var searchEvents = []webmaster.SearchEvent{
	webmaster.SearchEventAppearedInSearch,
	webmaster.SearchEventRemovedFromSearch,
}

// NewIndexingCommand creates the indexing command group
func NewIndexingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexing",
		Short: "Show crawl statistics",
		Long:  "Display the pages downloaded by the robot grouped by HTTP status",
	}

	cmd.AddCommand(newIndexingHistoryCommand())
	cmd.AddCommand(newIndexingSamplesCommand())

	return cmd
}

func newIndexingHistoryCommand() *cobra.Command {
	var dates dateFlags

	cmd := &cobra.Command{
		Use:   "history HOST_ID",
		Short: "Show crawl history",
		Long:  "Display the number of downloaded pages per HTTP status class over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := dates.dateRange()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.Indexing().GetHistory(cmd.Context(), hostIDArg(args),
				&webmaster.IndexingHistoryRequest{DateRange: dateRange})
			if err != nil {
				return fmt.Errorf("failed to get indexing history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, indexingStatuses)
			})
		},
	}

	dates.register(cmd)

	return cmd
}

func newIndexingSamplesCommand() *cobra.Command {
	var page pageFlags

	cmd := &cobra.Command{
		Use:   "samples HOST_ID",
		Short: "List crawled pages",
		Long:  "List sample pages downloaded by the robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := page.page(constants.MaxPageSize)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			samples, err := client.Indexing().ListSamples(cmd.Context(), hostIDArg(args),
				&webmaster.IndexingSamplesRequest{PageRequest: selector})
			if err != nil {
				return fmt.Errorf("failed to list indexing samples: %w", err)
			}

			return render(cmd, samples, func() *tableData {
				data := &tableData{header: []string{"URL", "HTTP Code", "Status", "Accessed"}}
				for _, sample := range samples.Samples {
					data.add(sample.URL, strconv.Itoa(sample.HTTPCode), humanize(sample.Status), formatTime(sample.AccessDate))
				}

				return data
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)

	return cmd
}

// NewSearchURLsCommand creates the search-urls command group
func NewSearchURLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search-urls",
		Aliases: []string{"in-search"},
		Short:   "Show pages in search",
		Long:    "Display pages in search and the pages that appeared in or left search",
	}

	cmd.AddCommand(newSearchURLsHistoryCommand())
	cmd.AddCommand(newSearchURLsSamplesCommand())
	cmd.AddCommand(newSearchURLsEventsHistoryCommand())
	cmd.AddCommand(newSearchURLsEventsCommand())

	return cmd
}

func newSearchURLsHistoryCommand() *cobra.Command {
	var dates dateFlags

	cmd := &cobra.Command{
		Use:   "history HOST_ID",
		Short: "Show in-search page count history",
		Long:  "Display the number of pages in search over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := dates.dateRange()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.SearchURLs().GetInSearchHistory(cmd.Context(), hostIDArg(args),
				&webmaster.InSearchHistoryRequest{DateRange: dateRange})
			if err != nil {
				return fmt.Errorf("failed to get in-search history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return pointsTable(history.History, "Pages")
			})
		},
	}

	dates.register(cmd)

	return cmd
}

func newSearchURLsSamplesCommand() *cobra.Command {
	var page pageFlags

	cmd := &cobra.Command{
		Use:   "samples HOST_ID",
		Short: "List pages in search",
		Long:  "List sample pages currently in search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := page.page(constants.MaxPageSize)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			samples, err := client.SearchURLs().ListInSearchSamples(cmd.Context(), hostIDArg(args),
				&webmaster.InSearchSamplesRequest{PageRequest: selector})
			if err != nil {
				return fmt.Errorf("failed to list in-search samples: %w", err)
			}

			return render(cmd, samples, func() *tableData {
				data := &tableData{header: []string{"URL", "Title", "Last Access"}}
				for _, sample := range samples.Samples {
					data.add(sample.URL, sample.Title, formatTime(sample.LastAccess))
				}

				return data
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)

	return cmd
}

func newSearchURLsEventsHistoryCommand() *cobra.Command {
	var dates dateFlags

	cmd := &cobra.Command{
		Use:   "events-history HOST_ID",
		Short: "Show search events history",
		Long:  "Display the number of pages that appeared in or were removed from search over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := dates.dateRange()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.SearchURLs().GetEventsHistory(cmd.Context(), hostIDArg(args),
				&webmaster.SearchEventsHistoryRequest{DateRange: dateRange})
			if err != nil {
				return fmt.Errorf("failed to get search events history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, searchEvents)
			})
		},
	}

	dates.register(cmd)

	return cmd
}

func newSearchURLsEventsCommand() *cobra.Command {
	var page pageFlags

	cmd := &cobra.Command{
		Use:   "events HOST_ID",
		Short: "List search events",
		Long:  "List sample pages that appeared in or were removed from search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := page.page(constants.MaxPageSize)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			samples, err := client.SearchURLs().ListEventSamples(cmd.Context(), hostIDArg(args),
				&webmaster.SearchEventSamplesRequest{PageRequest: selector})
			if err != nil {
				return fmt.Errorf("failed to list search events: %w", err)
			}

			return render(cmd, samples, func() *tableData {
				data := &tableData{header: []string{"URL", "Event", "Date", "Reason"}}
				for _, sample := range samples.Samples {
					reason := ""
					if sample.ExcludedURLStatus != nil {
						reason = humanize(*sample.ExcludedURLStatus)
					}

					data.add(sample.URL, humanize(sample.Event), formatTime(sample.EventDate), reason)
				}

				return data
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)

	return cmd
}

// NewImportantURLsCommand creates the important-urls command group
func NewImportantURLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "important-urls",
		Short: "Show monitored pages",
		Long:  "Display the pages monitored for changes and their change history",
	}

	cmd.AddCommand(newImportantURLsListCommand())
	cmd.AddCommand(newImportantURLsHistoryCommand())

	return cmd
}

func newImportantURLsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list HOST_ID",
		Short: "List monitored pages",
		Long:  "List the monitored pages of a site with their latest state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			urls, err := client.ImportantURLs().List(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to list important URLs: %w", err)
			}

			return render(cmd, urls, func() *tableData {
				return importantURLsTable(urls.URLs)
			})
		},
	}
}

func newImportantURLsHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history HOST_ID URL",
		Short: "Show monitored page history",
		Long:  "Display the change history of a monitored page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.ImportantURLs().GetHistory(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to get important URL history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return importantURLsTable(history.History)
			})
		},
	}
}

func importantURLsTable(urls []webmaster.ImportantURL) *tableData {
	data := &tableData{header: []string{"URL", "Updated", "Changes", "HTTP Code", "Searchable"}}

	for _, page := range urls {
		changes := make([]string, 0, len(page.ChangeIndicators))
		for _, change := range page.ChangeIndicators {
			changes = append(changes, humanize(change))
		}

		code := constants.NotAvailable
		if page.IndexingStatus != nil && page.IndexingStatus.HTTPCode != nil {
			code = strconv.Itoa(*page.IndexingStatus.HTTPCode)
		}

		searchable := ""
		if page.SearchStatus != nil {
			searchable = formatBool(page.SearchStatus.Searchable)
		}

		data.add(page.URL, formatOptionalTime(page.UpdateDate), joinOrNone(changes), code, searchable)
	}

	return data
}
