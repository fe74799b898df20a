package commands

import (
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

var brokenLinkIndicators = []webmaster.BrokenLinkIndicator{
	webmaster.BrokenLinkIndicatorSiteError,
	webmaster.BrokenLinkIndicatorDisallowedByUser,
	webmaster.BrokenLinkIndicatorUnsupportedByRobot,
}

var externalLinkIndicators = []webmaster.ExternalLinkIndicator{
	webmaster.ExternalLinkIndicatorLinksTotalCount,
}

// NewLinksCommand creates the links command group
func NewLinksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Show link statistics",
		Long:  "Display broken internal links and external backlinks",
	}

	cmd.AddCommand(newLinksBrokenCommand())
	cmd.AddCommand(newLinksBrokenHistoryCommand())
	cmd.AddCommand(newLinksExternalCommand())
	cmd.AddCommand(newLinksExternalHistoryCommand())

	return cmd
}

type linkRow struct {
	source      string
	destination string
	discovered  webmaster.Date
	lastAccess  webmaster.Date
}

func linksTable(links []linkRow) *tableData {
	data := &tableData{header: []string{"Source", "Destination", "Discovered", "Source Accessed"}}
	for _, link := range links {
		data.add(link.source, link.destination, formatDate(link.discovered.Time), formatDate(link.lastAccess.Time))
	}

	return data
}

func newLinksBrokenCommand() *cobra.Command {
	var (
		page       pageFlags
		indicators []string
	)

	cmd := &cobra.Command{
		Use:   "broken HOST_ID",
		Short: "List broken internal links",
		Long:  "List sample internal links pointing to unavailable pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := page.page(constants.MaxPageSize)
			if err != nil {
				return err
			}

			parsed, err := parseEnums(indicators, brokenLinkIndicators, constants.ErrInvalidIndicator)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			links, err := client.Links().ListBrokenSamples(cmd.Context(), hostIDArg(args), &webmaster.BrokenLinksRequest{
				Indicator: parsed,
				Offset:    selector.Offset,
				Limit:     selector.Limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list broken links: %w", err)
			}

			return render(cmd, links, func() *tableData {
				rows := make([]linkRow, 0, len(links.Links))
				for _, link := range links.Links {
					rows = append(rows, linkRow{link.SourceURL, link.DestinationURL, link.DiscoveryDate, link.SourceLastAccessDate})
				}

				return linksTable(rows)
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)
	cmd.Flags().StringSliceVarP(&indicators, "indicator", "i", nil,
		"indicators (SITE_ERROR, DISALLOWED_BY_USER, UNSUPPORTED_BY_ROBOT)")

	return cmd
}

func newLinksBrokenHistoryCommand() *cobra.Command {
	var dates dateFlags

	cmd := &cobra.Command{
		Use:   "broken-history HOST_ID",
		Short: "Show broken links history",
		Long:  "Display the number of broken internal links per indicator over time",
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

			history, err := client.Links().GetBrokenHistory(cmd.Context(), hostIDArg(args),
				&webmaster.BrokenLinksHistoryRequest{DateRange: dateRange})
			if err != nil {
				return fmt.Errorf("failed to get broken links history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, brokenLinkIndicators)
			})
		},
	}

	dates.register(cmd)

	return cmd
}

func newLinksExternalCommand() *cobra.Command {
	var page pageFlags

	cmd := &cobra.Command{
		Use:   "external HOST_ID",
		Short: "List external links",
		Long:  "List sample links to the site from other sites",
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

			links, err := client.Links().ListExternalSamples(cmd.Context(), hostIDArg(args),
				&webmaster.ExternalLinksRequest{PageRequest: selector})
			if err != nil {
				return fmt.Errorf("failed to list external links: %w", err)
			}

			return render(cmd, links, func() *tableData {
				rows := make([]linkRow, 0, len(links.Links))
				for _, link := range links.Links {
					rows = append(rows, linkRow{link.SourceURL, link.DestinationURL, link.DiscoveryDate, link.SourceLastAccessDate})
				}

				return linksTable(rows)
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)

	return cmd
}

func newLinksExternalHistoryCommand() *cobra.Command {
	var indicator string

	cmd := &cobra.Command{
		Use:   "external-history HOST_ID",
		Short: "Show external links history",
		Long:  "Display the number of external links over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEnums([]string{indicator}, externalLinkIndicators, constants.ErrInvalidIndicator)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			history, err := client.Links().GetExternalHistory(cmd.Context(), hostIDArg(args),
				&webmaster.ExternalLinksHistoryRequest{Indicator: parsed[0]})
			if err != nil {
				return fmt.Errorf("failed to get external links history: %w", err)
			}

			return render(cmd, history, func() *tableData {
				return historyTable(history.Indicators, parsed)
			})
		},
	}

	cmd.Flags().StringVarP(&indicator, "indicator", "i", string(webmaster.ExternalLinkIndicatorLinksTotalCount), "indicator (LINKS_TOTAL_COUNT)")

	return cmd
}
