package commands

import (
	"fmt"
	"io"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// SiteReport combines the main read endpoints of one site.
type SiteReport struct {
	Host        *webmaster.FullHostInfo           `json:"host"                  yaml:"host"`
	Summary     *webmaster.HostSummary            `json:"summary"               yaml:"summary"`
	Diagnostics *webmaster.DiagnosticsResponse    `json:"diagnostics"           yaml:"diagnostics"`
	Quota       *webmaster.RecrawlQuota           `json:"recrawl_quota"         yaml:"recrawl_quota"`
	TopQueries  *webmaster.PopularQueriesResponse `json:"top_queries,omitempty" yaml:"top_queries,omitempty"`
}

type reportSection struct {
	title string
	table *tableData
}

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var queries int

	cmd := &cobra.Command{
		Use:   "report HOST_ID",
		Short: "Show a site overview",
		Long: `Fetch host information, summary statistics, diagnostics, recrawl quota and
the top search queries of a verified site and display them together.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if queries < 0 || queries > constants.MaxPopularQueriesLimit {
				return fmt.Errorf("%w: queries %d, expected 0-%d", constants.ErrInvalidLimit, queries, constants.MaxPopularQueriesLimit)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			report, err := buildReport(cmd, client, hostIDArg(args), queries)
			if err != nil {
				return err
			}

			return renderReport(cmd, report)
		},
	}

	cmd.Flags().IntVar(&queries, "queries", constants.ReportSampleLimit, "number of top queries to include, 0 to skip")

	return cmd
}

// buildReport issues the independent reads concurrently. The first failure cancels the rest.
func buildReport(cmd *cobra.Command, client webmaster.Client, hostID string, queries int) (*SiteReport, error) {
	report := &SiteReport{}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(constants.DefaultConcurrencyLimit)

	g.Go(func() error {
		host, err := client.Hosts().Get(ctx, hostID)
		if err != nil {
			return fmt.Errorf("failed to get host: %w", err)
		}

		report.Host = host

		return nil
	})

	g.Go(func() error {
		summary, err := client.Statistics().GetSummary(ctx, hostID)
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}

		report.Summary = summary

		return nil
	})

	g.Go(func() error {
		diagnostics, err := client.Diagnostics().Get(ctx, hostID)
		if err != nil {
			return fmt.Errorf("failed to get diagnostics: %w", err)
		}

		report.Diagnostics = diagnostics

		return nil
	})

	g.Go(func() error {
		quota, err := client.Recrawl().GetQuota(ctx, hostID)
		if err != nil {
			return fmt.Errorf("failed to get recrawl quota: %w", err)
		}

		report.Quota = quota

		return nil
	})

	if queries > 0 {
		g.Go(func() error {
			top, err := client.SearchQueries().ListPopular(ctx, hostID, &webmaster.PopularQueriesRequest{
				OrderBy:        webmaster.QueryOrderFieldTotalShows,
				QueryIndicator: []webmaster.QueryIndicator{webmaster.QueryIndicatorTotalShows, webmaster.QueryIndicatorTotalClicks},
				Limit:          &queries,
			})
			if err != nil {
				return fmt.Errorf("failed to list popular queries: %w", err)
			}

			report.TopQueries = top

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *SiteReport) sections() []reportSection {
	host := propertyTable()
	host.add("Host ID", r.Host.HostID)
	host.add("URL", r.Host.UnicodeHostURL)
	host.add("Verified", fmt.Sprintf("%t", r.Host.Verified))

	if r.Host.HostDataStatus != nil {
		host.add("Data Status", humanize(*r.Host.HostDataStatus))
	}

	sections := []reportSection{
		{title: "Host", table: host},
		{title: "Summary", table: summaryTable(r.Summary)},
		{title: "Diagnostics", table: diagnosticsTable(r.Diagnostics, false)},
		{title: "Recrawl Quota", table: quotaTable(r.Quota)},
	}

	if r.TopQueries != nil {
		top := &tableData{header: []string{"Query", "Shows", "Clicks"}}
		for _, query := range r.TopQueries.Queries {
			top.add(query.QueryText,
				formatFloat(query.Indicators[webmaster.QueryIndicatorTotalShows]),
				formatFloat(query.Indicators[webmaster.QueryIndicatorTotalClicks]))
		}

		title := fmt.Sprintf("Top Queries (%s to %s)", r.TopQueries.DateFrom, r.TopQueries.DateTo)
		sections = append(sections, reportSection{title: title, table: top})
	}

	return sections
}

func renderReport(cmd *cobra.Command, report *SiteReport) error {
	out := cmd.OutOrStdout()

	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		return renderJSON(out, report)
	case constants.FormatYAML:
		return renderYAML(out, report)
	case constants.FormatMarkdown:
		return renderReportMarkdown(out, report)
	case constants.FormatTable, "":
		for i, section := range report.sections() {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}

			_, _ = fmt.Fprintf(out, "%s:\n", section.title)

			err := renderTable(out, section.table)
			if err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

func renderReportMarkdown(out io.Writer, report *SiteReport) error {
	md := markdown.NewMarkdown(out)
	md.H1("Site Report: " + report.Host.UnicodeHostURL)
	md.PlainText("")

	for _, section := range report.sections() {
		md.H2(section.title)
		md.PlainText("")

		if len(section.table.rows) == 0 {
			md.PlainText("No data.")
		} else {
			md.Table(markdown.TableSet{
				Header: section.table.header,
				Rows:   section.table.rows,
			})
		}

		md.PlainText("")
	}

	err := md.Build()
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	return nil
}
