package commands

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

// severityOrder lists diagnostics severities from most to least serious.
var severityOrder = []webmaster.SiteProblemSeverity{
	webmaster.SiteProblemSeverityFatal,
	webmaster.SiteProblemSeverityCritical,
	webmaster.SiteProblemSeverityPossibleProblem,
	webmaster.SiteProblemSeverityRecommendation,
}

// NewStatsCommand creates the stats command group
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Show site statistics",
		Long:    "Display site summary statistics and the site quality index history",
	}

	cmd.AddCommand(newStatsSummaryCommand())
	cmd.AddCommand(newStatsSQICommand())

	return cmd
}

func newStatsSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary HOST_ID",
		Short: "Show site summary",
		Long:  "Display the SQI, page counts and problem counts of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			summary, err := client.Statistics().GetSummary(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to get summary: %w", err)
			}

			return render(cmd, summary, func() *tableData {
				return summaryTable(summary)
			})
		},
	}
}

func summaryTable(summary *webmaster.HostSummary) *tableData {
	data := propertyTable()
	data.add("SQI", strconv.FormatInt(summary.SQI, 10))
	data.add("Searchable Pages", strconv.FormatInt(summary.SearchablePagesCount, 10))
	data.add("Excluded Pages", strconv.FormatInt(summary.ExcludedPagesCount, 10))

	for _, severity := range severityOrder {
		if count, ok := summary.SiteProblems[severity]; ok {
			data.add(humanize(severity)+" Problems", strconv.FormatInt(count, 10))
		}
	}

	return data
}

func newStatsSQICommand() *cobra.Command {
	var dates dateFlags

	cmd := &cobra.Command{
		Use:   "sqi HOST_ID",
		Short: "Show SQI history",
		Long:  "Display the site quality index history",
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

			points, err := client.Statistics().GetSQIHistory(cmd.Context(), hostIDArg(args),
				&webmaster.SQIHistoryRequest{DateRange: dateRange})
			if err != nil {
				return fmt.Errorf("failed to get SQI history: %w", err)
			}

			return render(cmd, points, func() *tableData {
				return pointsTable(points, "SQI")
			})
		},
	}

	dates.register(cmd)

	return cmd
}

// NewDiagnosticsCommand creates the diagnostics command
func NewDiagnosticsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "diagnostics HOST_ID",
		Aliases: []string{"diag"},
		Short:   "Show site diagnostics",
		Long:    "Display the site diagnostics problems. Only present problems are shown unless --all is set.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			diagnostics, err := client.Diagnostics().Get(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to get diagnostics: %w", err)
			}

			return render(cmd, diagnostics, func() *tableData {
				return diagnosticsTable(diagnostics, all)
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include absent and undefined problems")

	return cmd
}

func diagnosticsTable(diagnostics *webmaster.DiagnosticsResponse, all bool) *tableData {
	data := &tableData{header: []string{"Problem", "Severity", "State", "Updated"}}

	names := make([]string, 0, len(diagnostics.Problems))
	for name, problem := range diagnostics.Problems {
		if all || problem.State == webmaster.SiteProblemStatePresent {
			names = append(names, name)
		}
	}

	slices.SortFunc(names, func(a, b string) int {
		rankA := slices.Index(severityOrder, diagnostics.Problems[a].Severity)
		rankB := slices.Index(severityOrder, diagnostics.Problems[b].Severity)

		if rankA != rankB {
			return cmp.Compare(rankA, rankB)
		}

		return cmp.Compare(a, b)
	})

	for _, name := range names {
		problem := diagnostics.Problems[name]
		data.add(humanize(name), humanize(problem.Severity), humanize(problem.State),
			formatOptionalTime(problem.LastStateUpdate))
	}

	return data
}
