package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

// NewRecrawlCommand creates the recrawl command group
func NewRecrawlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recrawl",
		Short: "Manage recrawl requests",
		Long:  "Queue pages for recrawl, track the requests and check the daily quota",
	}

	cmd.AddCommand(newRecrawlAddCommand())
	cmd.AddCommand(newRecrawlListCommand())
	cmd.AddCommand(newRecrawlGetCommand())
	cmd.AddCommand(newRecrawlQuotaCommand())

	return cmd
}

func newRecrawlAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add HOST_ID URL",
		Short: "Queue a page for recrawl",
		Long:  "Ask the robot to recrawl a page of the site. Each request uses one unit of the daily quota.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			queued, err := client.Recrawl().Queue(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to queue recrawl: %w", err)
			}

			return render(cmd, queued, func() *tableData {
				data := propertyTable()
				data.add("Task ID", queued.TaskID)

				if queued.QuotaRemainder != nil {
					data.add("Quota Remainder", strconv.FormatInt(*queued.QuotaRemainder, 10))
				}

				return data
			})
		},
	}
}

func newRecrawlListCommand() *cobra.Command {
	var (
		page  pageFlags
		dates dateFlags
	)

	cmd := &cobra.Command{
		Use:     "list HOST_ID",
		Aliases: []string{"ls"},
		Short:   "List recrawl requests",
		Long:    "List the recrawl requests of a site, newest first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := page.page(constants.MaxPageSize)
			if err != nil {
				return err
			}

			dateRange, err := dates.dateRange()
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			tasks, err := client.Recrawl().ListTasks(cmd.Context(), hostIDArg(args), &webmaster.RecrawlTasksRequest{
				Offset:   selector.Offset,
				Limit:    selector.Limit,
				DateFrom: dateRange.DateFrom,
				DateTo:   dateRange.DateTo,
			})
			if err != nil {
				return fmt.Errorf("failed to list recrawl tasks: %w", err)
			}

			return render(cmd, tasks, func() *tableData {
				data := &tableData{header: []string{"Task ID", "URL", "Added", "State"}}
				for _, task := range tasks.Tasks {
					data.add(task.TaskID, task.URL, formatTime(task.AddedTime), humanize(task.State))
				}

				return data
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)
	dates.register(cmd)

	return cmd
}

func newRecrawlGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get HOST_ID TASK_ID",
		Short: "Show a recrawl request",
		Long:  "Display the state of a recrawl request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			task, err := client.Recrawl().GetTask(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to get recrawl task: %w", err)
			}

			return render(cmd, task, func() *tableData {
				data := propertyTable()
				data.add("Task ID", task.TaskID)
				data.add("URL", task.URL)
				data.add("Added", formatTime(task.AddedTime))
				data.add("State", humanize(task.State))

				return data
			})
		},
	}
}

func newRecrawlQuotaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quota HOST_ID",
		Short: "Show recrawl quota",
		Long:  "Display the daily recrawl quota of a site and how much of it remains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			quota, err := client.Recrawl().GetQuota(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to get recrawl quota: %w", err)
			}

			return render(cmd, quota, func() *tableData {
				return quotaTable(quota)
			})
		},
	}
}

func quotaTable(quota *webmaster.RecrawlQuota) *tableData {
	data := propertyTable()
	data.add("Daily Quota", strconv.FormatInt(quota.DailyQuota, 10))
	data.add("Remainder", strconv.FormatInt(quota.QuotaRemainder, 10))

	return data
}
