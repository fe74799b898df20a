package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

// NewSitemapsCommand creates the sitemaps command group
func NewSitemapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sitemaps",
		Aliases: []string{"sitemap"},
		Short:   "Manage sitemaps",
		Long:    "List sitemaps known to the robot and manage sitemaps added by the user",
	}

	cmd.AddCommand(newSitemapsListCommand())
	cmd.AddCommand(newSitemapsGetCommand())
	cmd.AddCommand(newSitemapsUserListCommand())
	cmd.AddCommand(newSitemapsUserGetCommand())
	cmd.AddCommand(newSitemapsAddCommand())
	cmd.AddCommand(newSitemapsDeleteCommand())

	return cmd
}

func newSitemapsListCommand() *cobra.Command {
	var (
		parentID string
		from     string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list HOST_ID",
		Short: "List sitemaps",
		Long:  "List the sitemaps the robot uses for a site. Use --parent to list the children of an index sitemap.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &webmaster.SitemapsRequest{ParentID: parentID, From: from}

			if limit != 0 {
				if limit < 1 || limit > constants.MaxPageSize {
					return fmt.Errorf("%w: limit %d, expected 1-%d", constants.ErrInvalidLimit, limit, constants.MaxPageSize)
				}

				request.Limit = &limit
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			sitemaps, err := client.Sitemaps().List(cmd.Context(), hostIDArg(args), request)
			if err != nil {
				return fmt.Errorf("failed to list sitemaps: %w", err)
			}

			return render(cmd, sitemaps, func() *tableData {
				data := &tableData{header: []string{"Sitemap ID", "URL", "Type", "URLs", "Errors", "Last Access"}}
				for _, sitemap := range sitemaps.Sitemaps {
					data.add(sitemap.SitemapID, sitemap.SitemapURL, humanize(sitemap.SitemapType),
						strconv.FormatInt(sitemap.URLsCount, 10), strconv.FormatInt(sitemap.ErrorsCount, 10),
						formatOptionalTime(sitemap.LastAccessDate))
				}

				return data
			})
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "parent index sitemap ID")
	cmd.Flags().StringVar(&from, "from", "", "sitemap ID to start the page from")
	cmd.Flags().IntVar(&limit, "limit", 0, fmt.Sprintf("page size, 1-%d", constants.MaxPageSize))

	return cmd
}

func newSitemapsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get HOST_ID SITEMAP_ID",
		Short: "Show a sitemap",
		Long:  "Display a sitemap known to the robot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			sitemap, err := client.Sitemaps().Get(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to get sitemap: %w", err)
			}

			return render(cmd, sitemap, func() *tableData {
				data := propertyTable()
				data.add("Sitemap ID", sitemap.SitemapID)
				data.add("URL", sitemap.SitemapURL)
				data.add("Type", humanize(sitemap.SitemapType))
				data.add("URLs", strconv.FormatInt(sitemap.URLsCount, 10))
				data.add("Errors", strconv.FormatInt(sitemap.ErrorsCount, 10))

				if sitemap.ChildrenCount != nil {
					data.add("Children", strconv.FormatInt(*sitemap.ChildrenCount, 10))
				}

				sources := make([]string, 0, len(sitemap.Sources))
				for _, source := range sitemap.Sources {
					sources = append(sources, humanize(source))
				}

				data.add("Sources", joinOrNone(sources))
				data.add("Last Access", formatOptionalTime(sitemap.LastAccessDate))

				return data
			})
		},
	}
}

func newSitemapsUserListCommand() *cobra.Command {
	var page pageFlags

	cmd := &cobra.Command{
		Use:   "user-list HOST_ID",
		Short: "List user-added sitemaps",
		Long:  "List the sitemaps added to a site through the API or the Webmaster UI",
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

			sitemaps, err := client.Sitemaps().ListUserAdded(cmd.Context(), hostIDArg(args),
				&webmaster.UserSitemapsRequest{PageRequest: selector})
			if err != nil {
				return fmt.Errorf("failed to list user sitemaps: %w", err)
			}

			return render(cmd, sitemaps, func() *tableData {
				data := &tableData{header: []string{"Sitemap ID", "URL", "Added"}}
				for _, sitemap := range sitemaps.Sitemaps {
					data.add(sitemap.SitemapID, sitemap.SitemapURL, formatTime(sitemap.AddedDate))
				}

				return data
			})
		},
	}

	page.register(cmd, constants.MaxPageSize)

	return cmd
}

func newSitemapsUserGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "user-get HOST_ID SITEMAP_ID",
		Short: "Show a user-added sitemap",
		Long:  "Display a sitemap added by the user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			sitemap, err := client.Sitemaps().GetUserAdded(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to get user sitemap: %w", err)
			}

			return render(cmd, sitemap, func() *tableData {
				data := propertyTable()
				data.add("Sitemap ID", sitemap.SitemapID)
				data.add("URL", sitemap.SitemapURL)
				data.add("Added", formatTime(sitemap.AddedDate))

				return data
			})
		},
	}
}

func newSitemapsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add HOST_ID URL",
		Short: "Add a sitemap",
		Long:  "Add a sitemap to a site. The sitemap URL must belong to the site.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			added, err := client.Sitemaps().Add(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to add sitemap: %w", err)
			}

			return render(cmd, added, func() *tableData {
				data := propertyTable()
				data.add("Sitemap ID", added.SitemapID)

				return data
			})
		},
	}
}

func newSitemapsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete HOST_ID SITEMAP_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a user-added sitemap",
		Long:    "Remove a sitemap added by the user",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			err = client.Sitemaps().Delete(cmd.Context(), hostIDArg(args), args[1])
			if err != nil {
				return fmt.Errorf("failed to delete sitemap: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sitemap %s deleted\n", args[1])

			return nil
		},
	}
}
