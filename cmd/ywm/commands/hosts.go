package commands

import (
	"fmt"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/spf13/cobra"
)

// NewHostsCommand creates the hosts command group
func NewHostsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hosts",
		Aliases: []string{"host", "sites"},
		Short:   "Manage sites",
		Long:    "List, inspect, add and delete the sites of the user's account",
	}

	cmd.AddCommand(newHostsListCommand())
	cmd.AddCommand(newHostsGetCommand())
	cmd.AddCommand(newHostsAddCommand())
	cmd.AddCommand(newHostsDeleteCommand())

	return cmd
}

func newHostsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sites",
		Long:    "List all sites added to the user's account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			hosts, err := client.Hosts().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list hosts: %w", err)
			}

			if len(hosts) == 0 && isTableOutput() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No hosts found")

				return nil
			}

			return render(cmd, hosts, func() *tableData {
				data := &tableData{header: []string{"Host ID", "URL", "Verified", "Main Mirror"}}

				for _, host := range hosts {
					mirror := ""
					if host.MainMirror != nil {
						mirror = host.MainMirror.HostID
					}

					data.add(host.HostID, host.UnicodeHostURL, formatBool(host.Verified), mirror)
				}

				return data
			})
		},
	}
}

func newHostsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get HOST_ID",
		Short: "Show a site",
		Long:  "Display information about a site, including its data status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			host, err := client.Hosts().Get(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to get host: %w", err)
			}

			return render(cmd, host, func() *tableData {
				data := propertyTable()
				data.add("Host ID", host.HostID)
				data.add("ASCII URL", host.ASCIIHostURL)
				data.add("Unicode URL", host.UnicodeHostURL)
				data.add("Verified", fmt.Sprintf("%t", host.Verified))

				if host.HostDisplayName != "" {
					data.add("Display Name", host.HostDisplayName)
				}

				status := constants.NotAvailable
				if host.HostDataStatus != nil {
					status = humanize(*host.HostDataStatus)
				}

				data.add("Data Status", status)

				if host.MainMirror != nil {
					data.add("Main Mirror", host.MainMirror.HostID)
				}

				return data
			})
		},
	}
}

func newHostsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add URL",
		Short: "Add a site",
		Long:  "Add a site to the user's account. The site must then be verified.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			added, err := client.Hosts().Add(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add host: %w", err)
			}

			return render(cmd, added, func() *tableData {
				data := propertyTable()
				data.add("Host ID", added.HostID)

				return data
			})
		},
	}
}

func newHostsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete HOST_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a site",
		Long:    "Remove a site from the user's account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			hostID := hostIDArg(args)

			err = client.Hosts().Delete(cmd.Context(), hostID)
			if err != nil {
				return fmt.Errorf("failed to delete host: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Host %s deleted\n", hostID)

			return nil
		},
	}
}

// NewVerificationCommand creates the verification command group
func NewVerificationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verification",
		Aliases: []string{"verify"},
		Short:   "Verify site ownership",
		Long:    "Check the verification state of a site, start verification and list its owners",
	}

	cmd.AddCommand(newVerificationStatusCommand())
	cmd.AddCommand(newVerificationVerifyCommand())
	cmd.AddCommand(newVerificationOwnersCommand())

	return cmd
}

func newVerificationStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status HOST_ID",
		Short: "Show verification state",
		Long:  "Display the ownership verification state of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			verification, err := client.Verification().GetStatus(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to get verification status: %w", err)
			}

			return renderVerification(cmd, verification)
		},
	}
}

func newVerificationVerifyCommand() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "verify HOST_ID",
		Short: "Start verification",
		Long: `Start an ownership check of a site.

Methods: DNS, META_TAG, HTML_FILE. Place the verification UIN shown by
"verification status" before starting the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verificationType, err := parseEnums([]string{method}, []webmaster.ExplicitVerificationType{
				webmaster.ExplicitVerificationTypeDNS,
				webmaster.ExplicitVerificationTypeMetaTag,
				webmaster.ExplicitVerificationTypeHTMLFile,
			}, constants.ErrInvalidVerificationType)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			verification, err := client.Verification().Verify(cmd.Context(), hostIDArg(args), verificationType[0])
			if err != nil {
				return fmt.Errorf("failed to start verification: %w", err)
			}

			return renderVerification(cmd, verification)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(webmaster.ExplicitVerificationTypeMetaTag), "verification method (DNS, META_TAG, HTML_FILE)")

	return cmd
}

func renderVerification(cmd *cobra.Command, verification *webmaster.HostVerification) error {
	return render(cmd, verification, func() *tableData {
		data := propertyTable()
		data.add("State", humanize(verification.VerificationState))
		data.add("Type", humanize(verification.VerificationType))
		data.add("UIN", verification.VerificationUIN)
		data.add("Latest Check", formatOptionalTime(verification.LatestVerificationTime))

		if verification.FailInfo != nil {
			data.add("Fail Reason", humanize(verification.FailInfo.Reason))

			if verification.FailInfo.Message != "" {
				data.add("Fail Message", verification.FailInfo.Message)
			}
		}

		methods := make([]string, 0, len(verification.ApplicableVerifiers))
		for _, verifier := range verification.ApplicableVerifiers {
			methods = append(methods, string(verifier))
		}

		data.add("Methods", joinOrNone(methods))

		return data
	})
}

func newVerificationOwnersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "owners HOST_ID",
		Short: "List site owners",
		Long:  "List the users with verified rights to a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			owners, err := client.Verification().ListOwners(cmd.Context(), hostIDArg(args))
			if err != nil {
				return fmt.Errorf("failed to list owners: %w", err)
			}

			return render(cmd, owners, func() *tableData {
				data := &tableData{header: []string{"Login", "Type", "UIN", "Verified"}}
				for _, owner := range owners {
					data.add(owner.UserLogin, humanize(owner.VerificationType), owner.VerificationUIN,
						formatOptionalTime(owner.VerificationDate))
				}

				return data
			})
		},
	}
}
