package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewUserCommand creates the user command
func NewUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the user bound to the token",
		Long:  "Call GET /user and display the user ID the token acts for",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return render(cmd, user, func() *tableData {
				data := propertyTable()
				data.add("User ID", strconv.FormatInt(user.UserID, 10))

				return data
			})
		},
	}
}
