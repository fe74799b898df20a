package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an OAuth token",
		Long: `Verify an OAuth token against GET /user and store it in the configuration file.

Without --token the token is read from the terminal without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				value, err := readToken(cmd)
				if err != nil {
					return err
				}

				token = value
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			viper.Set("token", token)
			// The lookup must run so the stored user ID matches the token.
			viper.Set("user_id", 0)

			client, err := newClient(cmd)
			if err != nil {
				return fmt.Errorf("failed to verify token: %w", err)
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.Token = token
			config.UserID = client.UserID()

			if api := viper.GetString("api"); api != "" {
				config.API = strings.TrimRight(api, "/")
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in as user %d\n", client.UserID())

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "OAuth token (prompted for when omitted)")

	return cmd
}

func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", constants.ErrEmptyToken
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "OAuth token: ")

	byteToken, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return string(byteToken), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored OAuth token",
		Long:  "Clear the token and user ID from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.Token = ""
			config.UserID = 0

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
