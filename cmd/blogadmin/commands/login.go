package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/netdepviet/blogadmin/internal/constants"
)

// NewLoginCommand creates the login command. The admin API itself carries no
// session; login verifies the endpoint is reachable and records the signed-in
// state locally, which gates mutating commands.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		username    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the blog admin API",
		Long:  "Verify the API endpoint and record the signed-in state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return fmt.Errorf("API endpoint is required")
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			if password == "" {
				return fmt.Errorf("password is required")
			}

			client, err := CreateClientWithAPI(apiEndpoint)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
			defer cancel()

			_, err = client.Categories().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("verifying API endpoint: %w", err)
			}

			config := loadConfig()
			config.API = apiEndpoint
			config.LoggedIn = true
			config.LastLogin = time.Now().Format(time.RFC3339)
			config.Username = username

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s as %s\n", apiEndpoint, username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the blog admin API",
		Long:  "Clear the locally recorded signed-in state",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.LoggedIn = false
			config.Username = ""

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("Logged out\n")

			return nil
		},
	}
}
