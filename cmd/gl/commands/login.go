package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
	"github.com/fivetwenty-io/gitlab-client/pkg/glclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		baseURL string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a GitLab instance",
		Long:  "Verify a personal access token against a GitLab API endpoint and store it in the CLI config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = viper.GetString("base-url")
			}

			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("Personal access token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			if token == "" {
				return ErrTokenInputRequired
			}

			client, err := glclient.New(&gitlab.Config{BaseURL: baseURL, Token: token})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			user, err := client.Users().Current(context.Background())
			if err != nil {
				return fmt.Errorf("failed to verify token: %w", err)
			}

			err = persistLogin(baseURL, token)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", user.Username, user.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "personal access token")

	return cmd
}

// persistLogin writes the verified credentials to ~/.gl/config.yml, or the
// file selected with --config.
func persistLogin(baseURL, token string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}

		path = filepath.Join(home, ".gl", "config.yml")
	}

	settings := map[string]string{"token": token}
	if baseURL != "" {
		settings["base-url"] = baseURL
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
