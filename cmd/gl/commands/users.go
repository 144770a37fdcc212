package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Inspect users",
		Long:    "Show the authenticated user or look up users by ID",
	}

	cmd.AddCommand(newUsersCurrentCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersCurrentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the authenticated user",
		Long:  "Display the user account associated with the configured token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Current(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return outputUserDetails(user)
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display information about a user by numeric ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing user ID: %w", err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputUserDetails(user)
		},
	}
}

func outputUserDetails(user *gitlab.User) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(user)
	case OutputFormatYAML:
		return StandardYAMLRenderer(user)
	default:
		return renderUserDetailsTable(user)
	}
}

func renderUserDetailsTable(user *gitlab.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", strconv.Itoa(user.ID))
	_ = table.Append("Username", user.Username)
	_ = table.Append("Name", user.Name)
	_ = table.Append("State", user.State)

	if user.Email != "" {
		_ = table.Append("Email", user.Email)
	}

	_ = table.Append("Created", formatDateTime(user.CreatedAt))
	_ = table.Append("URL", user.WebURL)

	_, _ = os.Stdout.WriteString("User details:\n\n")

	_ = table.Render()

	return nil
}
