package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewBranchesCommand creates the branches command group.
func NewBranchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branches",
		Aliases: []string{"branch"},
		Short:   "Manage repository branches",
		Long:    "List, inspect, create, and delete repository branches",
	}

	cmd.AddCommand(newBranchesListCommand())
	cmd.AddCommand(newBranchesGetCommand())
	cmd.AddCommand(newBranchesCreateCommand())
	cmd.AddCommand(newBranchesDeleteCommand())

	return cmd
}

func newBranchesListCommand() *cobra.Command {
	var (
		search  string
		perPage int
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT_ID_OR_PATH",
		Short: "List branches",
		Long:  "List the branches of a project repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			branches, err := client.Branches().List(context.Background(), args[0], &gitlab.ListBranchesOptions{
				Search:  search,
				Page:    page,
				PerPage: perPage,
			})
			if err != nil {
				return fmt.Errorf("failed to list branches: %w", err)
			}

			return outputBranches(branches)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter branches by name")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func outputBranches(branches []gitlab.Branch) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(branches)
	case OutputFormatYAML:
		return StandardYAMLRenderer(branches)
	default:
		return renderBranchesTable(branches)
	}
}

func renderBranchesTable(branches []gitlab.Branch) error {
	if len(branches) == 0 {
		_, _ = os.Stdout.WriteString("No branches found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Default", "Protected", "Merged", "Commit")

	for _, branch := range branches {
		sha := NotAvailable
		if branch.Commit != nil {
			sha = branch.Commit.ShortID
		}

		_ = table.Append(branch.Name, formatBool(branch.Default),
			formatBool(branch.Protected), formatBool(branch.Merged), sha)
	}

	_ = table.Render()

	return nil
}

func newBranchesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID_OR_PATH BRANCH_NAME",
		Short: "Get branch details",
		Long:  "Display detailed information about a branch, including its head commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			branch, err := client.Branches().Get(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get branch: %w", err)
			}

			return outputBranchDetails(branch)
		},
	}
}

func outputBranchDetails(branch *gitlab.Branch) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(branch)
	case OutputFormatYAML:
		return StandardYAMLRenderer(branch)
	default:
		return renderBranchDetailsTable(branch)
	}
}

func renderBranchDetailsTable(branch *gitlab.Branch) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", branch.Name)
	_ = table.Append("Default", formatBool(branch.Default))
	_ = table.Append("Protected", formatBool(branch.Protected))
	_ = table.Append("Merged", formatBool(branch.Merged))

	if branch.Commit != nil {
		_ = table.Append("Head", branch.Commit.ID)
		_ = table.Append("Head Title", branch.Commit.Title)
	}

	_, _ = os.Stdout.WriteString("Branch details:\n\n")

	_ = table.Render()

	return nil
}

func newBranchesCreateCommand() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "create PROJECT_ID_OR_PATH BRANCH_NAME",
		Short: "Create a branch",
		Long:  "Create a new branch pointing at the given ref",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			branch, err := client.Branches().Create(context.Background(), args[0], args[1], ref)
			if err != nil {
				return fmt.Errorf("failed to create branch: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created branch '%s'\n", branch.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "branch, tag, or commit SHA to branch from (required)")
	_ = cmd.MarkFlagRequired("ref")

	return cmd
}

func newBranchesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT_ID_OR_PATH BRANCH_NAME",
		Short: "Delete a branch",
		Long:  "Delete a repository branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete branch '%s'? (y/N): ", args[1])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Branches().Delete(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to delete branch: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted branch '%s'\n", args[1])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
