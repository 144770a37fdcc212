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

// NewMergeRequestsCommand creates the merge requests command group.
func NewMergeRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mrs",
		Aliases: []string{"mr", "merge-requests"},
		Short:   "Manage merge requests",
		Long:    "List, inspect, and create merge requests",
	}

	cmd.AddCommand(newMergeRequestsListCommand())
	cmd.AddCommand(newMergeRequestsGetCommand())
	cmd.AddCommand(newMergeRequestsCreateCommand())

	return cmd
}

func newMergeRequestsListCommand() *cobra.Command {
	var (
		state        string
		targetBranch string
		sourceBranch string
		perPage      int
		page         int
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT_ID_OR_PATH",
		Short: "List merge requests",
		Long:  "List merge requests of a project, optionally filtered by state and branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			mergeRequests, err := client.MergeRequests().List(context.Background(), args[0], &gitlab.ListMergeRequestsOptions{
				State:        state,
				TargetBranch: targetBranch,
				SourceBranch: sourceBranch,
				Page:         page,
				PerPage:      perPage,
			})
			if err != nil {
				return fmt.Errorf("failed to list merge requests: %w", err)
			}

			return outputMergeRequests(mergeRequests)
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by state (opened, closed, merged, locked)")
	cmd.Flags().StringVar(&targetBranch, "target-branch", "", "filter by target branch")
	cmd.Flags().StringVar(&sourceBranch, "source-branch", "", "filter by source branch")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func outputMergeRequests(mergeRequests []gitlab.MergeRequest) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(mergeRequests)
	case OutputFormatYAML:
		return StandardYAMLRenderer(mergeRequests)
	default:
		return renderMergeRequestsTable(mergeRequests)
	}
}

func renderMergeRequestsTable(mergeRequests []gitlab.MergeRequest) error {
	if len(mergeRequests) == 0 {
		_, _ = os.Stdout.WriteString("No merge requests found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("IID", "Title", "State", "Source", "Target", "Updated")

	for _, mergeRequest := range mergeRequests {
		_ = table.Append(strconv.Itoa(mergeRequest.IID), mergeRequest.Title, mergeRequest.State,
			mergeRequest.SourceBranch, mergeRequest.TargetBranch, formatDate(mergeRequest.UpdatedAt))
	}

	_ = table.Render()

	return nil
}

func newMergeRequestsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID_OR_PATH IID",
		Short: "Get merge request details",
		Long:  "Display detailed information about a merge request by its project-local IID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			iid, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing merge request IID: %w", err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			mergeRequest, err := client.MergeRequests().Get(context.Background(), args[0], iid)
			if err != nil {
				return fmt.Errorf("failed to get merge request: %w", err)
			}

			return outputMergeRequestDetails(mergeRequest)
		},
	}
}

func outputMergeRequestDetails(mergeRequest *gitlab.MergeRequest) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(mergeRequest)
	case OutputFormatYAML:
		return StandardYAMLRenderer(mergeRequest)
	default:
		return renderMergeRequestDetailsTable(mergeRequest)
	}
}

func renderMergeRequestDetailsTable(mergeRequest *gitlab.MergeRequest) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("IID", strconv.Itoa(mergeRequest.IID))
	_ = table.Append("Title", mergeRequest.Title)
	_ = table.Append("State", mergeRequest.State)
	_ = table.Append("Source", mergeRequest.SourceBranch)
	_ = table.Append("Target", mergeRequest.TargetBranch)
	_ = table.Append("Draft", formatBool(mergeRequest.Draft))

	if mergeRequest.Author != nil {
		_ = table.Append("Author", mergeRequest.Author.Username)
	}

	_ = table.Append("Created", formatDateTime(mergeRequest.CreatedAt))
	_ = table.Append("Updated", formatDateTime(mergeRequest.UpdatedAt))
	_ = table.Append("URL", mergeRequest.WebURL)

	_, _ = os.Stdout.WriteString("Merge request details:\n\n")

	_ = table.Render()

	return nil
}

func newMergeRequestsCreateCommand() *cobra.Command {
	var (
		sourceBranch       string
		targetBranch       string
		title              string
		description        string
		removeSourceBranch bool
	)

	cmd := &cobra.Command{
		Use:   "create PROJECT_ID_OR_PATH",
		Short: "Create a merge request",
		Long:  "Create a new merge request between two branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			mergeRequest, err := client.MergeRequests().Create(context.Background(), args[0], &gitlab.CreateMergeRequestRequest{
				SourceBranch:       sourceBranch,
				TargetBranch:       targetBranch,
				Title:              title,
				Description:        description,
				RemoveSourceBranch: removeSourceBranch,
			})
			if err != nil {
				return fmt.Errorf("failed to create merge request: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created merge request !%d '%s'\n", mergeRequest.IID, mergeRequest.Title)

			return nil
		},
	}

	cmd.Flags().StringVar(&sourceBranch, "source", "", "source branch (required)")
	cmd.Flags().StringVar(&targetBranch, "target", "", "target branch (required)")
	cmd.Flags().StringVar(&title, "title", "", "merge request title (required)")
	cmd.Flags().StringVar(&description, "description", "", "merge request description")
	cmd.Flags().BoolVar(&removeSourceBranch, "remove-source-branch", false, "delete the source branch when merged")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
