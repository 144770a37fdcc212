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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List and inspect GitLab projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		search     string
		membership bool
		owned      bool
		visibility string
		perPage    int
		page       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List projects visible to the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(context.Background(), &gitlab.ListProjectsOptions{
				Search:     search,
				Membership: membership,
				Owned:      owned,
				Visibility: visibility,
				Page:       page,
				PerPage:    perPage,
			})
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return outputProjects(projects)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter projects by name")
	cmd.Flags().BoolVar(&membership, "membership", false, "limit to projects the user is a member of")
	cmd.Flags().BoolVar(&owned, "owned", false, "limit to projects owned by the user")
	cmd.Flags().StringVar(&visibility, "visibility", "", "filter by visibility (public, internal, private)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func outputProjects(projects []gitlab.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects)
	default:
		return renderProjectsTable(projects)
	}
}

func renderProjectsTable(projects []gitlab.Project) error {
	if len(projects) == 0 {
		_, _ = os.Stdout.WriteString("No projects found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Path", "Default Branch", "Visibility", "Last Activity")

	for _, project := range projects {
		_ = table.Append(fmt.Sprintf("%d", project.ID), project.PathWithNamespace,
			project.DefaultBranch, project.Visibility, formatDate(project.LastActivityAt))
	}

	_ = table.Render()

	return nil
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID_OR_PATH",
		Short: "Get project details",
		Long:  "Display detailed information about a project by numeric ID or group/project path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return outputProjectDetails(project)
		},
	}
}

func outputProjectDetails(project *gitlab.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(project)
	case OutputFormatYAML:
		return StandardYAMLRenderer(project)
	default:
		return renderProjectDetailsTable(project)
	}
}

func renderProjectDetailsTable(project *gitlab.Project) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", fmt.Sprintf("%d", project.ID))
	_ = table.Append("Name", project.Name)
	_ = table.Append("Path", project.PathWithNamespace)
	_ = table.Append("Default Branch", project.DefaultBranch)
	_ = table.Append("Visibility", project.Visibility)
	_ = table.Append("Created", formatDateTime(project.CreatedAt))
	_ = table.Append("Last Activity", formatDateTime(project.LastActivityAt))
	_ = table.Append("URL", project.WebURL)

	_, _ = os.Stdout.WriteString("Project details:\n\n")

	_ = table.Render()

	return nil
}
