package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// NewCommitsCommand creates the commits command group.
func NewCommitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "commits",
		Aliases: []string{"commit"},
		Short:   "Inspect repository commits",
		Long:    "List commits and show commit details and diffs",
	}

	cmd.AddCommand(newCommitsListCommand())
	cmd.AddCommand(newCommitsGetCommand())
	cmd.AddCommand(newCommitsDiffCommand())

	return cmd
}

func newCommitsListCommand() *cobra.Command {
	var (
		refName string
		since   string
		until   string
		path    string
		perPage int
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT_ID_OR_PATH",
		Short: "List commits",
		Long:  "List commits of a project, optionally filtered by ref, path, and time window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			options := &gitlab.ListCommitsOptions{
				RefName: refName,
				Path:    path,
				Page:    page,
				PerPage: perPage,
			}

			options.Since, err = parseTimeFlag("since", since)
			if err != nil {
				return err
			}

			options.Until, err = parseTimeFlag("until", until)
			if err != nil {
				return err
			}

			commits, err := client.Commits().List(context.Background(), args[0], options)
			if err != nil {
				return fmt.Errorf("failed to list commits: %w", err)
			}

			return outputCommits(commits)
		},
	}

	cmd.Flags().StringVar(&refName, "ref", "", "branch or tag name")
	cmd.Flags().StringVar(&since, "since", "", "only commits after this date (RFC 3339)")
	cmd.Flags().StringVar(&until, "until", "", "only commits before this date (RFC 3339)")
	cmd.Flags().StringVar(&path, "path", "", "only commits touching this path")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parsing --%s: %w", name, err)
	}

	return &parsed, nil
}

func outputCommits(commits []gitlab.Commit) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(commits)
	case OutputFormatYAML:
		return StandardYAMLRenderer(commits)
	default:
		return renderCommitsTable(commits)
	}
}

func renderCommitsTable(commits []gitlab.Commit) error {
	if len(commits) == 0 {
		_, _ = os.Stdout.WriteString("No commits found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("SHA", "Title", "Author", "Date")

	for _, commit := range commits {
		_ = table.Append(commit.ShortID, commit.Title, commit.AuthorName, formatDate(commit.AuthoredDate))
	}

	_ = table.Render()

	return nil
}

func newCommitsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID_OR_PATH SHA",
		Short: "Get commit details",
		Long:  "Display detailed information about a single commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			commit, err := client.Commits().Get(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get commit: %w", err)
			}

			return outputCommitDetails(commit)
		},
	}
}

func outputCommitDetails(commit *gitlab.Commit) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(commit)
	case OutputFormatYAML:
		return StandardYAMLRenderer(commit)
	default:
		return renderCommitDetailsTable(commit)
	}
}

func renderCommitDetailsTable(commit *gitlab.Commit) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("SHA", commit.ID)
	_ = table.Append("Title", commit.Title)
	_ = table.Append("Author", fmt.Sprintf("%s <%s>", commit.AuthorName, commit.AuthorEmail))
	_ = table.Append("Authored", formatDateTime(commit.AuthoredDate))
	_ = table.Append("Committed", formatDateTime(commit.CommittedDate))

	if commit.Stats != nil {
		_ = table.Append("Changes", fmt.Sprintf("+%d -%d", commit.Stats.Additions, commit.Stats.Deletions))
	}

	_, _ = os.Stdout.WriteString("Commit details:\n\n")

	_ = table.Render()

	return nil
}

func newCommitsDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff PROJECT_ID_OR_PATH SHA",
		Short: "Show a commit diff",
		Long:  "Display the file diffs introduced by a commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			diffs, err := client.Commits().GetDiff(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get commit diff: %w", err)
			}

			return outputDiffs(diffs)
		},
	}
}

func outputDiffs(diffs []gitlab.Diff) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(diffs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(diffs)
	default:
		for _, diff := range diffs {
			header := diff.NewPath
			switch {
			case diff.NewFile:
				header += " (new)"
			case diff.DeletedFile:
				header += " (deleted)"
			case diff.RenamedFile:
				header = diff.OldPath + " -> " + diff.NewPath
			}

			_, _ = fmt.Fprintf(os.Stdout, "--- %s\n%s\n", header, diff.Diff)
		}

		return nil
	}
}
