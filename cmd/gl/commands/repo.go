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

// NewRepoCommand creates the repository command group.
func NewRepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repo",
		Aliases: []string{"repository"},
		Short:   "Browse repository contents",
		Long:    "List repository trees and fetch file contents",
	}

	cmd.AddCommand(newRepoTreeCommand())
	cmd.AddCommand(newRepoFileCommand())
	cmd.AddCommand(newRepoRawCommand())

	return cmd
}

func newRepoTreeCommand() *cobra.Command {
	var (
		path      string
		ref       string
		recursive bool
		perPage   int
		page      int
	)

	cmd := &cobra.Command{
		Use:   "tree PROJECT_ID_OR_PATH",
		Short: "List a repository tree",
		Long:  "List the files and directories of a repository at a given path and ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			entries, err := client.Repositories().ListTree(context.Background(), args[0], &gitlab.ListTreeOptions{
				Path:      path,
				Ref:       ref,
				Recursive: recursive,
				Page:      page,
				PerPage:   perPage,
			})
			if err != nil {
				return fmt.Errorf("failed to list repository tree: %w", err)
			}

			return outputTreeEntries(entries)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "subtree path")
	cmd.Flags().StringVar(&ref, "ref", "", "branch, tag, or commit SHA")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "descend into subdirectories")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func outputTreeEntries(entries []gitlab.TreeEntry) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(entries)
	case OutputFormatYAML:
		return StandardYAMLRenderer(entries)
	default:
		return renderTreeTable(entries)
	}
}

func renderTreeTable(entries []gitlab.TreeEntry) error {
	if len(entries) == 0 {
		_, _ = os.Stdout.WriteString("No entries found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Type", "Path", "Mode", "ID")

	for _, entry := range entries {
		_ = table.Append(entry.Type, entry.Path, entry.Mode, entry.ID)
	}

	_ = table.Render()

	return nil
}

func newRepoFileCommand() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "file PROJECT_ID_OR_PATH FILE_PATH",
		Short: "Get file metadata and content",
		Long:  "Fetch a repository file with metadata; the content is printed decoded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			file, err := client.Repositories().GetFile(context.Background(), args[0], args[1], ref)
			if err != nil {
				return fmt.Errorf("failed to get file: %w", err)
			}

			return outputFile(file)
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "branch, tag, or commit SHA")

	return cmd
}

func outputFile(file *gitlab.File) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(file)
	case OutputFormatYAML:
		return StandardYAMLRenderer(file)
	default:
		content, err := file.DecodeContent()
		if err != nil {
			return fmt.Errorf("failed to decode file content: %w", err)
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s (%d bytes, ref %s)\n\n", file.FilePath, file.Size, file.Ref)
		_, _ = os.Stdout.Write(content)

		return nil
	}
}

func newRepoRawCommand() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "raw PROJECT_ID_OR_PATH FILE_PATH",
		Short: "Print raw file content",
		Long:  "Fetch a repository file and print its raw bytes to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.Repositories().GetRawFile(context.Background(), args[0], args[1], ref)
			if err != nil {
				return fmt.Errorf("failed to get raw file: %w", err)
			}

			_, _ = os.Stdout.Write(body)

			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "branch, tag, or commit SHA")

	return cmd
}
