package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects and test runs",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsRunsCommand())
	cmd.AddCommand(newProjectsCreateRunCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Projects().List(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return renderOutput(list, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Type")

				for _, project := range list.Data {
					_ = table.Append(strconv.FormatInt(project.ID, 10), project.Name, project.Type)
				}

				return table.Render()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of projects (0 = unlimited)")

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Look up a project by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return renderOutput(project, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", strconv.FormatInt(project.ID, 10))
				_ = table.Append("Name", project.Name)
				_ = table.Append("Type", project.Type)

				return table.Render()
			})
		},
	}
}

func newProjectsRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs PROJECT_ID",
		Short: "List test runs for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Projects().ListTestRuns(context.Background(), projectID, limit)
			if err != nil {
				return fmt.Errorf("failed to list test runs: %w", err)
			}

			return renderOutput(list, func() error {
				return renderTestRunTable(list.Data)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of test runs (0 = unlimited)")

	return cmd
}

func newProjectsCreateRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-run PROJECT_ID",
		Short: "Start a new test run in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			run, err := client.Projects().CreateTestRun(context.Background(), projectID)
			if err != nil {
				return fmt.Errorf("failed to create test run: %w", err)
			}

			return renderOutput(run, func() error {
				return renderTestRunTable([]testdroid.TestRun{*run})
			})
		},
	}
}

func renderTestRunTable(runs []testdroid.TestRun) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "State", "Created")

	for _, run := range runs {
		created := ""
		if run.CreateTime > 0 {
			created = time.UnixMilli(run.CreateTime).Format(time.RFC3339)
		}

		_ = table.Append(strconv.FormatInt(run.ID, 10), run.DisplayName, run.State, created)
	}

	return table.Render()
}
