package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewLabelsCommand creates the labels command group.
func NewLabelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Look up label groups and labels",
	}

	cmd.AddCommand(newLabelsGroupCommand())
	cmd.AddCommand(newLabelsFindCommand())

	return cmd
}

func newLabelsGroupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "group NAME",
		Short: "Look up a label group by display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			group, err := client.LabelGroups().GetGroup(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get label group: %w", err)
			}

			return renderOutput(group, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", strconv.FormatInt(group.ID, 10))
				_ = table.Append("Name", group.Name)
				_ = table.Append("Display Name", group.DisplayName)

				return table.Render()
			})
		},
	}
}

func newLabelsFindCommand() *cobra.Command {
	var groupName string

	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Look up a label by display name inside a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			group, err := client.LabelGroups().GetGroup(ctx, groupName)
			if err != nil {
				return fmt.Errorf("failed to get label group: %w", err)
			}

			label, err := client.LabelGroups().GetLabel(ctx, args[0], group)
			if err != nil {
				return fmt.Errorf("failed to get label: %w", err)
			}

			return renderOutput(label, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("ID", strconv.FormatInt(label.ID, 10))
				_ = table.Append("Name", label.Name)
				_ = table.Append("Display Name", label.DisplayName)
				_ = table.Append("Group", group.DisplayName)

				return table.Render()
			})
		},
	}

	cmd.Flags().StringVar(&groupName, "group", "", "label group display name (required)")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}
