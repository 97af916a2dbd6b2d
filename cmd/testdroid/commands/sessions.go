package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage device sessions",
	}

	cmd.AddCommand(newSessionsStartCommand())
	cmd.AddCommand(newSessionsStopCommand())

	return cmd
}

func newSessionsStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start DEVICE_ID",
		Short: "Start a device session (lease a device)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid device id %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			session, err := client.DeviceSessions().Start(context.Background(), deviceID)
			if err != nil {
				return fmt.Errorf("failed to start device session: %w", err)
			}

			return renderOutput(session, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Session ID", strconv.FormatInt(session.ID, 10))
				_ = table.Append("State", session.State)

				if session.Device != nil {
					_ = table.Append("Device", session.Device.DisplayName)
				}

				return table.Render()
			})
		},
	}
}

func newSessionsStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop SESSION_ID",
		Short: "Release a device session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.DeviceSessions().Stop(context.Background(), sessionID)
			if err != nil {
				return fmt.Errorf("failed to release device session: %w", err)
			}

			fmt.Printf("Device session %d released\n", sessionID)

			return nil
		},
	}
}
