package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// NewDevicesCommand creates the devices command group.
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Browse the device inventory",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesFindCommand())

	return cmd
}

func newDevicesListCommand() *cobra.Command {
	var (
		limit   int
		labelID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Long:  "List devices in the cloud inventory, optionally filtered by label",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var list *testdroid.DeviceList
			if labelID != 0 {
				list, err = client.Devices().ListWithLabel(ctx, labelID)
			} else {
				list, err = client.Devices().List(ctx, limit)
			}

			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			return renderOutput(list, func() error {
				return renderDeviceTable(list.Data)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of devices (0 = unlimited)")
	cmd.Flags().Int64Var(&labelID, "label-id", 0, "filter by label id (server-side)")

	return cmd
}

func newDevicesFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Find devices by exact display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			devices, err := client.Devices().FindByName(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to find devices: %w", err)
			}

			return renderOutput(devices, func() error {
				return renderDeviceTable(devices)
			})
		},
	}
}

func renderDeviceTable(devices []testdroid.Device) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "OS", "Online", "Locked")

	for _, device := range devices {
		osVersion := device.OSType
		if device.SoftwareVersion != nil && device.SoftwareVersion.ReleaseVersion != "" {
			osVersion = fmt.Sprintf("%s %s", device.OSType, device.SoftwareVersion.ReleaseVersion)
		}

		_ = table.Append(
			strconv.FormatInt(device.ID, 10),
			device.DisplayName,
			osVersion,
			boolMark(device.Online),
			boolMark(device.Locked),
		)
	}

	return table.Render()
}
