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

// NewProxyCommand creates the proxy command.
func NewProxyCommand() *cobra.Command {
	var proxyType string

	cmd := &cobra.Command{
		Use:   "proxy SESSION_ID",
		Short: "Wait for a device proxy endpoint",
		Long: `Poll the proxy plugin until an adb or marionette proxy is available for the
given device session. The poll is bounded; it gives up after the retry budget
is exhausted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			proxy, err := client.Proxies().Get(context.Background(), proxyType, sessionID)
			if err != nil {
				return fmt.Errorf("failed to get proxy: %w", err)
			}

			return renderOutput(proxy, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Type", proxy.Type)
				_ = table.Append("Host", proxy.Host)
				_ = table.Append("Port", strconv.Itoa(proxy.Port))
				_ = table.Append("Session ID", strconv.FormatInt(proxy.SessionID, 10))

				if proxy.Type == testdroid.ProxyTypeADB {
					_ = table.Append("Connect", fmt.Sprintf("adb connect %s:%d", proxy.Host, proxy.Port))
				}

				return table.Render()
			})
		},
	}

	cmd.Flags().StringVar(&proxyType, "type", testdroid.ProxyTypeADB, "proxy type (adb or marionette)")

	return cmd
}
