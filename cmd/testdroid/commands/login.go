package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/bitbar/testdroid-go/internal/constants"
	"github.com/bitbar/testdroid-go/pkg/tdclient"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		endpoint string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the cloud",
		Long:  "Authenticate against a Bitbar cloud endpoint and store the credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString("endpoint")
			}

			reader := bufio.NewReader(os.Stdin)

			if endpoint == "" {
				fmt.Print("Cloud endpoint: ")
				endpoint, _ = reader.ReadString('\n')
				endpoint = strings.TrimSpace(endpoint)
			}

			if endpoint == "" {
				return ErrNotConfigured
			}

			if username == "" {
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			client, err := tdclient.New(&testdroid.Config{
				Endpoint: endpoint,
				Username: username,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials by obtaining a token.
			if _, err := client.GetToken(context.Background()); err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			err = saveConfig(endpoint, username, password)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Logged in to %s as %s\n", endpoint, username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "cloud endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

// saveConfig writes the credentials to the config file viper is using, or to
// the default location when none is loaded yet.
func saveConfig(endpoint, username, password string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		dir := filepath.Join(home, ".testdroid")

		err = os.MkdirAll(dir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		path = filepath.Join(dir, "config.yml")
	}

	data, err := yaml.Marshal(map[string]string{
		"endpoint": endpoint,
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
