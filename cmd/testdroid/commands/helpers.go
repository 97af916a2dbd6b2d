package commands

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bitbar/testdroid-go/pkg/tdclient"
	"github.com/bitbar/testdroid-go/pkg/testdroid"
)

// Static errors for err113 compliance.
var (
	ErrNotConfigured = errors.New("no cloud endpoint configured; run 'testdroid login' or set TESTDROID_ENDPOINT")
)

// createClient builds a client from the effective viper configuration
// (flags, environment, config file).
func createClient() (testdroid.Client, error) {
	config := &testdroid.Config{
		Endpoint:    viper.GetString("endpoint"),
		Username:    viper.GetString("username"),
		Password:    viper.GetString("password"),
		AccessToken: viper.GetString("token"),
		Debug:       viper.GetBool("verbose"),
	}

	if config.Endpoint == "" {
		return nil, ErrNotConfigured
	}

	return tdclient.New(config)
}

// renderOutput writes v as json or yaml when requested, otherwise defers to
// the table renderer.
func renderOutput(v interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(v)
	default:
		return renderTable()
	}
}

// boolMark renders booleans the way the cloud UI does.
func boolMark(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
