// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubsync CLI, which publishes a
// researcher's ORCID works as a JSON file for a static site.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubsync/internal/logging"
	"github.com/pdiddy/pubsync/internal/orcid"
	"github.com/pdiddy/pubsync/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Without a subcommand it performs a sync.
var rootCmd = &cobra.Command{
	Use:   "pubsync",
	Short: "Publish ORCID works as a JSON file for a static site",
	Long: `pubsync fetches a researcher's works from the public ORCID API and writes
the first ten as public/publications.json, relative to the base directory.

Running pubsync without a subcommand is the same as "pubsync sync". When the
ORCID API is unreachable or returns an error, an empty list is written; only a
failure to write the output file makes the run fail.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, false)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pubsync.yaml or ~/.config/pubsync/pubsync.yaml)")
	pf.String("orcid", "", "ORCID identifier of the researcher (default "+types.DefaultORCIDID+")")
	pf.String("base-dir", "", "directory relative output paths are resolved against (default: directory of the executable)")
	pf.String("output", "", "output JSON file (default "+types.DefaultOutput+")")
	pf.Duration("timeout", 0, "ORCID request timeout (default 15s)")
	pf.String("user-agent", "", "User-Agent header for ORCID requests")
	pf.String("yaml", "", "also write the publications as YAML to this file")
	pf.String("archive", "", "record each run in this SQLite database")
	pf.String("log-level", "", "log level: debug, info, warn, error (default info)")
	pf.String("log-format", "", "log format: console or json (default console)")

	for key, flag := range map[string]string{
		"orcid_id":     "orcid",
		"base_dir":     "base-dir",
		"output":       "output",
		"timeout":      "timeout",
		"user_agent":   "user-agent",
		"yaml_output":  "yaml",
		"archive_path": "archive",
		"log.level":    "log-level",
		"log.format":   "log-format",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetDefault("orcid_id", types.DefaultORCIDID)
	viper.SetDefault("output", types.DefaultOutput)
	viper.SetDefault("timeout", orcid.DefaultTimeout)
	viper.SetDefault("user_agent", orcid.DefaultUserAgent)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubsync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubsync"))
		}
	}

	viper.SetEnvPrefix("PUBSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSyncConfig reads the sync settings from viper.
func loadSyncConfig() types.SyncConfig {
	return types.SyncConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		ORCIDID:     viper.GetString("orcid_id"),
		BaseDir:     viper.GetString("base_dir"),
		Output:      viper.GetString("output"),
		YAMLOutput:  viper.GetString("yaml_output"),
		ArchivePath: viper.GetString("archive_path"),
	}
}

// newLogger builds the CLI logger from viper settings.
func newLogger(w io.Writer) zerolog.Logger {
	return logging.New(types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}, w)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
