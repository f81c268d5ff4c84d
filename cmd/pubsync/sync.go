// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubsync/internal/orcid"
	"github.com/pdiddy/pubsync/internal/pipeline"
	"github.com/pdiddy/pubsync/internal/publish"
	"github.com/pdiddy/pubsync/pkg/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch ORCID works and write the publications file",
	Long: `Sync requests the researcher's works from the ORCID public API, keeps the
first ten, and writes them as a JSON array of {year, title, journal, doi}.
Missing fields are written as "N/A", "Untitled", "Unknown Journal", and "".

The output file is replaced on every run. With --stdout nothing is written
to disk and the JSON is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		toStdout, _ := cmd.Flags().GetBool("stdout")
		return runSync(cmd, toStdout)
	},
}

func init() {
	syncCmd.Flags().Bool("stdout", false, "print the JSON to stdout instead of writing files")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, toStdout bool) error {
	cfg := loadSyncConfig()
	client := orcid.NewClient(cfg.HTTPConfig)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if toStdout {
		log := newLogger(os.Stderr)
		pubs, err := client.FetchWorks(ctx, cfg.ORCIDID)
		if err != nil {
			log.Warn().Err(err).Str("orcid", cfg.ORCIDID).Msg("fetch failed, printing empty list")
		}
		data, err := publish.EncodeJSON(pubs)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	opts, err := resolveOptions(cfg)
	if err != nil {
		return err
	}

	_, err = pipeline.Run(ctx, client, opts, newLogger(os.Stdout))
	return err
}

// resolveOptions turns configured paths into absolute pipeline paths.
func resolveOptions(cfg types.SyncConfig) (pipeline.Options, error) {
	baseDir, err := baseDir(cfg)
	if err != nil {
		return pipeline.Options{}, err
	}

	output := cfg.Output
	if output == "" {
		output = types.DefaultOutput
	}

	opts := pipeline.Options{
		ORCIDID:    cfg.ORCIDID,
		OutputPath: publish.ResolvePath(baseDir, output),
	}
	if cfg.YAMLOutput != "" {
		opts.YAMLPath = publish.ResolvePath(baseDir, cfg.YAMLOutput)
	}
	if cfg.ArchivePath != "" {
		opts.ArchivePath = publish.ResolvePath(baseDir, cfg.ArchivePath)
	}
	return opts, nil
}

// baseDir returns the configured base directory, or the executable's
// directory when none is set.
func baseDir(cfg types.SyncConfig) (string, error) {
	if cfg.BaseDir != "" {
		abs, err := filepath.Abs(cfg.BaseDir)
		if err != nil {
			return "", fmt.Errorf("resolving base directory: %w", err)
		}
		return abs, nil
	}
	dir, err := publish.ExecutableDir()
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	return dir, nil
}
