// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubsync/internal/archive"
	"github.com/pdiddy/pubsync/internal/publish"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived sync runs",
	Long: `History shows the runs recorded in the SQLite archive (--archive or
archive_path in the config), newest first. Use --run to print the
publications a specific run produced.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the publications of this run ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(loadSyncConfig())
	if err != nil {
		return err
	}
	if opts.ArchivePath == "" {
		return fmt.Errorf("no archive configured: pass --archive or set archive_path")
	}
	if _, err := os.Stat(opts.ArchivePath); err != nil {
		return fmt.Errorf("opening archive %s: %w", opts.ArchivePath, err)
	}

	store, err := archive.Open(opts.ArchivePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		pubs, err := store.Publications(ctx, runID)
		if err != nil {
			return err
		}
		publish.FormatTable(pubs, os.Stdout)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	formatRuns(runs, os.Stdout)
	return nil
}

func formatRuns(runs []archive.RunSummary, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs archived.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-20s  %-19s  %-12s  %-5s  %s\n",
		"Run", "ORCID", "Started", "Status", "Works", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d  %-20s  %-19s  %-12s  %-5d  %s\n",
			r.ID, r.ORCIDID, r.StartedAt.Local().Format(time.DateTime), r.Status, r.Count, r.Error)
	}
}
