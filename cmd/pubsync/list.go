// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubsync/internal/publish"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the publications currently in the output file",
	Long: `List reads the publications file written by sync and prints it as a
table, or as JSON with --json. It does not contact ORCID.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output the file contents as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(loadSyncConfig())
	if err != nil {
		return err
	}

	pubs, err := publish.ReadJSON(opts.OutputPath)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := publish.EncodeJSON(pubs)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	publish.FormatTable(pubs, os.Stdout)
	return nil
}
