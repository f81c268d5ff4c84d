// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one sync: fetch the works, write the output files,
// and optionally archive the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubsync/internal/archive"
	"github.com/pdiddy/pubsync/internal/publish"
	"github.com/pdiddy/pubsync/pkg/types"
)

// Fetcher returns the publications of one researcher. On error it may
// still return records; Run ignores them and publishes an empty list.
type Fetcher interface {
	FetchWorks(ctx context.Context, orcidID string) ([]types.Publication, error)
}

// Options are the resolved inputs of a run. Paths are absolute.
type Options struct {
	ORCIDID string

	// OutputPath is the JSON file the site reads.
	OutputPath string

	// YAMLPath mirrors the output as YAML when set.
	YAMLPath string

	// ArchivePath records the run in a SQLite archive when set.
	ArchivePath string

	// Now stamps the archived run. Defaults to time.Now.
	Now func() time.Time
}

// Summary describes a completed run.
type Summary struct {
	OutputPath string
	Count      int

	// FetchErr is the recovered fetch failure, if any. The output file
	// holds an empty list in that case.
	FetchErr error

	// ArchiveID is the archived run ID, or 0 when not archived.
	ArchiveID int64
}

// Run fetches publications and writes them. A fetch failure is logged and
// replaced by an empty list; only local write failures are returned.
func Run(ctx context.Context, f Fetcher, opts Options, log zerolog.Logger) (Summary, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now()

	log.Info().Str("orcid", opts.ORCIDID).Msg("fetching works")
	pubs, fetchErr := f.FetchWorks(ctx, opts.ORCIDID)
	if fetchErr != nil {
		log.Warn().Err(fetchErr).Str("orcid", opts.ORCIDID).Msg("fetch failed, publishing empty list")
		pubs = []types.Publication{}
	}
	if pubs == nil {
		pubs = []types.Publication{}
	}

	summary := Summary{OutputPath: opts.OutputPath, Count: len(pubs), FetchErr: fetchErr}

	log.Info().Str("path", opts.OutputPath).Msg("writing publications")
	if err := publish.WriteJSON(pubs, opts.OutputPath); err != nil {
		return summary, fmt.Errorf("writing output: %w", err)
	}

	if opts.YAMLPath != "" {
		if err := publish.WriteYAML(pubs, opts.YAMLPath); err != nil {
			return summary, fmt.Errorf("writing YAML mirror: %w", err)
		}
		log.Debug().Str("path", opts.YAMLPath).Msg("wrote YAML mirror")
	}

	if opts.ArchivePath != "" {
		id, err := archiveRun(ctx, opts, started, pubs, fetchErr)
		if err != nil {
			log.Warn().Err(err).Str("archive", opts.ArchivePath).Msg("archiving run failed")
		} else {
			summary.ArchiveID = id
			log.Debug().Int64("run", id).Msg("archived run")
		}
	}

	log.Info().Int("count", summary.Count).Str("path", opts.OutputPath).Msg("done")
	return summary, nil
}

func archiveRun(ctx context.Context, opts Options, started time.Time, pubs []types.Publication, fetchErr error) (int64, error) {
	store, err := archive.Open(opts.ArchivePath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	run := archive.Run{
		ORCIDID:      opts.ORCIDID,
		StartedAt:    started,
		Status:       archive.StatusOK,
		Output:       opts.OutputPath,
		Publications: pubs,
	}
	if fetchErr != nil {
		run.Status = archive.StatusFetchFailed
		run.Error = fetchErr.Error()
	}
	return store.RecordRun(ctx, run)
}
