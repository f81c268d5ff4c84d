// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish writes publication records to the files the static site
// reads, and reads them back.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubsync/pkg/types"
)

// EncodeJSON renders records as a 2-space indented JSON array. Non-ASCII
// and HTML characters are written literally. A nil slice renders as [].
func EncodeJSON(records []types.Publication) ([]byte, error) {
	if records == nil {
		records = []types.Publication{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes records to path, creating parent directories as needed
// and replacing any existing file.
func WriteJSON(records []types.Publication, path string) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteYAML writes records to path as a YAML sequence.
func WriteYAML(records []types.Publication, path string) error {
	if records == nil {
		records = []types.Publication{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeFile(path, data)
}

// ReadJSON reads a publication file written by WriteJSON.
func ReadJSON(path string) ([]types.Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.Publication
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// writeFile writes data to a temp file beside path and renames it into
// place, so readers see either the old file or the complete new one.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".publish-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.Publication, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No publications.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-4s  %-60s  %-30s  %s\n", "#", "Year", "Title", "Journal", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-4s  %-60s  %-30s  %s\n",
			i+1, r.Year, truncate(r.Title, 60), truncate(r.Journal, 30), r.DOI)
	}

	fmt.Fprintf(w, "\n%d publications\n", len(records))
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
