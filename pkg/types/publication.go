// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sentinel values substituted for fields the ORCID record does not carry.
const (
	UnknownYear    = "N/A"
	UnknownTitle   = "Untitled"
	UnknownJournal = "Unknown Journal"
)

// Publication is one entry of the publication list consumed by the site.
// Field order is the JSON key order of the output file.
type Publication struct {
	// Year is the publication year, or UnknownYear.
	Year string `json:"year" yaml:"year"`

	// Title is the work title, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// Journal is the journal title, or UnknownJournal.
	Journal string `json:"journal" yaml:"journal"`

	// DOI is the bare DOI of the work; empty when the work has none.
	DOI string `json:"doi" yaml:"doi"`
}
