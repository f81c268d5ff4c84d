// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import (
	"github.com/pdiddy/pubsync/internal/jsontree"
	"github.com/pdiddy/pubsync/pkg/types"
)

// MaxWorks is the number of work groups kept from a response.
const MaxWorks = 10

const doiType = "doi"

// Extract projects the works response root into publication records. Only
// the first MaxWorks groups are read, and from each group only its first
// work-summary. It never fails: absent fields take their sentinel values.
func Extract(root jsontree.Node) []types.Publication {
	groups := root.Get("group").Array()
	if len(groups) > MaxWorks {
		groups = groups[:MaxWorks]
	}

	pubs := make([]types.Publication, 0, len(groups))
	for _, g := range groups {
		pubs = append(pubs, extractSummary(g.Get("work-summary").Index(0)))
	}
	return pubs
}

func extractSummary(ws jsontree.Node) types.Publication {
	return types.Publication{
		Year:    ws.Get("publication-date", "year", "value").String(types.UnknownYear),
		Title:   ws.Get("title", "title", "value").String(types.UnknownTitle),
		Journal: ws.Get("journal-title", "value").String(types.UnknownJournal),
		DOI:     lastDOI(ws.Get("external-ids", "external-id")),
	}
}

// lastDOI returns the value of the last doi-typed identifier, or "".
func lastDOI(ids jsontree.Node) string {
	doi := ""
	for _, id := range ids.Array() {
		if id.Get("external-id-type").String("") == doiType {
			doi = id.Get("external-id-value").String("")
		}
	}
	return doi
}
