// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubsync/internal/jsontree"
	"github.com/pdiddy/pubsync/pkg/types"
)

func parse(t *testing.T, doc string) jsontree.Node {
	t.Helper()
	root, err := jsontree.Parse([]byte(doc))
	require.NoError(t, err)
	return root
}

func TestExtract_PaperA(t *testing.T) {
	doc := `{"group": [{"work-summary": [{
		"title": {"title": {"value": "Paper A"}},
		"publication-date": {"year": {"value": "2021"}},
		"journal-title": {"value": "Nature"},
		"external-ids": {"external-id": [{"external-id-type": "doi", "external-id-value": "10.1/xyz"}]}
	}]}]}`

	got := Extract(parse(t, doc))
	assert.Equal(t, []types.Publication{
		{Year: "2021", Title: "Paper A", Journal: "Nature", DOI: "10.1/xyz"},
	}, got)
}

func TestExtract_EmptyGroups(t *testing.T) {
	for _, doc := range []string{`{"group": []}`, `{}`, `{"group": null}`, `{"group": {}}`, `[]`, `"text"`} {
		t.Run(doc, func(t *testing.T) {
			got := Extract(parse(t, doc))
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_CapsAtMaxWorksInOrder(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 25} {
		t.Run(fmt.Sprintf("%d groups", n), func(t *testing.T) {
			groups := make([]string, n)
			for i := range groups {
				groups[i] = fmt.Sprintf(`{"work-summary": [{"title": {"title": {"value": "W%d"}}}]}`, i)
			}
			doc := `{"group": [` + strings.Join(groups, ",") + `]}`

			got := Extract(parse(t, doc))
			want := min(n, MaxWorks)
			require.Len(t, got, want)
			for i, p := range got {
				assert.Equal(t, fmt.Sprintf("W%d", i), p.Title)
			}
		})
	}
}

func TestExtract_Sentinels(t *testing.T) {
	unknown := types.Publication{
		Year:    types.UnknownYear,
		Title:   types.UnknownTitle,
		Journal: types.UnknownJournal,
		DOI:     "",
	}

	tests := []struct {
		name  string
		group string
		want  types.Publication
	}{
		{name: "empty summary", group: `{"work-summary": [{}]}`, want: unknown},
		{name: "no work-summary", group: `{}`, want: unknown},
		{name: "empty work-summary", group: `{"work-summary": []}`, want: unknown},
		{name: "null work-summary", group: `{"work-summary": null}`, want: unknown},
		{
			name:  "null intermediates",
			group: `{"work-summary": [{"title": null, "publication-date": null, "journal-title": null, "external-ids": null}]}`,
			want:  unknown,
		},
		{
			name:  "null leaves",
			group: `{"work-summary": [{"title": {"title": {"value": null}}, "publication-date": {"year": null}, "journal-title": {"value": null}, "external-ids": {"external-id": null}}]}`,
			want:  unknown,
		},
		{
			name:  "only title",
			group: `{"work-summary": [{"title": {"title": {"value": "Only title"}}}]}`,
			want:  types.Publication{Year: types.UnknownYear, Title: "Only title", Journal: types.UnknownJournal},
		},
		{
			name:  "only year and journal",
			group: `{"work-summary": [{"publication-date": {"year": {"value": "1999"}}, "journal-title": {"value": "Cell"}}]}`,
			want:  types.Publication{Year: "1999", Title: types.UnknownTitle, Journal: "Cell"},
		},
		{
			name:  "group is not an object",
			group: `"bogus"`,
			want:  unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(parse(t, `{"group": [`+tt.group+`]}`))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestExtract_DOISelection(t *testing.T) {
	tests := []struct {
		name string
		ids  string
		want string
	}{
		{name: "none", ids: `[]`, want: ""},
		{name: "non-doi only", ids: `[{"external-id-type": "isbn", "external-id-value": "978-3"}]`, want: ""},
		{
			name: "last doi wins",
			ids: `[
				{"external-id-type": "doi", "external-id-value": "10.1/first"},
				{"external-id-type": "pmid", "external-id-value": "123"},
				{"external-id-type": "doi", "external-id-value": "10.1/last"}
			]`,
			want: "10.1/last",
		},
		{name: "type is case sensitive", ids: `[{"external-id-type": "DOI", "external-id-value": "10.1/upper"}]`, want: ""},
		{name: "doi without value", ids: `[{"external-id-type": "doi"}]`, want: ""},
		{name: "malformed entries", ids: `[null, 3, "doi", {"external-id-type": "doi", "external-id-value": "10.1/ok"}]`, want: "10.1/ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"group": [{"work-summary": [{"external-ids": {"external-id": ` + tt.ids + `}}]}]}`
			got := Extract(parse(t, doc))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].DOI)
		})
	}
}

func TestExtract_Fixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "works.json"))
	require.NoError(t, err)

	got := Extract(parse(t, string(data)))
	assert.Equal(t, []types.Publication{
		{
			Year:    "2026",
			Title:   "Dynamic Visualization of Amyloid-β Plaques with a Novel NIR-II Reporter",
			Journal: "Analytical Chemistry",
			DOI:     "10.1021/acs.analchem.5c07821",
		},
		{
			Year:    "2025",
			Title:   "Monitoring Acidification Preceding Aβ Deposition in Alzheimer's Disease",
			Journal: types.UnknownJournal,
			DOI:     "10.1002/adhm.2025",
		},
		{
			Year:    types.UnknownYear,
			Title:   types.UnknownTitle,
			Journal: types.UnknownJournal,
		},
	}, got)
}
