// Package report renders CIViC query results as flat text reports.
// Rendering is deterministic and line-based; downstream consumers
// depend on the exact layout, so changes here are breaking.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oncotools/civic-mcp/internal/civic"
)

// NoEvidenceFound is the fixed zero-match sentence for evidence
// searches.
const NoEvidenceFound = "No clinical evidence found matching the specified criteria."

// descriptionLimit truncates long descriptions: anything over 300
// characters renders as the first 297 plus an ellipsis marker.
const descriptionLimit = 300

// NoEntityFound is the zero-match sentence for detail lookups, e.g.
// NoEntityFound("disease", "X") → "No disease found with name: X".
func NoEntityFound(entity, name string) string {
	return fmt.Sprintf("No %s found with name: %s", entity, name)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}
	return string(runes[:descriptionLimit-3]) + "..."
}

// SearchResults renders an evidence search result. Zero matches yield
// the fixed no-results sentence. Every matched record is a titled
// block; scalar fields always render (N/A when missing), structured
// sections render only when present.
func SearchResults(conn *civic.EvidenceConnection) string {
	if len(conn.Edges) == 0 {
		return NoEvidenceFound
	}

	lines := []string{
		"## Clinical Evidence Search Results",
		fmt.Sprintf("**Total Evidence Items Found:** %s", comma(conn.TotalCount)),
		fmt.Sprintf("**Showing:** %d results", len(conn.Edges)),
		"",
	}

	for i, edge := range conn.Edges {
		ev := edge.Node
		lines = append(lines,
			fmt.Sprintf("### %d. Evidence Item %d", i+1, ev.ID),
			fmt.Sprintf("**Name:** %s", orNA(ev.Name)),
			fmt.Sprintf("**Evidence Level:** %s", orNA(ev.EvidenceLevel)),
			fmt.Sprintf("**Evidence Type:** %s", orNA(ev.EvidenceType)),
			fmt.Sprintf("**Clinical Significance:** %s", orNA(ev.ClinicalSignificance)),
			fmt.Sprintf("**Status:** %s", orNA(ev.Status)),
			"",
		)

		if ev.Disease != nil {
			lines = append(lines, fmt.Sprintf("**Disease:** %s", orNA(ev.Disease.Name)))
		}

		if ev.MolecularProfile != nil && len(ev.MolecularProfile.Variants) > 0 {
			genes := make([]string, 0, len(ev.MolecularProfile.Variants))
			seen := make(map[string]bool)
			variants := make([]string, 0, len(ev.MolecularProfile.Variants))
			for _, v := range ev.MolecularProfile.Variants {
				if v.Gene != nil {
					name := orUnknown(v.Gene.Name)
					if !seen[name] {
						seen[name] = true
						genes = append(genes, name)
					}
				}
				variants = append(variants, orUnknown(v.Name))
			}
			lines = append(lines,
				fmt.Sprintf("**Genes:** %s", strings.Join(genes, ", ")),
				fmt.Sprintf("**Variants:** %s", strings.Join(variants, ", ")),
			)
		}

		if len(ev.Therapies) > 0 {
			names := make([]string, len(ev.Therapies))
			for j, t := range ev.Therapies {
				names[j] = orUnknown(t.Name)
			}
			lines = append(lines, fmt.Sprintf("**Therapies:** %s", strings.Join(names, ", ")))
		}

		if ev.Source != nil {
			citation := orNA(ev.Source.Citation)
			if ev.Source.PubmedID != "" {
				lines = append(lines, fmt.Sprintf("**Source:** %s (PMID: %s)", citation, ev.Source.PubmedID))
			} else {
				lines = append(lines, fmt.Sprintf("**Source:** %s", citation))
			}
		}

		if ev.Description != "" {
			lines = append(lines, fmt.Sprintf("**Description:** %s", truncate(ev.Description)), "")
		} else {
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

func aliasNames(aliases []civic.NamedRecord) []string {
	names := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// DiseaseDetails renders one disease detail record.
func DiseaseDetails(d *civic.DiseaseDetail) string {
	lines := []string{
		fmt.Sprintf("## Disease Details: %s", orNA(d.Name)),
		fmt.Sprintf("**ID:** %d", d.ID),
		fmt.Sprintf("**DOID:** %s", orNA(d.Doid)),
		"",
	}

	if names := aliasNames(d.DiseaseAliases); len(names) > 0 {
		lines = append(lines, fmt.Sprintf("**Aliases:** %s", strings.Join(names, ", ")), "")
	}

	lines = append(lines,
		fmt.Sprintf("**Evidence Items:** %s", comma(d.EvidenceItems.TotalCount)),
		fmt.Sprintf("**Assertions:** %s", comma(d.Assertions.TotalCount)),
		fmt.Sprintf("**Molecular Profiles:** %s", comma(d.MolecularProfiles.TotalCount)),
		"",
	)

	if d.DiseaseURL != "" {
		lines = append(lines, fmt.Sprintf("**URL:** %s", d.DiseaseURL))
	}

	return strings.Join(lines, "\n")
}

// GeneDetails renders one gene detail record with its top variants.
func GeneDetails(g *civic.GeneDetail) string {
	entrez := "N/A"
	if g.EntrezID != nil {
		entrez = fmt.Sprintf("%d", *g.EntrezID)
	}
	lines := []string{
		fmt.Sprintf("## Gene Details: %s", orNA(g.Name)),
		fmt.Sprintf("**ID:** %d", g.ID),
		fmt.Sprintf("**Entrez ID:** %s", entrez),
		"",
	}

	if g.Description != "" {
		lines = append(lines, fmt.Sprintf("**Description:** %s", g.Description), "")
	}
	if names := aliasNames(g.GeneAliases); len(names) > 0 {
		lines = append(lines, fmt.Sprintf("**Aliases:** %s", strings.Join(names, ", ")), "")
	}

	lines = append(lines,
		fmt.Sprintf("**Variants:** %s", comma(g.Variants.TotalCount)),
		fmt.Sprintf("**Evidence Items:** %s", comma(g.EvidenceItems.TotalCount)),
		fmt.Sprintf("**Assertions:** %s", comma(g.Assertions.TotalCount)),
		"",
	)

	if len(g.Variants.Edges) > 0 {
		lines = append(lines, "**Top Variants:**")
		for i, edge := range g.Variants.Edges {
			if i == 5 {
				break
			}
			v := edge.Node
			lines = append(lines, fmt.Sprintf("  %d. %s (%d evidence items)",
				i+1, orUnknown(v.Name), v.EvidenceItems.TotalCount))
		}
	}

	return strings.Join(lines, "\n")
}

// TherapyDetails renders one therapy detail record.
func TherapyDetails(t *civic.TherapyDetail) string {
	lines := []string{
		fmt.Sprintf("## Therapy Details: %s", orNA(t.Name)),
		fmt.Sprintf("**ID:** %d", t.ID),
		fmt.Sprintf("**NCIT ID:** %s", orNA(t.NcitID)),
		"",
	}

	if names := aliasNames(t.TherapyAliases); len(names) > 0 {
		lines = append(lines, fmt.Sprintf("**Aliases:** %s", strings.Join(names, ", ")), "")
	}

	lines = append(lines,
		fmt.Sprintf("**Evidence Items:** %s", comma(t.EvidenceItems.TotalCount)),
		fmt.Sprintf("**Assertions:** %s", comma(t.Assertions.TotalCount)),
		"",
	)

	if t.TherapyURL != "" {
		lines = append(lines, fmt.Sprintf("**URL:** %s", t.TherapyURL))
	}

	return strings.Join(lines, "\n")
}

// Stats renders the database summary statistics.
func Stats(s *civic.SummaryStats) string {
	lines := []string{
		"## CIViC Database Summary Statistics",
		"",
		fmt.Sprintf("**Evidence Items:** %s", comma(s.EvidenceItems.TotalCount)),
		fmt.Sprintf("**Genes:** %s", comma(s.Genes.TotalCount)),
		fmt.Sprintf("**Variants:** %s", comma(s.Variants.TotalCount)),
		fmt.Sprintf("**Diseases:** %s", comma(s.Diseases.TotalCount)),
		fmt.Sprintf("**Therapies:** %s", comma(s.Therapies.TotalCount)),
		fmt.Sprintf("**Molecular Profiles:** %s", comma(s.MolecularProfiles.TotalCount)),
		fmt.Sprintf("**Assertions:** %s", comma(s.Assertions.TotalCount)),
	}
	return strings.Join(lines, "\n")
}
