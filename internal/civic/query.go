package civic

import (
	"fmt"
	"strings"
)

// Document is one composed GraphQL request: query text plus bound
// variables. Caller-supplied values travel only through Variables,
// never spliced into the query text.
type Document struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// SearchFilters are the optional evidence search filters. The zero
// value of a field means the filter is absent and is omitted from the
// built query entirely.
type SearchFilters struct {
	DiseaseName          string
	TherapyName          string
	GeneName             string
	VariantName          string
	EvidenceType         string // enum, upper-cased
	EvidenceLevel        string // enum, upper-cased
	ClinicalSignificance string // enum, upper-cased
	TherapyType          string
	MolecularProfileName string
	SourceType           string
}

// binding maps one declared query variable to its GraphQL type and
// value.
type binding struct {
	field   string
	gqlType string
	value   any
}

type argBuilder struct {
	bindings []binding
}

func (b *argBuilder) bindString(field, value string) {
	if value == "" {
		return
	}
	b.bindings = append(b.bindings, binding{field: field, gqlType: "String", value: value})
}

// bindEnum upper-cases the value and declares the variable under its
// enum type, so it reaches the endpoint unquoted.
func (b *argBuilder) bindEnum(field, gqlType, value string) {
	if value == "" {
		return
	}
	b.bindings = append(b.bindings, binding{field: field, gqlType: gqlType, value: strings.ToUpper(value)})
}

func (b *argBuilder) bindInt(field string, value int) {
	b.bindings = append(b.bindings, binding{field: field, gqlType: "Int!", value: value})
}

// declarations renders "$diseaseName: String, $first: Int!".
func (b *argBuilder) declarations() string {
	parts := make([]string, len(b.bindings))
	for i, bd := range b.bindings {
		parts[i] = fmt.Sprintf("$%s: %s", bd.field, bd.gqlType)
	}
	return strings.Join(parts, ", ")
}

// arguments renders "diseaseName: $diseaseName, first: $first".
func (b *argBuilder) arguments() string {
	parts := make([]string, len(b.bindings))
	for i, bd := range b.bindings {
		parts[i] = fmt.Sprintf("%s: $%s", bd.field, bd.field)
	}
	return strings.Join(parts, ", ")
}

func (b *argBuilder) variables() map[string]any {
	vars := make(map[string]any, len(b.bindings))
	for _, bd := range b.bindings {
		vars[bd.field] = bd.value
	}
	return vars
}

const evidenceItemSelection = `totalCount
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
        edges {
            node {
                id
                name
                description
                evidenceLevel
                evidenceType
                evidenceDirection
                clinicalSignificance
                therapyInteractionType
                status
                significance
                molecularProfile {
                    id
                    name
                    variants {
                        id
                        name
                        gene {
                            id
                            name
                            entrezId
                        }
                    }
                }
                disease {
                    id
                    name
                    doid
                    diseaseUrl
                }
                therapies {
                    id
                    name
                    ncitId
                    therapyUrl
                }
                source {
                    id
                    citation
                    sourceType
                    publicationDate
                    journal
                    fullJournalTitle
                    pubmedId
                }
                phenotypes {
                    id
                    name
                    hpoId
                }
                variantOrigin
                ampLevel
                nccnGuideline
                fdaApproval
                regulatoryApproval
            }
        }`

// BuildSearchQuery turns a filter set and a requested page size into
// one query document. Present filters bind in a fixed order, so
// identical filter sets always produce identical query text. The page
// size is clamped to [1, maxResults] and results sort ascending by
// evidence level.
func BuildSearchQuery(f SearchFilters, pageSize, maxResults int) Document {
	b := &argBuilder{}
	b.bindString("diseaseName", f.DiseaseName)
	b.bindString("therapyName", f.TherapyName)
	b.bindString("geneName", f.GeneName)
	b.bindString("variantName", f.VariantName)
	b.bindEnum("evidenceType", "EvidenceType", f.EvidenceType)
	b.bindEnum("evidenceLevel", "EvidenceLevel", f.EvidenceLevel)
	b.bindEnum("clinicalSignificance", "EvidenceClinicalSignificance", f.ClinicalSignificance)
	b.bindString("therapyType", f.TherapyType)
	b.bindString("molecularProfileName", f.MolecularProfileName)
	b.bindString("sourceType", f.SourceType)
	b.bindInt("first", clampPageSize(pageSize, maxResults))

	query := fmt.Sprintf(`query SearchClinicalEvidence(%s) {
    evidenceItems(%s, sortBy: {field: EVIDENCE_LEVEL, direction: ASC}) {
        %s
    }
}`, b.declarations(), b.arguments(), evidenceItemSelection)

	return Document{Query: query, Variables: b.variables()}
}

func clampPageSize(pageSize, maxResults int) int {
	if pageSize > maxResults {
		return maxResults
	}
	if pageSize < 1 {
		return 1
	}
	return pageSize
}

// BuildDiseaseQuery requests one disease's attributes, aliases, and
// nested totals of related evidence, assertions, and molecular
// profiles.
func BuildDiseaseQuery(name string) Document {
	query := `query GetDiseaseDetails($name: String!) {
    diseases(name: $name) {
        id
        name
        doid
        diseaseUrl
        diseaseAliases {
            name
        }
        evidenceItems {
            totalCount
        }
        assertions {
            totalCount
        }
        molecularProfiles {
            totalCount
        }
    }
}`
	return Document{Query: query, Variables: map[string]any{"name": name}}
}

// BuildGeneQuery requests one gene's attributes, aliases, nested
// totals, and its variant edges with per-variant evidence counts.
func BuildGeneQuery(name string) Document {
	query := `query GetGeneDetails($name: String!) {
    genes(name: $name) {
        id
        name
        entrezId
        description
        geneAliases {
            name
        }
        variants {
            totalCount
            edges {
                node {
                    id
                    name
                    variantAliases {
                        name
                    }
                    molecularProfiles {
                        totalCount
                    }
                    evidenceItems {
                        totalCount
                    }
                }
            }
        }
        evidenceItems {
            totalCount
        }
        assertions {
            totalCount
        }
    }
}`
	return Document{Query: query, Variables: map[string]any{"name": name}}
}

// BuildTherapyQuery requests one therapy's attributes, aliases, and
// nested totals.
func BuildTherapyQuery(name string) Document {
	query := `query GetTherapyDetails($name: String!) {
    therapies(name: $name) {
        id
        name
        ncitId
        therapyUrl
        therapyAliases {
            name
        }
        evidenceItems {
            totalCount
        }
        assertions {
            totalCount
        }
    }
}`
	return Document{Query: query, Variables: map[string]any{"name": name}}
}

// BuildStatsQuery requests total counts across all top-level entity
// collections. It takes no filters and binds no variables.
func BuildStatsQuery() Document {
	query := `query GetSummaryStats {
    evidenceItems {
        totalCount
    }
    genes {
        totalCount
    }
    variants {
        totalCount
    }
    diseases {
        totalCount
    }
    therapies {
        totalCount
    }
    molecularProfiles {
        totalCount
    }
    assertions {
        totalCount
    }
}`
	return Document{Query: query}
}
