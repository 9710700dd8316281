package civic

// Result shapes decoded from the CIViC GraphQL API. Optional scalars
// the formatter distinguishes from empty are pointers; optional
// strings decode to "" and render as N/A downstream.

// Count wraps a nested totalCount.
type Count struct {
	TotalCount int `json:"totalCount"`
}

// NamedRecord is an alias entry carrying only a name.
type NamedRecord struct {
	Name string `json:"name"`
}

// PageInfo is relay-style pagination metadata.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// EvidenceConnection is the evidenceItems search result.
type EvidenceConnection struct {
	TotalCount int            `json:"totalCount"`
	PageInfo   PageInfo       `json:"pageInfo"`
	Edges      []EvidenceEdge `json:"edges"`
}

// EvidenceEdge wraps one matched evidence item.
type EvidenceEdge struct {
	Node EvidenceItem `json:"node"`
}

// EvidenceItem is one curated clinical evidence record.
type EvidenceItem struct {
	ID                     int               `json:"id"`
	Name                   string            `json:"name"`
	Description            string            `json:"description"`
	EvidenceLevel          string            `json:"evidenceLevel"`
	EvidenceType           string            `json:"evidenceType"`
	EvidenceDirection      string            `json:"evidenceDirection"`
	ClinicalSignificance   string            `json:"clinicalSignificance"`
	TherapyInteractionType string            `json:"therapyInteractionType"`
	Status                 string            `json:"status"`
	Significance           string            `json:"significance"`
	MolecularProfile       *MolecularProfile `json:"molecularProfile"`
	Disease                *Disease          `json:"disease"`
	Therapies              []Therapy         `json:"therapies"`
	Source                 *Source           `json:"source"`
	Phenotypes             []Phenotype       `json:"phenotypes"`
	VariantOrigin          string            `json:"variantOrigin"`
	AmpLevel               string            `json:"ampLevel"`
	NccnGuideline          string            `json:"nccnGuideline"`
	FdaApproval            *bool             `json:"fdaApproval"`
	RegulatoryApproval     *bool             `json:"regulatoryApproval"`
}

// MolecularProfile links an evidence item to its variants and genes.
type MolecularProfile struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
}

// Variant is a molecular variant within a profile.
type Variant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Gene *Gene  `json:"gene"`
}

// Gene identifies the gene a variant belongs to.
type Gene struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	EntrezID *int64 `json:"entrezId"`
}

// Disease is the condition an evidence item is associated with.
type Disease struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Doid       string `json:"doid"`
	DiseaseURL string `json:"diseaseUrl"`
}

// Therapy is a drug or treatment associated with an evidence item.
type Therapy struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	NcitID     string `json:"ncitId"`
	TherapyURL string `json:"therapyUrl"`
}

// Source is the literature citation backing an evidence item.
type Source struct {
	ID               int    `json:"id"`
	Citation         string `json:"citation"`
	SourceType       string `json:"sourceType"`
	PublicationDate  string `json:"publicationDate"`
	Journal          string `json:"journal"`
	FullJournalTitle string `json:"fullJournalTitle"`
	PubmedID         string `json:"pubmedId"`
}

// Phenotype is an HPO-annotated phenotype.
type Phenotype struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	HpoID string `json:"hpoId"`
}

// DiseaseDetail is one disease record from the detail lookup.
type DiseaseDetail struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	Doid              string        `json:"doid"`
	DiseaseURL        string        `json:"diseaseUrl"`
	DiseaseAliases    []NamedRecord `json:"diseaseAliases"`
	EvidenceItems     Count         `json:"evidenceItems"`
	Assertions        Count         `json:"assertions"`
	MolecularProfiles Count         `json:"molecularProfiles"`
}

// GeneDetail is one gene record from the detail lookup.
type GeneDetail struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	EntrezID      *int64            `json:"entrezId"`
	Description   string            `json:"description"`
	GeneAliases   []NamedRecord     `json:"geneAliases"`
	Variants      VariantConnection `json:"variants"`
	EvidenceItems Count             `json:"evidenceItems"`
	Assertions    Count             `json:"assertions"`
}

// VariantConnection is a gene's variant collection.
type VariantConnection struct {
	TotalCount int           `json:"totalCount"`
	Edges      []VariantEdge `json:"edges"`
}

// VariantEdge wraps one variant of a gene.
type VariantEdge struct {
	Node VariantDetail `json:"node"`
}

// VariantDetail is one variant with its own evidence counts.
type VariantDetail struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	VariantAliases    []NamedRecord `json:"variantAliases"`
	MolecularProfiles Count         `json:"molecularProfiles"`
	EvidenceItems     Count         `json:"evidenceItems"`
}

// TherapyDetail is one therapy record from the detail lookup.
type TherapyDetail struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	NcitID         string        `json:"ncitId"`
	TherapyURL     string        `json:"therapyUrl"`
	TherapyAliases []NamedRecord `json:"therapyAliases"`
	EvidenceItems  Count         `json:"evidenceItems"`
	Assertions     Count         `json:"assertions"`
}

// SummaryStats holds the top-level collection totals.
type SummaryStats struct {
	EvidenceItems     Count `json:"evidenceItems"`
	Genes             Count `json:"genes"`
	Variants          Count `json:"variants"`
	Diseases          Count `json:"diseases"`
	Therapies         Count `json:"therapies"`
	MolecularProfiles Count `json:"molecularProfiles"`
	Assertions        Count `json:"assertions"`
}
