package tools

import "github.com/oncotools/civic-mcp/internal/mcp"

func searchToolDef() mcp.Tool {
	return mcp.Tool{
		Name: "search_clinical_evidence",
		Description: "Search for clinical evidence in the CIViC (Clinical Interpretation of Variants in Cancer) database. " +
			"Returns evidence items with details about variants, diseases, therapies, and clinical significance.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"disease_name": {
					Type:        "string",
					Description: "Disease or condition name (e.g., 'Lung Non-small Cell Carcinoma', 'Breast Cancer')",
				},
				"therapy_name": {
					Type:        "string",
					Description: "Therapy or drug name (e.g., 'Trastuzumab', 'Erlotinib')",
				},
				"gene_name": {
					Type:        "string",
					Description: "Gene symbol or name (e.g., 'EGFR', 'BRAF', 'TP53')",
				},
				"variant_name": {
					Type:        "string",
					Description: "Variant name (e.g., 'L858R', 'V600E')",
				},
				"evidence_type": {
					Type:        "string",
					Description: "Type of clinical evidence",
					Enum:        []string{"predictive", "diagnostic", "prognostic", "predisposing", "functional", "oncogenic"},
				},
				"evidence_level": {
					Type:        "string",
					Description: "Evidence level rating",
					Enum:        []string{"A", "B", "C", "D", "E"},
				},
				"clinical_significance": {
					Type:        "string",
					Description: "Clinical significance of the evidence",
					Enum: []string{
						"sensitivity", "resistance", "adverse_response", "reduced_sensitivity",
						"better_outcome", "poor_outcome", "positive", "negative",
					},
				},
				"therapy_type": {
					Type:        "string",
					Description: "Type of therapy (e.g., 'targeted therapy', 'chemotherapy')",
				},
				"molecular_profile_name": {
					Type:        "string",
					Description: "Molecular profile name",
				},
				"source_type": {
					Type:        "string",
					Description: "Source type for evidence",
					Enum:        []string{"PubMed", "ASCO", "ASH", "AACR", "ESMO"},
				},
				"page_size": {
					Type:        "integer",
					Description: "Number of results to return (1-100)",
					Minimum:     mcp.IntPtr(1),
					Maximum:     mcp.IntPtr(100),
					Default:     25,
				},
			},
		},
	}
}

func diseaseToolDef() mcp.Tool {
	return mcp.Tool{
		Name: "get_disease_details",
		Description: "Get detailed information about a specific disease from the CIViC database. " +
			"Returns disease information, aliases, and related evidence counts.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"disease_name": {
					Type:        "string",
					Description: "Disease name to look up (e.g., 'Lung Non-small Cell Carcinoma')",
				},
			},
			Required: []string{"disease_name"},
		},
	}
}

func geneToolDef() mcp.Tool {
	return mcp.Tool{
		Name: "get_gene_details",
		Description: "Get detailed information about a specific gene from the CIViC database. " +
			"Returns gene information, variants, and related evidence counts.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"gene_name": {
					Type:        "string",
					Description: "Gene symbol or name to look up (e.g., 'EGFR', 'BRAF')",
				},
			},
			Required: []string{"gene_name"},
		},
	}
}

func therapyToolDef() mcp.Tool {
	return mcp.Tool{
		Name: "get_therapy_details",
		Description: "Get detailed information about a specific therapy from the CIViC database. " +
			"Returns therapy information, aliases, and related evidence counts.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"therapy_name": {
					Type:        "string",
					Description: "Therapy or drug name to look up (e.g., 'Trastuzumab', 'Erlotinib')",
				},
			},
			Required: []string{"therapy_name"},
		},
	}
}

func statsToolDef() mcp.Tool {
	return mcp.Tool{
		Name: "get_evidence_summary_stats",
		Description: "Get summary statistics from the CIViC database including total counts of evidence items, " +
			"genes, variants, diseases, therapies, and molecular profiles.",
		InputSchema: mcp.InputSchema{
			Type:       "object",
			Properties: map[string]mcp.Property{},
		},
	}
}
