// Package tools defines the static tool set exposed over MCP and the
// handlers that compose query building, the remote client, and report
// rendering.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/oncotools/civic-mcp/internal/civic"
	"github.com/oncotools/civic-mcp/internal/mcp"
	"github.com/oncotools/civic-mcp/internal/report"
)

// API is the slice of the CIViC client the tool handlers need.
type API interface {
	SearchClinicalEvidence(ctx context.Context, f civic.SearchFilters, pageSize int) (*civic.EvidenceConnection, error)
	DiseaseDetails(ctx context.Context, name string) ([]civic.DiseaseDetail, error)
	GeneDetails(ctx context.Context, name string) ([]civic.GeneDetail, error)
	TherapyDetails(ctx context.Context, name string) ([]civic.TherapyDetail, error)
	SummaryStats(ctx context.Context) (*civic.SummaryStats, error)
}

type handlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Registry holds the immutable tool set, built once at process start.
type Registry struct {
	api             API
	defaultPageSize int
	defs            []mcp.Tool
	handlers        map[string]handlerFunc
}

// NewRegistry registers all tools over api. defaultPageSize is used by
// the search tool when the caller does not pass page_size.
func NewRegistry(api API, defaultPageSize int) *Registry {
	r := &Registry{
		api:             api,
		defaultPageSize: defaultPageSize,
		handlers:        make(map[string]handlerFunc),
	}
	r.register(searchToolDef(), r.searchClinicalEvidence)
	r.register(diseaseToolDef(), r.diseaseDetails)
	r.register(geneToolDef(), r.geneDetails)
	r.register(therapyToolDef(), r.therapyDetails)
	r.register(statsToolDef(), r.summaryStats)
	return r
}

func (r *Registry) register(def mcp.Tool, h handlerFunc) {
	if _, dup := r.handlers[def.Name]; dup {
		panic("duplicate tool name: " + def.Name)
	}
	r.defs = append(r.defs, def)
	r.handlers[def.Name] = h
}

// Tools returns the tool definitions in registration order. The slice
// is the same on every call.
func (r *Registry) Tools() []mcp.Tool { return r.defs }

// Call validates args against the tool's required list and invokes its
// handler. Unknown names and missing required arguments return typed
// errors; remote failures are folded into the text result by the
// handlers themselves.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	h, ok := r.handlers[name]
	if !ok {
		return "", &mcp.UnknownToolError{Name: name}
	}
	if err := r.validateRequired(name, args); err != nil {
		return "", err
	}
	return h(ctx, args)
}

func (r *Registry) validateRequired(name string, args map[string]any) error {
	for _, def := range r.defs {
		if def.Name != name {
			continue
		}
		for _, field := range def.InputSchema.Required {
			v, present := args[field]
			if !present {
				return &mcp.InvalidParamsError{Tool: name, Message: "missing required argument: " + field}
			}
			if s, isString := v.(string); isString && s == "" {
				return &mcp.InvalidParamsError{Tool: name, Message: "required argument is empty: " + field}
			}
		}
	}
	return nil
}

func (r *Registry) searchClinicalEvidence(ctx context.Context, args map[string]any) (string, error) {
	filters := civic.SearchFilters{
		DiseaseName:          strArg(args, "disease_name"),
		TherapyName:          strArg(args, "therapy_name"),
		GeneName:             strArg(args, "gene_name"),
		VariantName:          strArg(args, "variant_name"),
		EvidenceType:         strArg(args, "evidence_type"),
		EvidenceLevel:        strArg(args, "evidence_level"),
		ClinicalSignificance: strArg(args, "clinical_significance"),
		TherapyType:          strArg(args, "therapy_type"),
		MolecularProfileName: strArg(args, "molecular_profile_name"),
		SourceType:           strArg(args, "source_type"),
	}
	pageSize := intArg(args, "page_size", r.defaultPageSize)

	res, err := r.api.SearchClinicalEvidence(ctx, filters, pageSize)
	if err != nil {
		log.WithError(err).Error("search_clinical_evidence failed")
		return fmt.Sprintf("Error searching clinical evidence: %v", err), nil
	}
	return report.SearchResults(res), nil
}

func (r *Registry) diseaseDetails(ctx context.Context, args map[string]any) (string, error) {
	name := strArg(args, "disease_name")
	diseases, err := r.api.DiseaseDetails(ctx, name)
	if err != nil {
		log.WithError(err).Error("get_disease_details failed")
		return fmt.Sprintf("Error getting disease details: %v", err), nil
	}
	if len(diseases) == 0 {
		return report.NoEntityFound("disease", name), nil
	}
	return report.DiseaseDetails(&diseases[0]), nil
}

func (r *Registry) geneDetails(ctx context.Context, args map[string]any) (string, error) {
	name := strArg(args, "gene_name")
	genes, err := r.api.GeneDetails(ctx, name)
	if err != nil {
		log.WithError(err).Error("get_gene_details failed")
		return fmt.Sprintf("Error getting gene details: %v", err), nil
	}
	if len(genes) == 0 {
		return report.NoEntityFound("gene", name), nil
	}
	return report.GeneDetails(&genes[0]), nil
}

func (r *Registry) therapyDetails(ctx context.Context, args map[string]any) (string, error) {
	name := strArg(args, "therapy_name")
	therapies, err := r.api.TherapyDetails(ctx, name)
	if err != nil {
		log.WithError(err).Error("get_therapy_details failed")
		return fmt.Sprintf("Error getting therapy details: %v", err), nil
	}
	if len(therapies) == 0 {
		return report.NoEntityFound("therapy", name), nil
	}
	return report.TherapyDetails(&therapies[0]), nil
}

func (r *Registry) summaryStats(ctx context.Context, _ map[string]any) (string, error) {
	stats, err := r.api.SummaryStats(ctx)
	if err != nil {
		log.WithError(err).Error("get_evidence_summary_stats failed")
		return fmt.Sprintf("Error getting summary statistics: %v", err), nil
	}
	return report.Stats(stats), nil
}

func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg tolerates the numeric types dynamic JSON clients send.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}
