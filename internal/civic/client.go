// Package civic talks to the CIViC (Clinical Interpretation of
// Variants in Cancer) GraphQL API: it builds variable-bound query
// documents and executes them over a reusable HTTP session.
package civic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/oncotools/civic-mcp/internal/config"
)

const userAgent = "CIViC-MCP-Server/1.0"

// StatusError is a transport failure: the endpoint answered with a
// non-200 status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Body)
}

// QueryError is a query failure: a 200 response carrying a top-level
// GraphQL error list.
type QueryError struct {
	Errors []QueryErrorDetail
}

// QueryErrorDetail is one entry of the GraphQL error list.
type QueryErrorDetail struct {
	Message string `json:"message"`
}

func (e *QueryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		msgs[i] = d.Message
	}
	return "GraphQL errors: " + strings.Join(msgs, "; ")
}

// Client owns the single reusable connection to the CIViC endpoint.
// The session is created lazily on first use and recreated
// transparently after Close. Not safe for concurrent use by itself;
// the single-flight transport loop guarantees serial access.
type Client struct {
	baseURL    string
	timeout    time.Duration
	maxResults int

	mu      sync.Mutex
	session *http.Client
}

// NewClient returns a client bound to cfg's endpoint. No connection is
// opened until the first call.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		maxResults: cfg.MaxResults,
	}
}

// MaxResults is the configured page-size cap applied to built queries.
func (c *Client) MaxResults() int { return c.maxResults }

func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		c.session = &http.Client{Timeout: c.timeout}
	}
	return c.session
}

// Close releases all held connections. The client may be used again
// afterwards; the next call creates a fresh session.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.CloseIdleConnections()
		c.session = nil
	}
}

// execute POSTs one query document and classifies the outcome:
// non-200 status → StatusError, 200 with an error list → QueryError,
// otherwise the raw data payload. No retries.
func (c *Client) execute(ctx context.Context, doc Document) (json.RawMessage, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode query document")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post query")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}

	var envelope struct {
		Data   json.RawMessage    `json:"data"`
		Errors []QueryErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	if len(envelope.Errors) > 0 {
		return nil, &QueryError{Errors: envelope.Errors}
	}
	return envelope.Data, nil
}

// SearchClinicalEvidence runs the filtered evidence search. pageSize
// is clamped to the configured maximum.
func (c *Client) SearchClinicalEvidence(ctx context.Context, f SearchFilters, pageSize int) (*EvidenceConnection, error) {
	raw, err := c.execute(ctx, BuildSearchQuery(f, pageSize, c.maxResults))
	if err != nil {
		return nil, err
	}
	var data struct {
		EvidenceItems EvidenceConnection `json:"evidenceItems"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode evidence search result")
	}
	return &data.EvidenceItems, nil
}

// DiseaseDetails looks up diseases matching name exactly.
func (c *Client) DiseaseDetails(ctx context.Context, name string) ([]DiseaseDetail, error) {
	raw, err := c.execute(ctx, BuildDiseaseQuery(name))
	if err != nil {
		return nil, err
	}
	var data struct {
		Diseases []DiseaseDetail `json:"diseases"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode disease details")
	}
	return data.Diseases, nil
}

// GeneDetails looks up genes matching name exactly.
func (c *Client) GeneDetails(ctx context.Context, name string) ([]GeneDetail, error) {
	raw, err := c.execute(ctx, BuildGeneQuery(name))
	if err != nil {
		return nil, err
	}
	var data struct {
		Genes []GeneDetail `json:"genes"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode gene details")
	}
	return data.Genes, nil
}

// TherapyDetails looks up therapies matching name exactly.
func (c *Client) TherapyDetails(ctx context.Context, name string) ([]TherapyDetail, error) {
	raw, err := c.execute(ctx, BuildTherapyQuery(name))
	if err != nil {
		return nil, err
	}
	var data struct {
		Therapies []TherapyDetail `json:"therapies"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode therapy details")
	}
	return data.Therapies, nil
}

// SummaryStats fetches the top-level collection totals.
func (c *Client) SummaryStats(ctx context.Context) (*SummaryStats, error) {
	raw, err := c.execute(ctx, BuildStatsQuery())
	if err != nil {
		return nil, err
	}
	var data SummaryStats
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "decode summary stats")
	}
	return &data, nil
}
