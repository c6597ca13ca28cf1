// Package ncbi fetches gene description text from the NCBI E-utilities
// gene database (XML payloads, two round-trips per gene).
package ncbi

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/inodb/vibe-gene/internal/gene"
	"github.com/inodb/vibe-gene/internal/rest"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Source resolves a gene symbol to its description summary. Failures
// never escape: every outcome is a fully-populated or fully-defaulted
// record with a tag.
type Source struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewSource creates an NCBI source backed by the given HTTP client.
func NewSource(client *http.Client) *Source {
	return &Source{
		baseURL: DefaultBaseURL,
		client:  client,
		logger:  zap.NewNop(),
	}
}

// SetBaseURL overrides the E-utilities endpoint (tests, mirrors).
func (s *Source) SetBaseURL(u string) {
	s.baseURL = u
}

// SetLogger sets the logger for warning messages.
func (s *Source) SetLogger(l *zap.Logger) {
	s.logger = l
}

// FetchDescription looks up the gene identifier for symbol in human,
// then fetches the gene record and extracts its summary text. Any
// failure at either step defaults the record.
func (s *Source) FetchDescription(symbol string) (gene.DescriptionRecord, gene.Outcome) {
	ids, err := s.search(symbol)
	if err != nil {
		return s.defaulted(symbol, fmt.Sprintf("gene search failed: %v", err))
	}
	if len(ids) == 0 {
		return s.defaulted(symbol, "no gene identifier found")
	}

	text, err := s.fetchSummary(ids[0])
	if err != nil {
		return s.defaulted(symbol, fmt.Sprintf("gene detail fetch failed: %v", err))
	}
	if text == "" {
		return s.defaulted(symbol, "gene record has no summary")
	}

	return gene.DescriptionRecord{Symbol: symbol, Text: text}, gene.Populated()
}

func (s *Source) defaulted(symbol, reason string) (gene.DescriptionRecord, gene.Outcome) {
	s.logger.Warn("description defaulted",
		zap.String("source", "ncbi"),
		zap.String("symbol", symbol),
		zap.String("reason", reason))
	return gene.DefaultDescription(symbol), gene.Defaulted(reason)
}

// search queries esearch for gene identifiers matching the symbol in
// human.
func (s *Source) search(symbol string) ([]string, error) {
	q := url.Values{}
	q.Set("db", "gene")
	q.Set("term", fmt.Sprintf("%s[Gene Name] AND human[Organism]", symbol))

	body, err := rest.Get(s.client, fmt.Sprintf("%s/esearch.fcgi?%s", s.baseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	return parseSearch(body)
}

// fetchSummary fetches one gene record by identifier and returns its
// summary text.
func (s *Source) fetchSummary(id string) (string, error) {
	q := url.Values{}
	q.Set("db", "gene")
	q.Set("id", id)
	q.Set("retmode", "xml")

	body, err := rest.Get(s.client, fmt.Sprintf("%s/efetch.fcgi?%s", s.baseURL, q.Encode()))
	if err != nil {
		return "", err
	}
	return parseSummary(body)
}
