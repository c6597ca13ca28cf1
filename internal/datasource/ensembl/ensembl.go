// Package ensembl fetches genomic coordinates for a gene symbol from
// the Ensembl REST symbol-lookup endpoint (JSON, one round-trip).
package ensembl

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/inodb/vibe-gene/internal/gene"
	"github.com/inodb/vibe-gene/internal/rest"
)

// DefaultBaseURL is the public Ensembl REST endpoint.
const DefaultBaseURL = "https://rest.ensembl.org"

// Source resolves a gene symbol to (chromosome, start, end). The three
// fields share one failure mode: all populated or all defaulted,
// never a partial triple.
type Source struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewSource creates an Ensembl source backed by the given HTTP client.
func NewSource(client *http.Client) *Source {
	return &Source{
		baseURL: DefaultBaseURL,
		client:  client,
		logger:  zap.NewNop(),
	}
}

// SetBaseURL overrides the REST endpoint (tests, GRCh37 mirror).
func (s *Source) SetBaseURL(u string) {
	s.baseURL = u
}

// SetLogger sets the logger for warning messages.
func (s *Source) SetLogger(l *zap.Logger) {
	s.logger = l
}

// FetchCoordinates looks up the symbol in human and extracts the
// region name and span. Any failure defaults the whole triple.
func (s *Source) FetchCoordinates(symbol string) (gene.CoordinateRecord, gene.Outcome) {
	url := fmt.Sprintf("%s/lookup/symbol/homo_sapiens/%s?content-type=application/json",
		s.baseURL, symbol)

	body, err := rest.Get(s.client, url)
	if err != nil {
		return s.defaulted(symbol, fmt.Sprintf("symbol lookup failed: %v", err))
	}

	rec, err := parseLookup(symbol, body)
	if err != nil {
		return s.defaulted(symbol, err.Error())
	}
	return rec, gene.Populated()
}

func (s *Source) defaulted(symbol, reason string) (gene.CoordinateRecord, gene.Outcome) {
	s.logger.Warn("coordinates defaulted",
		zap.String("source", "ensembl"),
		zap.String("symbol", symbol),
		zap.String("reason", reason))
	return gene.DefaultCoordinates(symbol), gene.Defaulted(reason)
}
