// Package ucsc fetches exon structure for a gene from the UCSC genome
// browser track API (JSON, one round-trip per region).
package ucsc

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-gene/internal/gene"
	"github.com/inodb/vibe-gene/internal/rest"
)

// Defaults for the public track API. The assembly and track are fixed
// per run; the region comes from the coordinate fetch.
const (
	DefaultBaseURL = "https://api.genome.ucsc.edu"
	DefaultGenome  = "hg38"
	DefaultTrack   = "knownGene"
)

// Source resolves a genomic region to the exon structure of the gene
// named by the queried symbol. All four output fields default together.
type Source struct {
	baseURL string
	genome  string
	track   string
	client  *http.Client
	logger  *zap.Logger
}

// NewSource creates a UCSC source backed by the given HTTP client.
func NewSource(client *http.Client) *Source {
	return &Source{
		baseURL: DefaultBaseURL,
		genome:  DefaultGenome,
		track:   DefaultTrack,
		client:  client,
		logger:  zap.NewNop(),
	}
}

// SetBaseURL overrides the track API endpoint (tests).
func (s *Source) SetBaseURL(u string) {
	s.baseURL = u
}

// SetGenome overrides the assembly queried.
func (s *Source) SetGenome(genome string) {
	s.genome = genome
}

// SetTrack overrides the annotation track queried.
func (s *Source) SetTrack(track string) {
	s.track = track
}

// SetLogger sets the logger for warning messages.
func (s *Source) SetLogger(l *zap.Logger) {
	s.logger = l
}

// FetchExons queries the track for the region in coords and returns the
// exon structure of the first transcript whose gene name exactly
// matches symbol. Defaulted coordinates skip the network call entirely:
// querying with a sentinel location is meaningless and must not be
// attempted.
func (s *Source) FetchExons(symbol string, coords gene.CoordinateRecord) (gene.ExonRecord, gene.Outcome) {
	if coords.IsDefault() {
		return s.defaulted(symbol, "coordinates unavailable, region query skipped")
	}

	url := fmt.Sprintf("%s/getData/track?genome=%s;track=%s;chrom=%s;start=%d;end=%d",
		s.baseURL, s.genome, s.track, ucscChrom(coords.Chromosome), coords.Start, coords.End)

	body, err := rest.Get(s.client, url)
	if err != nil {
		return s.defaulted(symbol, fmt.Sprintf("region query failed: %v", err))
	}

	transcripts, err := parseTrack(body, s.track)
	if err != nil {
		return s.defaulted(symbol, err.Error())
	}

	// First exact-match transcript wins; a region with transcripts but
	// no match is treated the same as a failed fetch, not an error.
	for _, t := range transcripts {
		if t.GeneName == symbol {
			return gene.ExonRecord{
				Symbol:   symbol,
				Count:    t.BlockCount,
				Sizes:    t.BlockSizes,
				Starts:   t.ChromStarts,
				GeneType: t.GeneType,
			}, gene.Populated()
		}
	}
	return s.defaulted(symbol, "no transcript matching symbol in region")
}

func (s *Source) defaulted(symbol, reason string) (gene.ExonRecord, gene.Outcome) {
	s.logger.Warn("exons defaulted",
		zap.String("source", "ucsc"),
		zap.String("symbol", symbol),
		zap.String("reason", reason))
	return gene.DefaultExons(symbol), gene.Defaulted(reason)
}

// ucscChrom maps an Ensembl-style region name ("4") to UCSC naming
// ("chr4").
func ucscChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom
	}
	return "chr" + chrom
}
