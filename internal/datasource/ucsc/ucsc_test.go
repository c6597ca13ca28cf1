package ucsc

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-gene/internal/gene"
)

// Track payload with blockSizes/chromStarts in the delimited-string
// shape, trailing comma included, as genePred-backed tracks deliver
// them.
const trackStringJSON = `{
  "downloadTime": "2026:08:24T10:00:00Z",
  "knownGene": [
    {"geneName": "PKD2", "geneType": "protein_coding", "blockCount": 2,
     "blockSizes": "100,200,", "chromStarts": "0,500,"},
    {"geneName": "ABCG2", "geneType": "protein_coding", "blockCount": 3,
     "blockSizes": "1351,109,178,", "chromStarts": "0,20000,30000,"},
    {"geneName": "ABCG2", "geneType": "retained_intron", "blockCount": 2,
     "blockSizes": "90,80,", "chromStarts": "0,1000,"}
  ]
}`

// Same region with the integer-array shape.
const trackArrayJSON = `{
  "knownGene": [
    {"geneName": "ABCG2", "geneType": "protein_coding", "blockCount": 3,
     "blockSizes": [1351,109,178], "chromStarts": [0,20000,30000]}
  ]
}`

var abcg2Coords = gene.CoordinateRecord{
	Symbol: "ABCG2", Chromosome: "4", Start: 88090264, End: 88231417,
}

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewSource(&http.Client{Timeout: time.Second})
	s.SetBaseURL(srv.URL)
	return s
}

func TestFetchExonsStringShape(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.RawQuery
		assert.Contains(t, q, "genome=hg38")
		assert.Contains(t, q, "track=knownGene")
		assert.Contains(t, q, "chrom=chr4")
		w.Write([]byte(trackStringJSON))
	})

	rec, outcome := s.FetchExons("ABCG2", abcg2Coords)
	require.False(t, outcome.Defaulted)
	assert.Equal(t, 3, rec.Count)
	assert.Equal(t, "1351,109,178", rec.Sizes.String())
	assert.Equal(t, "0,20000,30000", rec.Starts.String())
	// First match wins: the protein_coding transcript precedes the
	// retained_intron one in the payload.
	assert.Equal(t, "protein_coding", rec.GeneType)
}

func TestFetchExonsArrayShape(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trackArrayJSON))
	})

	rec, outcome := s.FetchExons("ABCG2", abcg2Coords)
	require.False(t, outcome.Defaulted)
	assert.Equal(t, "1351,109,178", rec.Sizes.String())
	assert.Equal(t, "0,20000,30000", rec.Starts.String())
}

// The gene-name match is exact and case-sensitive; a region full of
// other genes defaults the record without surfacing an error.
func TestFetchExonsNoMatchingTranscript(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trackStringJSON))
	})

	rec, outcome := s.FetchExons("abcg2", abcg2Coords)
	assert.True(t, outcome.Defaulted)
	assert.True(t, rec.IsDefault())
	assert.Equal(t, gene.NA, rec.GeneType)
	assert.Zero(t, rec.Count)
}

// Defaulted coordinates must not reach the network at all.
func TestFetchExonsShortCircuitOnDefaultCoordinates(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("region query issued despite sentinel coordinates")
	})

	rec, outcome := s.FetchExons("ABCG2", gene.DefaultCoordinates("ABCG2"))
	assert.True(t, outcome.Defaulted)
	assert.True(t, rec.IsDefault())
}

func TestFetchExonsServerError(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "track not found", http.StatusBadRequest)
	})

	rec, outcome := s.FetchExons("ABCG2", abcg2Coords)
	assert.True(t, outcome.Defaulted)
	assert.True(t, rec.IsDefault())
}

func TestFetchExonsMissingTrackKey(t *testing.T) {
	s := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"downloadTime": "now"}`))
	})

	rec, outcome := s.FetchExons("ABCG2", abcg2Coords)
	assert.True(t, outcome.Defaulted)
	assert.True(t, rec.IsDefault())
}

func TestUcscChrom(t *testing.T) {
	assert.Equal(t, "chr4", ucscChrom("4"))
	assert.Equal(t, "chrX", ucscChrom("X"))
	assert.Equal(t, "chr4", ucscChrom("chr4"))
}
