package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-gene/internal/gene"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func upsertAll(t *testing.T, s *Store, desc gene.DescriptionRecord, coords gene.CoordinateRecord, exons gene.ExonRecord) {
	t.Helper()
	require.NoError(t, s.UpsertDescription(desc))
	require.NoError(t, s.UpsertCoordinates(coords))
	require.NoError(t, s.UpsertExons(exons))
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestGetUnifiedJoinsAllPartials(t *testing.T) {
	s := openInMemory(t)

	upsertAll(t, s,
		gene.DescriptionRecord{Symbol: "ABCG2", Text: "ATP-binding cassette transporter."},
		gene.CoordinateRecord{Symbol: "ABCG2", Chromosome: "4", Start: 88090264, End: 88231417},
		gene.ExonRecord{
			Symbol: "ABCG2", Count: 3,
			Sizes:    gene.IntList{1351, 109, 178},
			Starts:   gene.IntList{0, 20000, 30000},
			GeneType: "protein_coding",
		},
	)

	u, err := s.GetUnified("ABCG2")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ABCG2", u.Symbol)
	assert.Equal(t, "ATP-binding cassette transporter.", u.Description)
	assert.Equal(t, "4", u.Chromosome)
	assert.Equal(t, "88090264", u.Start)
	assert.Equal(t, "88231417", u.End)
	assert.Equal(t, "3", u.ExonCount)
	assert.Equal(t, "1351,109,178", u.ExonSizes)
	assert.Equal(t, "0,20000,30000", u.ExonStarts)
	assert.Equal(t, "protein_coding", u.GeneType)
}

func TestGetUnifiedMissingPartial(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.UpsertDescription(gene.DescriptionRecord{Symbol: "TP53", Text: "Tumor suppressor."}))
	require.NoError(t, s.UpsertCoordinates(gene.CoordinateRecord{Symbol: "TP53", Chromosome: "17", Start: 7668402, End: 7687550}))

	u, err := s.GetUnified("TP53")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetUnifiedUnknownSymbol(t *testing.T) {
	s := openInMemory(t)

	u, err := s.GetUnified("NOSUCHGENE")
	require.NoError(t, err)
	assert.Nil(t, u)
}

// Re-running with identical fetched data leaves the stored row
// unchanged; upserts are keyed insert-or-replace.
func TestUpsertIdempotent(t *testing.T) {
	s := openInMemory(t)

	desc := gene.DescriptionRecord{Symbol: "ABCG2", Text: "Transporter."}
	coords := gene.CoordinateRecord{Symbol: "ABCG2", Chromosome: "4", Start: 100, End: 200}
	exons := gene.ExonRecord{Symbol: "ABCG2", Count: 2, Sizes: gene.IntList{10, 20}, Starts: gene.IntList{0, 50}, GeneType: "protein_coding"}

	upsertAll(t, s, desc, coords, exons)
	first, err := s.GetUnified("ABCG2")
	require.NoError(t, err)

	upsertAll(t, s, desc, coords, exons)
	second, err := s.GetUnified("ABCG2")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM description").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsertReplacesPriorRow(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.UpsertDescription(gene.DescriptionRecord{Symbol: "ABCG2", Text: "Old text."}))
	require.NoError(t, s.UpsertDescription(gene.DescriptionRecord{Symbol: "ABCG2", Text: "New text."}))

	var text string
	require.NoError(t, s.DB().QueryRow("SELECT text FROM description WHERE gene_symbol = ?", "ABCG2").Scan(&text))
	assert.Equal(t, "New text.", text)
}

// Defaulted partials store NULL numerics and render back as the
// sentinel, never as a zero.
func TestGetUnifiedRendersDefaults(t *testing.T) {
	s := openInMemory(t)

	upsertAll(t, s,
		gene.DefaultDescription("NOSUCHGENE"),
		gene.DefaultCoordinates("NOSUCHGENE"),
		gene.DefaultExons("NOSUCHGENE"),
	)

	u, err := s.GetUnified("NOSUCHGENE")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "NOSUCHGENE", u.Symbol)
	assert.Equal(t, gene.NA, u.Description)
	assert.Equal(t, gene.NA, u.Chromosome)
	assert.Equal(t, gene.NA, u.Start)
	assert.Equal(t, gene.NA, u.End)
	assert.Equal(t, gene.NA, u.ExonCount)
	assert.Equal(t, gene.NA, u.ExonSizes)
	assert.Equal(t, gene.NA, u.ExonStarts)
	assert.Equal(t, gene.NA, u.GeneType)
}

func TestStoreKeepsOneRowPerSymbol(t *testing.T) {
	s := openInMemory(t)

	for _, sym := range []string{"ABCG2", "TP53"} {
		upsertAll(t, s,
			gene.DescriptionRecord{Symbol: sym, Text: "desc " + sym},
			gene.CoordinateRecord{Symbol: sym, Chromosome: "1", Start: 1, End: 2},
			gene.ExonRecord{Symbol: sym, Count: 1, Sizes: gene.IntList{5}, Starts: gene.IntList{0}, GeneType: "protein_coding"},
		)
	}

	u, err := s.GetUnified("TP53")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "desc TP53", u.Description)
}
