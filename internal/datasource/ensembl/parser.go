package ensembl

import (
	"encoding/json"
	"fmt"

	"github.com/inodb/vibe-gene/internal/gene"
)

// symbolLookup is the JSON response from /lookup/symbol.
type symbolLookup struct {
	SeqRegionName string `json:"seq_region_name"`
	Start         int64  `json:"start"`
	End           int64  `json:"end"`
}

// parseLookup decodes a symbol-lookup response into a coordinate
// record. A missing field fails the whole record; partial triples are
// forbidden.
func parseLookup(symbol string, body []byte) (gene.CoordinateRecord, error) {
	var lookup symbolLookup
	if err := json.Unmarshal(body, &lookup); err != nil {
		return gene.CoordinateRecord{}, fmt.Errorf("decode lookup response: %w", err)
	}
	if lookup.SeqRegionName == "" {
		return gene.CoordinateRecord{}, fmt.Errorf("lookup response missing seq_region_name")
	}
	if lookup.Start <= 0 || lookup.End <= 0 {
		return gene.CoordinateRecord{}, fmt.Errorf("lookup response missing start/end")
	}
	return gene.CoordinateRecord{
		Symbol:     symbol,
		Chromosome: lookup.SeqRegionName,
		Start:      lookup.Start,
		End:        lookup.End,
	}, nil
}
