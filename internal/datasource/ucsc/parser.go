package ucsc

import (
	"encoding/json"
	"fmt"

	"github.com/inodb/vibe-gene/internal/gene"
)

// trackTranscript is one transcript item from a getData/track response.
// blockSizes/chromStarts arrive as either a comma-delimited string or
// an integer array depending on the track backing; gene.IntList
// normalizes both shapes.
type trackTranscript struct {
	GeneName    string       `json:"geneName"`
	GeneType    string       `json:"geneType"`
	BlockCount  int          `json:"blockCount"`
	BlockSizes  gene.IntList `json:"blockSizes"`
	ChromStarts gene.IntList `json:"chromStarts"`
}

// parseTrack decodes a getData/track response. The transcript list is
// keyed by the track name.
func parseTrack(body []byte, track string) ([]trackTranscript, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode track response: %w", err)
	}

	raw, ok := payload[track]
	if !ok {
		return nil, fmt.Errorf("track response missing %q items", track)
	}

	var transcripts []trackTranscript
	if err := json.Unmarshal(raw, &transcripts); err != nil {
		return nil, fmt.Errorf("decode %q transcripts: %w", track, err)
	}
	return transcripts, nil
}
