package ncbi

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// eSearchResult is the esearch XML response; only the identifier list
// matters here.
type eSearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	IDs     []string `xml:"IdList>Id"`
}

// entrezgeneSet is the efetch XML response. The description text lives
// at the fixed path Entrezgene-Set > Entrezgene > Entrezgene_summary.
type entrezgeneSet struct {
	XMLName   xml.Name `xml:"Entrezgene-Set"`
	Summaries []string `xml:"Entrezgene>Entrezgene_summary"`
}

// parseSearch decodes an esearch response into its identifier list.
func parseSearch(body []byte) ([]string, error) {
	var result eSearchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode esearch response: %w", err)
	}
	return result.IDs, nil
}

// parseSummary decodes an efetch gene record and returns the first
// summary text, or "" when the record carries none.
func parseSummary(body []byte) (string, error) {
	var set entrezgeneSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return "", fmt.Errorf("decode efetch response: %w", err)
	}
	for _, s := range set.Summaries {
		if t := strings.TrimSpace(s); t != "" {
			return t, nil
		}
	}
	return "", nil
}
