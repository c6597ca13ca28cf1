// Package gene defines the records that flow through the aggregation
// pipeline and the sentinel/default conventions shared by all sources.
package gene

import "regexp"

// NA is the sentinel substituted for any data point that could not be
// retrieved. Records are populated or defaulted as a unit; NA never
// appears in a partially filled record.
const NA = "N/A"

var symbolPattern = regexp.MustCompile(`^\w+$`)

// ValidSymbol reports whether s is an acceptable gene symbol
// (one or more word characters, nothing else).
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// Outcome tags the result of a single source fetch. A fetcher never
// returns an error; it returns its record plus an Outcome, and the
// orchestrator branches on the tag.
type Outcome struct {
	Defaulted bool
	Reason    string
}

// Populated is the outcome of a successful fetch.
func Populated() Outcome {
	return Outcome{}
}

// Defaulted is the outcome of a fetch that fell back to sentinel values.
func Defaulted(reason string) Outcome {
	return Outcome{Defaulted: true, Reason: reason}
}

// DescriptionRecord is the partial record produced by the description
// source.
type DescriptionRecord struct {
	Symbol string
	Text   string
}

// DefaultDescription returns the fully-defaulted description record.
func DefaultDescription(symbol string) DescriptionRecord {
	return DescriptionRecord{Symbol: symbol, Text: NA}
}

// CoordinateRecord is the partial record produced by the coordinate
// source. Chromosome carries the sentinel when the record is defaulted;
// Start/End are only meaningful when Chromosome is not NA.
type CoordinateRecord struct {
	Symbol     string
	Chromosome string
	Start      int64
	End        int64
}

// DefaultCoordinates returns the fully-defaulted coordinate record.
func DefaultCoordinates(symbol string) CoordinateRecord {
	return CoordinateRecord{Symbol: symbol, Chromosome: NA}
}

// IsDefault reports whether the record carries sentinel values.
func (c CoordinateRecord) IsDefault() bool {
	return c.Chromosome == NA
}

// ExonRecord is the partial record produced by the exon source. Sizes
// and Starts hold the canonical ordered integer sequences; they are
// serialized to comma-joined text only at the storage boundary.
type ExonRecord struct {
	Symbol   string
	Count    int
	Sizes    IntList
	Starts   IntList
	GeneType string
}

// DefaultExons returns the fully-defaulted exon record.
func DefaultExons(symbol string) ExonRecord {
	return ExonRecord{Symbol: symbol, GeneType: NA}
}

// IsDefault reports whether the record carries sentinel values.
func (e ExonRecord) IsDefault() bool {
	return e.GeneType == NA
}

// UnifiedRecord is the equality-join of the three partial records by
// gene symbol. It is a query-time projection with every field already
// rendered to text, sentinel included.
type UnifiedRecord struct {
	Symbol      string
	Description string
	Chromosome  string
	Start       string
	End         string
	ExonCount   string
	ExonSizes   string
	ExonStarts  string
	GeneType    string
}
