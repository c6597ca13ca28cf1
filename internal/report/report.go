// Package report renders the unified gene record as a paginated text
// report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-gene/internal/gene"
)

// DefaultWrapWidth is the column width at which long delimited fields
// (exon sizes/starts) wrap across output lines.
const DefaultWrapWidth = 60

// FileSuffix is appended to the cleaned symbol to form the report file
// name.
const FileSuffix = "_report.txt"

// Filename derives the report file name from a gene symbol: all
// non-alphanumeric characters stripped, plus a fixed suffix.
func Filename(symbol string) string {
	var b strings.Builder
	for _, r := range symbol {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String() + FileSuffix
}

// Writer writes gene report pages to an underlying writer.
type Writer struct {
	w     *bufio.Writer
	width int
	pages int
}

// NewWriter creates a report writer wrapping long fields at width
// columns, or DefaultWrapWidth when width is not positive.
func NewWriter(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return &Writer{w: bufio.NewWriter(w), width: width}
}

// WriteRecord writes one report page for a joined record. Every field
// arrives as text, sentinel included.
func (rw *Writer) WriteRecord(r gene.UnifiedRecord) error {
	rw.pages++

	rule := strings.Repeat("=", rw.width)
	fmt.Fprintf(rw.w, "%s\nGene report: %s (page %d)\n%s\n", rule, r.Symbol, rw.pages, rule)

	rw.field("Symbol", r.Symbol)
	rw.field("Description", r.Description)
	rw.field("Chromosome", r.Chromosome)
	rw.field("Start", r.Start)
	rw.field("End", r.End)
	rw.field("Exon count", r.ExonCount)
	rw.field("Exon sizes", r.ExonSizes)
	rw.field("Exon starts", r.ExonStarts)
	rw.field("Gene type", r.GeneType)
	fmt.Fprintln(rw.w)

	return rw.w.Flush()
}

// field writes one labeled value, wrapping it at the configured width.
// Continuation lines are indented to align under the value column.
func (rw *Writer) field(label, value string) {
	indent := strings.Repeat(" ", 14)
	for i, line := range wrap(value, rw.width) {
		if i == 0 {
			fmt.Fprintf(rw.w, "%-12s  %s\n", label+":", line)
		} else {
			fmt.Fprintf(rw.w, "%s%s\n", indent, line)
		}
	}
}

// Flush flushes any buffered output.
func (rw *Writer) Flush() error {
	return rw.w.Flush()
}

// wrap splits s into lines no longer than width, breaking after commas
// where possible so numbers are never split mid-token.
func wrap(s string, width int) []string {
	if len(s) <= width {
		return []string{s}
	}

	var lines []string
	for len(s) > width {
		cut := strings.LastIndexByte(s[:width], ',')
		if cut < 0 {
			cut = width - 1
		}
		lines = append(lines, s[:cut+1])
		s = s[cut+1:]
	}
	if s != "" {
		lines = append(lines, s)
	}
	return lines
}
