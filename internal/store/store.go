// Package store persists the per-source partial gene records in DuckDB
// and serves the joined unified record back for rendering.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-gene/internal/gene"
)

// Store manages a DuckDB connection holding the three partial-record
// tables, all keyed by gene symbol.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS description (
			gene_symbol VARCHAR PRIMARY KEY,
			text VARCHAR
		);

		CREATE TABLE IF NOT EXISTS coordinates (
			gene_symbol VARCHAR PRIMARY KEY,
			chromosome VARCHAR,
			start BIGINT,
			end_ BIGINT
		);

		CREATE TABLE IF NOT EXISTS exons (
			gene_symbol VARCHAR PRIMARY KEY,
			exon_count INTEGER,
			exon_sizes VARCHAR,
			exon_starts VARCHAR,
			gene_type VARCHAR
		);
	`)
	return err
}

// UpsertDescription writes the description partial record, replacing
// any prior row for the symbol.
func (s *Store) UpsertDescription(r gene.DescriptionRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO description (gene_symbol, text)
		VALUES (?, ?)
	`, r.Symbol, r.Text)
	if err != nil {
		return fmt.Errorf("upsert description: %w", err)
	}
	return nil
}

// UpsertCoordinates writes the coordinate partial record. Defaulted
// records store the sentinel chromosome with NULL start/end.
func (s *Store) UpsertCoordinates(r gene.CoordinateRecord) error {
	var start, end interface{}
	if !r.IsDefault() {
		start, end = r.Start, r.End
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO coordinates (gene_symbol, chromosome, start, end_)
		VALUES (?, ?, ?, ?)
	`, r.Symbol, r.Chromosome, start, end)
	if err != nil {
		return fmt.Errorf("upsert coordinates: %w", err)
	}
	return nil
}

// UpsertExons writes the exon partial record. Defaulted records store
// the sentinel in the text columns with a NULL count; the integer
// sequences serialize to comma-joined text here, at the storage
// boundary.
func (s *Store) UpsertExons(r gene.ExonRecord) error {
	var count interface{}
	sizes, starts := gene.NA, gene.NA
	if !r.IsDefault() {
		count = r.Count
		sizes = r.Sizes.String()
		starts = r.Starts.String()
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO exons (gene_symbol, exon_count, exon_sizes, exon_starts, gene_type)
		VALUES (?, ?, ?, ?, ?)
	`, r.Symbol, count, sizes, starts, r.GeneType)
	if err != nil {
		return fmt.Errorf("upsert exons: %w", err)
	}
	return nil
}

// GetUnified equality-joins the three partial tables on gene symbol and
// returns the projection for rendering, with NULL numeric fields
// rendered as the sentinel. Returns nil when any partial is missing.
func (s *Store) GetUnified(symbol string) (*gene.UnifiedRecord, error) {
	row := s.db.QueryRow(`
		SELECT d.gene_symbol, d.text,
		       c.chromosome, c.start, c.end_,
		       e.exon_count, e.exon_sizes, e.exon_starts, e.gene_type
		FROM description d
		JOIN coordinates c ON c.gene_symbol = d.gene_symbol
		JOIN exons e ON e.gene_symbol = d.gene_symbol
		WHERE d.gene_symbol = ?
	`, symbol)

	var u gene.UnifiedRecord
	var start, end, count sql.NullInt64
	err := row.Scan(
		&u.Symbol, &u.Description,
		&u.Chromosome, &start, &end,
		&count, &u.ExonSizes, &u.ExonStarts, &u.GeneType,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan unified record: %w", err)
	}

	u.Start = renderInt(start)
	u.End = renderInt(end)
	u.ExonCount = renderInt(count)
	return &u, nil
}

// renderInt formats a nullable integer, substituting the sentinel for
// NULL.
func renderInt(n sql.NullInt64) string {
	if !n.Valid {
		return gene.NA
	}
	return fmt.Sprintf("%d", n.Int64)
}
