// Package main provides the vibe-gene command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-gene/internal/datasource/ensembl"
	"github.com/inodb/vibe-gene/internal/datasource/ncbi"
	"github.com/inodb/vibe-gene/internal/datasource/ucsc"
	"github.com/inodb/vibe-gene/internal/gene"
	"github.com/inodb/vibe-gene/internal/pipeline"
	"github.com/inodb/vibe-gene/internal/report"
	"github.com/inodb/vibe-gene/internal/rest"
	"github.com/inodb/vibe-gene/internal/store"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe-gene",
		Short: "Aggregate gene metadata from NCBI, Ensembl and UCSC into one report",
		Long: `vibe-gene fetches the description, genomic coordinates and exon
structure for a gene symbol from three public sources, stores the
partial records in DuckDB, and renders the joined record as a text
report. A source that cannot be reached fills its fields with "N/A"
instead of failing the run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initConfig loads ~/.vibe-gene.yaml if present and sets defaults.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	viper.SetConfigName(".vibe-gene")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	viper.SetDefault("database.path", filepath.Join(home, ".vibe-gene", "genes.duckdb"))
	viper.SetDefault("http.timeout_seconds", 10)
	viper.SetDefault("report.dir", ".")
	viper.SetDefault("report.width", report.DefaultWrapWidth)
	viper.SetDefault("sources.ncbi.base_url", ncbi.DefaultBaseURL)
	viper.SetDefault("sources.ensembl.base_url", ensembl.DefaultBaseURL)
	viper.SetDefault("sources.ucsc.base_url", ucsc.DefaultBaseURL)
	viper.SetDefault("sources.ucsc.genome", ucsc.DefaultGenome)
	viper.SetDefault("sources.ucsc.track", ucsc.DefaultTrack)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vibe-gene version %s (%s) built %s\n", version, commit, date)
		},
	}
}

func newReportCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "report <gene-symbol>",
		Short: "Fetch, store and report metadata for one gene",
		Example: `  vibe-gene report ABCG2
  vibe-gene report TP53 --output /tmp/reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Report output directory (default: report.dir config)")

	return cmd
}

func runReport(symbol, outputDir string) error {
	// Input validation is the first fatal tier: nothing is opened or
	// fetched for a bad symbol.
	if !gene.ValidSymbol(symbol) {
		return fmt.Errorf("invalid gene symbol %q: must be one or more word characters", symbol)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := store.Open(viper.GetString("database.path"))
	if err != nil {
		return fmt.Errorf("record store unavailable: %w", err)
	}
	defer s.Close()

	client := rest.NewClient(time.Duration(viper.GetInt("http.timeout_seconds")) * time.Second)

	descSource := ncbi.NewSource(client)
	descSource.SetBaseURL(viper.GetString("sources.ncbi.base_url"))
	descSource.SetLogger(logger)

	coordSource := ensembl.NewSource(client)
	coordSource.SetBaseURL(viper.GetString("sources.ensembl.base_url"))
	coordSource.SetLogger(logger)

	exonSource := ucsc.NewSource(client)
	exonSource.SetBaseURL(viper.GetString("sources.ucsc.base_url"))
	exonSource.SetGenome(viper.GetString("sources.ucsc.genome"))
	exonSource.SetTrack(viper.GetString("sources.ucsc.track"))
	exonSource.SetLogger(logger)

	runner := pipeline.NewRunner(descSource, coordSource, exonSource, s)
	runner.SetLogger(logger)

	if outputDir == "" {
		outputDir = viper.GetString("report.dir")
	}
	path := filepath.Join(outputDir, report.Filename(symbol))
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer out.Close()

	if err := runner.Run(symbol, out, viper.GetInt("report.width")); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <gene-symbol>",
		Short: "Print the stored record for a gene without refetching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}
}

func runShow(symbol string) error {
	if !gene.ValidSymbol(symbol) {
		return fmt.Errorf("invalid gene symbol %q: must be one or more word characters", symbol)
	}

	s, err := store.Open(viper.GetString("database.path"))
	if err != nil {
		return fmt.Errorf("record store unavailable: %w", err)
	}
	defer s.Close()

	unified, err := s.GetUnified(symbol)
	if err != nil {
		return err
	}
	if unified == nil {
		return fmt.Errorf("no stored record for %s; run 'vibe-gene report %s' first", symbol, symbol)
	}

	return report.NewWriter(os.Stdout, viper.GetInt("report.width")).WriteRecord(*unified)
}

// newLogger builds the run logger; --verbose lowers the level to debug.
func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
