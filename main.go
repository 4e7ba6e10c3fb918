package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/credit-report-extractor/internal/api"
	"github.com/insightdelivered/credit-report-extractor/internal/config"
	"github.com/insightdelivered/credit-report-extractor/internal/extractor"
	"github.com/insightdelivered/credit-report-extractor/internal/parser"
	"github.com/insightdelivered/credit-report-extractor/internal/writer"
)

const version = "1.0.0"

func main() {
	formatFlag := flag.String("format", "csv", "Output format: csv or json")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	headerFlag := flag.Bool("header", true, "Include report metadata header rows in CSV")
	patternsFlag := flag.String("patterns", "", "YAML file with extra field-label aliases")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	portFlag := flag.String("port", "", "HTTP port for --serve (overrides PORT env)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Credit Report Extraction Engine
by Insight Delivered

Extracts tradeline records from credit report PDFs into structured
CSV or JSON for review and analysis.

Usage:
  credit-report-extractor [flags] <report.pdf> [report2.pdf ...]
  credit-report-extractor --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a report to CSV
  credit-report-extractor report.pdf

  # JSON output to a chosen path
  credit-report-extractor --format=json --output=report.json report.pdf

  # Extra label aliases for an unusual report layout
  credit-report-extractor --patterns=patterns.yaml report.pdf

  # Run the upload API on port 9090
  PORT=9090 credit-report-extractor --serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("credit-report-extractor v%s\n", version)
		os.Exit(0)
	}

	cfg := config.New()
	if *portFlag != "" {
		cfg.Port = *portFlag
	}
	if *patternsFlag != "" {
		cfg.PatternsFile = *patternsFlag
	}

	log := newLogger(cfg.LogLevel)

	lib, err := buildLibrary(cfg.PatternsFile)
	if err != nil {
		log.Fatalf("Failed to load patterns file: %v", err)
	}
	engine := parser.NewEngine(lib)

	if *serveFlag {
		serve(cfg, engine, log)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *formatFlag != "csv" && *formatFlag != "json" {
		fmt.Fprintf(os.Stderr, "Unknown format %q. Supported: csv, json\n", *formatFlag)
		os.Exit(1)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, engine, *formatFlag, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, engine *parser.Engine, format, outputPath string, includeHeader bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	report := engine.ParseDocument(context.Background(), inputPath, extractor.ExtractText)

	if len(report.Accounts) == 0 {
		fmt.Println("  Warning: No tradelines identified. The document may be unreadable or use an unexpected layout.")
	} else {
		fmt.Printf("  Found %d tradeline(s)\n", len(report.Accounts))
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON encode failed: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
	default:
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, &report); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	return nil
}

func serve(cfg *config.Config, engine *parser.Engine, log *logrus.Logger) {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // uploads up to 32MB
	})

	h := &api.Handler{Engine: engine, Log: log}
	h.Register(app)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	log.WithField("port", cfg.Port).Info("starting API server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

func buildLibrary(patternsFile string) (*parser.Library, error) {
	if patternsFile == "" {
		return parser.NewLibrary(nil), nil
	}
	aliases, err := config.LoadPatternAliases(patternsFile)
	if err != nil {
		return nil, err
	}
	extra := make(map[parser.Field][]string, len(aliases))
	for field, labels := range aliases {
		extra[parser.Field(field)] = labels
	}
	return parser.NewLibrary(extra), nil
}
