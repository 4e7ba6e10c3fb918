package parser

import (
	"context"
	"time"

	"github.com/insightdelivered/credit-report-extractor/internal/models"
)

// ExtractionFailedMarker is the RawText of a degraded result produced when
// the source document could not be decoded.
const ExtractionFailedMarker = "[EXTRACTION FAILED: unable to decode document]"

// DecodeFunc is the document text decoder contract as consumed by the
// engine: page texts in document order, each page's fragments already joined
// in reading order. The engine treats the decoder as a black box.
type DecodeFunc func(ctx context.Context, path string) ([]string, error)

// Engine converts decoded page text into a CreditReportData. It is a
// best-effort heuristic extractor: its failure mode is fewer or blanker
// records, never an error to the caller.
type Engine struct {
	lib *Library
}

// NewEngine returns an engine using the given pattern library, or the
// default library if lib is nil.
func NewEngine(lib *Library) *Engine {
	if lib == nil {
		lib = NewLibrary(nil)
	}
	return &Engine{lib: lib}
}

// Parse runs the single-pass pipeline over decoded page texts. It cannot
// fail: input with zero anchor matches produces a valid result with an
// empty account list.
func (e *Engine) Parse(pages []string) models.CreditReportData {
	lines := NormalizeLines(pages)
	accounts := NewScanner(e.lib).Scan(lines)
	if accounts == nil {
		accounts = []models.ParsedAccount{}
	}
	return models.CreditReportData{
		RawText:    RawText(lines),
		Accounts:   accounts,
		ReportDate: time.Now(),
	}
}

// ParseDocument decodes the document at path and parses the result. Decoder
// failures do not propagate: the caller receives a degraded result carrying
// an error marker and no accounts, and only needs to check len(Accounts) to
// detect it.
func (e *Engine) ParseDocument(ctx context.Context, path string, decode DecodeFunc) (data models.CreditReportData) {
	defer func() {
		if r := recover(); r != nil {
			data = Degraded()
		}
	}()

	pages, err := decode(ctx, path)
	if err != nil {
		return Degraded()
	}
	return e.Parse(pages)
}

// Degraded returns the fail-soft result used when decoding fails.
func Degraded() models.CreditReportData {
	return models.CreditReportData{
		RawText:    ExtractionFailedMarker,
		Accounts:   []models.ParsedAccount{},
		ReportDate: time.Now(),
	}
}
