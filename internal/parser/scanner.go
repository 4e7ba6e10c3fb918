package parser

import (
	"github.com/google/uuid"

	"github.com/insightdelivered/credit-report-extractor/internal/models"
)

// scanState tracks whether a tradeline context is currently open.
type scanState int

const (
	stateScanning scanState = iota
	stateInAccount
)

// accountContext is the mutable, in-flight record for the tradeline being
// enriched. It is frozen into a models.ParsedAccount exactly once, when the
// next anchor line is found or the line stream ends.
type accountContext struct {
	creditorName  string
	accountNumber string
	fields        map[Field]string
}

// Scanner is the account boundary detector: a single-pass, two-state machine
// over normalized lines. The only lookback is the fixed two-line window used
// for creditor names, which keeps the scan O(n) with no backtracking across
// account boundaries.
type Scanner struct {
	lib      *Library
	state    scanState
	current  *accountContext
	accounts []models.ParsedAccount
}

func NewScanner(lib *Library) *Scanner {
	return &Scanner{lib: lib}
}

// Scan runs the machine over the full line sequence and returns the
// finalized accounts, ordered by first appearance of their anchor lines.
func (s *Scanner) Scan(lines []string) []models.ParsedAccount {
	for i, line := range lines {
		s.step(lines, i, line)
	}
	s.flush()
	return s.accounts
}

func (s *Scanner) step(lines []string, i int, line string) {
	if token, ok := s.lib.Anchor.Extract(line); ok {
		s.flush()
		s.current = &accountContext{
			accountNumber: token,
			creditorName:  s.lookbackCreditor(lines, i),
			fields:        make(map[Field]string, 3),
		}
		s.state = stateInAccount
		return
	}
	if s.state == stateInAccount {
		s.extractFields(line)
	}
	// stateScanning: non-anchor lines carry no signal and are ignored
}

// lookbackCreditor tests the lines one and two positions before the anchor
// against the plausibility heuristic and returns the first that passes.
func (s *Scanner) lookbackCreditor(lines []string, anchor int) string {
	for _, back := range []int{1, 2} {
		if j := anchor - back; j >= 0 && s.lib.Creditor.Plausible(lines[j]) {
			return lines[j]
		}
	}
	return ""
}

// extractFields applies each non-anchor pattern to the line. Assignment is
// first-match-wins: a field already set for the open context is never
// overwritten by a later line in the same block, so repeated renderings of
// the same fact keep their first (typically most relevant) occurrence.
func (s *Scanner) extractFields(line string) {
	for _, p := range s.lib.Fields {
		if _, done := s.current.fields[p.Field]; done {
			continue
		}
		if val, ok := p.Extract(line); ok {
			s.current.fields[p.Field] = val
		}
	}
}

// flush closes the open context, if any. The same rule applies at an account
// boundary and at end of stream: any open context finalizes, since an open
// context always carries an anchor-matched account number by construction.
func (s *Scanner) flush() {
	if s.current == nil {
		return
	}
	s.accounts = append(s.accounts, finalize(s.current))
	s.current = nil
	s.state = stateScanning
}

// finalize freezes a context into an immutable ParsedAccount, assigning its
// ID and resolving missing fields to sentinels. Provenance records which
// fields were matched and which were defaulted, so downstream consumers can
// tell an extracted "Unknown" apart from the sentinel.
func finalize(ctx *accountContext) models.ParsedAccount {
	acct := models.ParsedAccount{
		ID:            uuid.NewString(),
		AccountNumber: ctx.accountNumber,
		Bureau:        models.BureauUnknown,
		Provenance: map[string]models.Provenance{
			string(FieldAccountNumber): models.ProvenanceMatched,
		},
	}

	resolve := func(f Field, val, sentinel string) string {
		if val == "" {
			acct.Provenance[string(f)] = models.ProvenanceDefaulted
			return sentinel
		}
		acct.Provenance[string(f)] = models.ProvenanceMatched
		return val
	}

	acct.CreditorName = resolve(FieldCreditorName, ctx.creditorName, models.UnknownCreditor)
	acct.Status = resolve(FieldStatus, ctx.fields[FieldStatus], models.UnknownStatus)
	acct.OpenedDate = resolve(FieldOpenedDate, ctx.fields[FieldOpenedDate], models.NoOpenedDate)

	if bal := ctx.fields[FieldBalance]; bal != "" {
		acct.Balance = FormatBalance(bal)
		acct.Provenance[string(FieldBalance)] = models.ProvenanceMatched
	} else {
		acct.Balance = models.ZeroBalance
		acct.Provenance[string(FieldBalance)] = models.ProvenanceDefaulted
	}

	return acct
}
