package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Field identifies one extractable tradeline field.
type Field string

const (
	FieldAccountNumber Field = "accountNumber"
	FieldBalance       Field = "balance"
	FieldStatus        Field = "status"
	FieldOpenedDate    Field = "openedDate"

	// FieldCreditorName has no label pattern; it is found by the creditor
	// plausibility heuristic. Listed here so provenance keys line up.
	FieldCreditorName Field = "creditorName"
)

// FieldPattern matches a "label then value" line for a single field.
// Matching is case-insensitive and tolerant of colon, whitespace, or no
// separator between label and value.
type FieldPattern struct {
	Field Field
	re    *regexp.Regexp
}

// Extract returns the captured value if the line matches the pattern.
func (p *FieldPattern) Extract(line string) (string, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	val := strings.TrimSpace(m[1])
	return val, val != ""
}

// Default label alternatives per field, as regexp fragments. Extra aliases
// can be layered on via NewLibrary (see config.PatternAliases).
var defaultLabels = map[Field][]string{
	FieldAccountNumber: {`account\s*#`, `acct\s*#`, `account\s+number`, `account\s+no\.?`},
	FieldBalance:       {`current\s+balance`, `balance`},
	FieldStatus:        {`account\s+status`, `status`},
	FieldOpenedDate:    {`date\s+opened`, `opened`},
}

// Value capture expressions per field. The account number token admits
// masking characters such as X; the status run admits digits and parens so
// values like "Late (30)" survive intact.
var valueExprs = map[Field]string{
	FieldAccountNumber: `\b([0-9A-Za-z][0-9A-Za-z-]*)`,
	FieldBalance:       `(\$?\d[\d,]*(?:\.\d{1,2})?)`,
	FieldStatus:        `([A-Za-z][A-Za-z0-9 ()/-]*)`,
	FieldOpenedDate:    `(\d{1,2}/\d{1,2}/\d{2,4})`,
}

func compilePattern(f Field, labels []string) *FieldPattern {
	expr := fmt.Sprintf(`(?i)(?:%s)\s*:?\s*%s`, strings.Join(labels, "|"), valueExprs[f])
	return &FieldPattern{Field: f, re: regexp.MustCompile(expr)}
}

// labelExpr turns a plain-text label alias into a regexp fragment that
// tolerates variable whitespace between words.
func labelExpr(alias string) string {
	return strings.Join(strings.Fields(regexp.QuoteMeta(alias)), `\s+`)
}

// CreditorHeuristic decides whether a line plausibly names a creditor.
// It approximates "looks like an all-caps institution name" without layout
// information: bounded length, no field-label vocabulary, and a high ratio
// of uppercase letters among the alphabetic characters.
type CreditorHeuristic struct {
	MinLen         int
	MaxLen         int
	UppercaseRatio float64
}

// Substrings that mark a line as a field label rather than a creditor name.
// Checked case-insensitively: label lines are frequently rendered in full
// upper case, which would bypass a case-sensitive check.
var labelVocabulary = []string{"account", "date", "balance"}

// Plausible reports whether the line passes the creditor-name test.
func (h *CreditorHeuristic) Plausible(line string) bool {
	if len(line) < h.MinLen || len(line) > h.MaxLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, word := range labelVocabulary {
		if strings.Contains(lower, word) {
			return false
		}
	}
	upper, alpha := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			alpha++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if alpha == 0 {
		return false
	}
	return float64(upper)/float64(alpha) > h.UppercaseRatio
}

// Library bundles the anchor pattern, the non-anchor field patterns, and the
// creditor heuristic used by the boundary scanner.
type Library struct {
	Anchor   *FieldPattern
	Fields   []*FieldPattern
	Creditor *CreditorHeuristic
}

// NewLibrary builds the pattern library. extraLabels layers additional
// plain-text label aliases onto the defaults for each field, so new report
// layouts can be accommodated without a code change.
func NewLibrary(extraLabels map[Field][]string) *Library {
	labels := make(map[Field][]string, len(defaultLabels))
	for f, defaults := range defaultLabels {
		labels[f] = append(labels[f], defaults...)
		for _, alias := range extraLabels[f] {
			if alias = strings.TrimSpace(alias); alias != "" {
				labels[f] = append(labels[f], labelExpr(alias))
			}
		}
	}

	return &Library{
		Anchor: compilePattern(FieldAccountNumber, labels[FieldAccountNumber]),
		Fields: []*FieldPattern{
			compilePattern(FieldBalance, labels[FieldBalance]),
			compilePattern(FieldStatus, labels[FieldStatus]),
			compilePattern(FieldOpenedDate, labels[FieldOpenedDate]),
		},
		Creditor: &CreditorHeuristic{MinLen: 3, MaxLen: 50, UppercaseRatio: 0.8},
	}
}
