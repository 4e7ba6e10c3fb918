package models

import "time"

// Bureau identifies which credit bureau reported a tradeline.
type Bureau string

const (
	BureauEquifax    Bureau = "Equifax"
	BureauExperian   Bureau = "Experian"
	BureauTransUnion Bureau = "TransUnion"
	BureauUnknown    Bureau = "Unknown"
)

// Sentinel values used when a field could not be extracted. They stand in
// for a true "absent" marker; the Provenance map records which fields were
// defaulted so these are distinguishable from genuinely extracted text.
const (
	UnknownCreditor = "Unknown"
	UnknownStatus   = "Unknown"
	ZeroBalance     = "$0"
	NoOpenedDate    = "N/A"
)

// Provenance records whether a field value came from a pattern match or a
// sentinel default.
type Provenance string

const (
	ProvenanceMatched   Provenance = "matched"
	ProvenanceDefaulted Provenance = "defaulted"
)

// ParsedAccount is one tradeline extracted from a credit report.
type ParsedAccount struct {
	ID            string                `json:"id"`
	CreditorName  string                `json:"creditorName"`
	AccountNumber string                `json:"accountNumber"`
	Status        string                `json:"status"`
	Balance       string                `json:"balance"`
	OpenedDate    string                `json:"openedDate"`
	Bureau        Bureau                `json:"bureau"`
	Provenance    map[string]Provenance `json:"provenance,omitempty"`
}

// CreditReportData is the assembled output of the extraction engine.
// Accounts are ordered by first appearance of each account's anchor line in
// the source text. RawText is retained for display and debugging only and is
// never re-parsed.
type CreditReportData struct {
	RawText    string          `json:"rawText"`
	Accounts   []ParsedAccount `json:"accounts"`
	ReportDate time.Time       `json:"reportDate"`
	Score      *int            `json:"score,omitempty"` // reserved for a future bureau score extractor
}
