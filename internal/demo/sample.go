// Package demo provides illustrative sample tradelines that callers may
// overlay on parse results for demos and previews. The overlay happens
// strictly downstream of the extraction engine and never feeds back into it.
package demo

import (
	"github.com/google/uuid"

	"github.com/insightdelivered/credit-report-extractor/internal/models"
)

// SampleAccounts returns a fixed set of illustrative tradelines with fresh
// IDs. Provenance is left nil so sample rows are distinguishable from
// extracted ones.
func SampleAccounts() []models.ParsedAccount {
	return []models.ParsedAccount{
		{
			ID:            uuid.NewString(),
			CreditorName:  "CAPITAL ONE",
			AccountNumber: "XXXX-XXXX-XXXX-3017",
			Status:        "Current",
			Balance:       "$2,481.00",
			OpenedDate:    "6/12/2019",
			Bureau:        models.BureauExperian,
		},
		{
			ID:            uuid.NewString(),
			CreditorName:  "WELLS FARGO AUTO",
			AccountNumber: "XXXX-8854",
			Status:        "Late (60)",
			Balance:       "$11,205.00",
			OpenedDate:    "2/3/2021",
			Bureau:        models.BureauEquifax,
		},
		{
			ID:            uuid.NewString(),
			CreditorName:  "DISCOVER BANK",
			AccountNumber: "XXXX-0199",
			Status:        "Closed",
			Balance:       "$0",
			OpenedDate:    "9/28/2015",
			Bureau:        models.BureauTransUnion,
		},
	}
}
