package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/insightdelivered/credit-report-extractor/internal/models"
)

// CSVWriter writes extracted tradelines to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the report's accounts to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, report *models.CreditReportData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, report)
}

// Write writes the report's accounts in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, report *models.CreditReportData) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		writer.Write([]string{"# Report Date", report.ReportDate.Format(time.RFC3339)})
		writer.Write([]string{"# Accounts", strconv.Itoa(len(report.Accounts))})
	}

	header := []string{"Creditor", "Account Number", "Status", "Balance", "Date Opened", "Bureau"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, acct := range report.Accounts {
		row := []string{
			acct.CreditorName,
			acct.AccountNumber,
			acct.Status,
			acct.Balance,
			acct.OpenedDate,
			string(acct.Bureau),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
