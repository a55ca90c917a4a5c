package services

import (
	"io"
	"strconv"
	"strings"

	"meridian-schools/app/models"
)

// duesCSVHeader is the fixed column contract for dues exports. Text columns
// are always double-quoted; numeric columns are written raw.
var duesCSVHeader = []string{
	"Student Name", "Admission Number", "Batch", "Total Fees", "Paid Amount",
	"Balance", "Last Payment Date", "Days Past Due", "Status",
}

const csvDateFormat = "2006-01-02"

// WriteDuesCSV serializes dues rows to CSV per the export contract.
func WriteDuesCSV(w io.Writer, rows []models.DuesSummary) error {
	var b strings.Builder
	for i, col := range duesCSVHeader {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteCSV(col))
	}
	b.WriteByte('\n')

	for _, row := range rows {
		lastPayment := ""
		if row.LastPaymentDate != nil {
			lastPayment = row.LastPaymentDate.Format(csvDateFormat)
		}
		daysPastDue := ""
		if row.Status == models.DuesStatusOverdue {
			daysPastDue = strconv.Itoa(row.DaysPastDue)
		}

		cells := []string{
			quoteCSV(row.StudentName),
			quoteCSV(row.AdmissionNumber),
			quoteCSV(row.BatchName),
			formatAmount(row.TotalFees),
			formatAmount(row.PaidAmount),
			formatAmount(row.Balance),
			quoteCSV(lastPayment),
			daysPastDue,
			quoteCSV(string(row.Status)),
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// quoteCSV double-quotes a text cell, doubling embedded quotes.
func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatAmount renders a money value without a trailing zero fraction, so
// whole amounts round-trip as integers.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
