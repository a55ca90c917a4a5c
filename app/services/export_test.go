package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian-schools/app/models"
)

func TestWriteDuesCSV_Format(t *testing.T) {
	rows := []models.DuesSummary{
		{
			StudentName:     `Amina "AJ" Nakato`,
			AdmissionNumber: "ADM-001",
			BatchName:       "P5 Blue",
			TotalFees:       8000,
			PaidAmount:      2500.5,
			Balance:         5499.5,
			LastPaymentDate: datePtr(2024, 3, 10),
			Status:          models.DuesStatusOverdue,
			DaysPastDue:     12,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDuesCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		`"Student Name","Admission Number","Batch","Total Fees","Paid Amount","Balance","Last Payment Date","Days Past Due","Status"`,
		lines[0])
	// Strings quoted (embedded quotes doubled), numbers raw.
	assert.Equal(t,
		`"Amina ""AJ"" Nakato","ADM-001","P5 Blue",8000,2500.5,5499.5,"2024-03-10",12,"overdue"`,
		lines[1])
}

func TestWriteDuesCSV_NonOverdueLeavesDaysEmpty(t *testing.T) {
	rows := []models.DuesSummary{
		{StudentName: "Zaid Musoke", AdmissionNumber: "ADM-003", BatchName: "P6 Red",
			TotalFees: 7000, PaidAmount: 7000, Status: models.DuesStatusPaid},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDuesCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Contains(t, lines[1], `,,"paid"`)
	// No payment ever made renders an empty date cell.
	assert.Contains(t, lines[1], `7000,0,""`)
}

// Exported rows must parse back with names, admission numbers and totals
// intact.
func TestWriteDuesCSV_RoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	require.NoError(t, WriteDuesCSV(&buf, rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, len(rows)+1)

	for i, row := range rows {
		record := parsed[i+1]
		assert.Equal(t, row.StudentName, record[0])
		assert.Equal(t, row.AdmissionNumber, record[1])
		assert.Equal(t, row.BatchName, record[2])

		totalFees, err := strconv.ParseFloat(record[3], 64)
		require.NoError(t, err)
		assert.Equal(t, row.TotalFees, totalFees)

		paid, err := strconv.ParseFloat(record[4], 64)
		require.NoError(t, err)
		assert.Equal(t, row.PaidAmount, paid)

		balance, err := strconv.ParseFloat(record[5], 64)
		require.NoError(t, err)
		assert.Equal(t, row.Balance, balance)

		assert.Equal(t, string(row.Status), record[8])
	}
}
