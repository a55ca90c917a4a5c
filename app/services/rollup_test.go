package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridian-schools/app/models"
)

func sampleRows() []models.DuesSummary {
	return []models.DuesSummary{
		{StudentID: "s1", StudentName: "Amina Nakato", AdmissionNumber: "ADM-001", BatchName: "P5 Blue", TotalFees: 8000, PaidAmount: 8000, Balance: 0, Status: models.DuesStatusPaid},
		{StudentID: "s2", StudentName: "Brian Okello", AdmissionNumber: "ADM-002", BatchName: "P5 Blue", TotalFees: 6000, PaidAmount: 2500, Balance: 3500, Status: models.DuesStatusOverdue, DaysPastDue: 12},
		{StudentID: "s3", StudentName: "Zaid Musoke", AdmissionNumber: "ADM-003", BatchName: "P6 Red", TotalFees: 7000, PaidAmount: 4000, Balance: 3000, Status: models.DuesStatusPartial},
		{StudentID: "s4", StudentName: "Joan Apio", AdmissionNumber: "ADM-004", BatchName: "Unknown Batch", TotalFees: 5000, PaidAmount: 5000, Balance: 0, Status: models.DuesStatusPaid},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleRows())

	assert.Equal(t, 4, summary.TotalStudents)
	assert.Equal(t, 2, summary.PaidStudents)
	assert.Equal(t, 1, summary.PartialPayments)
	assert.Equal(t, 1, summary.OverdueStudents)

	// Status counts partition the rows.
	assert.Equal(t, summary.TotalStudents,
		summary.PaidStudents+summary.PartialPayments+summary.OverdueStudents)

	assert.Equal(t, 19500.0, summary.TotalCollected)
	assert.Equal(t, 6500.0, summary.TotalOutstanding)
	assert.Equal(t, 50, summary.CollectionRate)
}

func TestSummarize_EmptyHasZeroRate(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalStudents)
	assert.Equal(t, 0, summary.CollectionRate)
}

func TestSummarize_RateRounding(t *testing.T) {
	rows := []models.DuesSummary{
		{Status: models.DuesStatusPaid},
		{Status: models.DuesStatusPartial},
		{Status: models.DuesStatusPartial},
	}
	// 1/3 = 33.33 rounds to 33
	assert.Equal(t, 33, Summarize(rows).CollectionRate)

	rows = append(rows, models.DuesSummary{Status: models.DuesStatusPaid},
		models.DuesSummary{Status: models.DuesStatusPaid})
	// 3/5 = 60
	assert.Equal(t, 60, Summarize(rows).CollectionRate)
}

func TestGroupByBatch(t *testing.T) {
	reports := GroupByBatch(sampleRows())
	require.Len(t, reports, 3)

	// Sorted by batch name.
	assert.Equal(t, "P5 Blue", reports[0].BatchName)
	assert.Equal(t, "P6 Red", reports[1].BatchName)
	assert.Equal(t, "Unknown Batch", reports[2].BatchName)

	p5 := reports[0]
	assert.Equal(t, 2, p5.TotalStudents)
	assert.Equal(t, 1, p5.PaidStudents)
	assert.Equal(t, 14000.0, p5.TotalFees)
	assert.Equal(t, 10500.0, p5.CollectedAmount)
	assert.Equal(t, 3500.0, p5.OutstandingAmount)
	assert.Equal(t, 50, p5.CollectionRate)

	// Every row lands in exactly one group.
	total := 0
	for _, r := range reports {
		total += r.TotalStudents
	}
	assert.Equal(t, len(sampleRows()), total)
}

func TestGroupByBatch_EmptyBatchNameUsesPlaceholder(t *testing.T) {
	reports := GroupByBatch([]models.DuesSummary{{StudentID: "s1", Status: models.DuesStatusPaid}})
	require.Len(t, reports, 1)
	assert.Equal(t, UnknownBatch, reports[0].BatchName)
	assert.Equal(t, 100, reports[0].CollectionRate)
}

func TestFilterSummaries(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name    string
		filter  SummaryFilter
		wantIDs []string
	}{
		{"no filters", SummaryFilter{}, []string{"s1", "s2", "s3", "s4"}},
		{"all sentinels", SummaryFilter{Batch: "all", Status: "all"}, []string{"s1", "s2", "s3", "s4"}},
		{"batch exact", SummaryFilter{Batch: "P5 Blue"}, []string{"s1", "s2"}},
		{"status exact", SummaryFilter{Status: "overdue"}, []string{"s2"}},
		{"unknown status treated as no filter", SummaryFilter{Status: "bogus"}, []string{"s1", "s2", "s3", "s4"}},
		{"search matches name case-insensitively", SummaryFilter{Search: "naka"}, []string{"s1"}},
		{"search matches admission number", SummaryFilter{Search: "adm-003"}, []string{"s3"}},
		{"search matches batch name", SummaryFilter{Search: "p6"}, []string{"s3"}},
		{"filters compose with AND", SummaryFilter{Batch: "P5 Blue", Status: "paid"}, []string{"s1"}},
		{"composed filters can exclude everything", SummaryFilter{Batch: "P6 Red", Status: "paid"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSummaries(rows, tt.filter)
			ids := make([]string, 0, len(got))
			for _, row := range got {
				ids = append(ids, row.StudentID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
