package services

import (
	"math"
	"sort"
	"strings"

	"meridian-schools/app/models"
)

// FilterAll is the sentinel that disables a batch or status filter.
const FilterAll = "all"

// SummaryFilter narrows a dues report. Zero values and the "all" sentinel
// mean no filtering on that criterion.
type SummaryFilter struct {
	Batch  string `json:"batch"`
	Status string `json:"status" validate:"omitempty,oneof=all paid partial overdue"`
	Search string `json:"search"`
}

// Summarize rolls a set of dues rows up into school-level counts and totals.
// The three status counts partition the rows exactly.
func Summarize(rows []models.DuesSummary) models.DuesReportSummary {
	summary := models.DuesReportSummary{TotalStudents: len(rows)}

	for _, row := range rows {
		switch row.Status {
		case models.DuesStatusPaid:
			summary.PaidStudents++
		case models.DuesStatusOverdue:
			summary.OverdueStudents++
		default:
			summary.PartialPayments++
		}
		summary.TotalCollected += row.PaidAmount
		summary.TotalOutstanding += row.Balance
	}

	summary.CollectionRate = collectionRate(summary.PaidStudents, summary.TotalStudents)
	return summary
}

// GroupByBatch partitions dues rows by batch name and rolls each group up,
// sorted by batch name. Rows without a batch fall under the UnknownBatch
// group.
func GroupByBatch(rows []models.DuesSummary) []models.BatchDuesReport {
	groups := make(map[string]*models.BatchDuesReport)
	for _, row := range rows {
		name := batchNameOrPlaceholder(row.BatchName)
		group, ok := groups[name]
		if !ok {
			group = &models.BatchDuesReport{BatchName: name}
			groups[name] = group
		}
		group.TotalStudents++
		if row.Status == models.DuesStatusPaid {
			group.PaidStudents++
		}
		group.TotalFees += row.TotalFees
		group.CollectedAmount += row.PaidAmount
		group.OutstandingAmount += row.Balance
	}

	reports := make([]models.BatchDuesReport, 0, len(groups))
	for _, group := range groups {
		group.CollectionRate = collectionRate(group.PaidStudents, group.TotalStudents)
		reports = append(reports, *group)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].BatchName < reports[j].BatchName
	})
	return reports
}

// FilterSummaries applies batch, status and search criteria, AND-composed.
// Unknown status values are treated as no filter, not rejected.
func FilterSummaries(rows []models.DuesSummary, filter SummaryFilter) []models.DuesSummary {
	filterStatus := filter.Status != "" && filter.Status != FilterAll && knownStatus(filter.Status)
	filterBatch := filter.Batch != "" && filter.Batch != FilterAll
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]models.DuesSummary, 0, len(rows))
	for _, row := range rows {
		if filterBatch && row.BatchName != filter.Batch {
			continue
		}
		if filterStatus && string(row.Status) != filter.Status {
			continue
		}
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// matchesSearch reports whether any of the student's display fields contains
// the lowercased search term.
func matchesSearch(row models.DuesSummary, search string) bool {
	return strings.Contains(strings.ToLower(row.StudentName), search) ||
		strings.Contains(strings.ToLower(row.AdmissionNumber), search) ||
		strings.Contains(strings.ToLower(row.BatchName), search)
}

func knownStatus(status string) bool {
	switch models.DuesStatus(status) {
	case models.DuesStatusPaid, models.DuesStatusPartial, models.DuesStatusOverdue:
		return true
	}
	return false
}

// collectionRate is the rounded integer percentage of paid students,
// defined as 0 for an empty report.
func collectionRate(paid, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(paid) / float64(total) * 100))
}
