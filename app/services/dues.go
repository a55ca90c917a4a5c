package services

import (
	"context"
	"sort"
	"time"

	"meridian-schools/app/models"
)

// UnknownBatch is the placeholder batch label for students without a current
// batch. It is a legitimate report group, not an error.
const UnknownBatch = "Unknown Batch"

// DuesSummaries classifies every student of a school that has at least one
// fee assignment into exactly one summary row. Students with no assignments
// do not appear.
func (s *ReportService) DuesSummaries(ctx context.Context, schoolID string) ([]models.DuesSummary, error) {
	r, release := s.reader(ctx)
	defer release()

	assignments, err := r.AssignmentsBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []models.DuesSummary{}, nil
	}

	byStudent := make(map[string][]*models.StudentFeeAssignment)
	var studentIDs []string
	for _, a := range assignments {
		if _, ok := byStudent[a.StudentID]; !ok {
			studentIDs = append(studentIDs, a.StudentID)
		}
		byStudent[a.StudentID] = append(byStudent[a.StudentID], a)
	}

	assignmentIDs := make([]string, len(assignments))
	for i, a := range assignments {
		assignmentIDs[i] = a.ID
	}
	payments, err := r.PaymentsByAssignments(ctx, assignmentIDs)
	if err != nil {
		return nil, err
	}
	lastPayment := lastPaymentDates(assignments, payments)

	students, err := r.StudentsByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}
	studentByID := make(map[string]*models.Student, len(students))
	for _, st := range students {
		studentByID[st.ID] = st
	}

	batches, err := r.CurrentBatches(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]models.DuesSummary, 0, len(studentIDs))
	for _, id := range studentIDs {
		summary := classifyStudent(byStudent[id], lastPayment[id], now)
		summary.StudentID = id
		if st, ok := studentByID[id]; ok {
			summary.StudentName = st.FullName()
			summary.AdmissionNumber = st.AdmissionNumber
		}
		summary.BatchName = batchNameOrPlaceholder(batches[id])
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].StudentName != summaries[j].StudentName {
			return summaries[i].StudentName < summaries[j].StudentName
		}
		return summaries[i].AdmissionNumber < summaries[j].AdmissionNumber
	})
	return summaries, nil
}

// classifyStudent collapses one student's assignments into totals and a
// single status. Balances are recomputed from totals so drift in the stored
// balance column cannot skew the report.
//
// The reported due date is the earliest across all assignments; the overdue
// check is driven by the earliest due date among assignments that still owe
// money. One overdue component flags the whole student even when later
// components are not yet due, but a long-settled assignment cannot.
func classifyStudent(assignments []*models.StudentFeeAssignment, lastPayment *time.Time, now time.Time) models.DuesSummary {
	summary := models.DuesSummary{LastPaymentDate: lastPayment}

	var unpaidDue *time.Time
	for _, a := range assignments {
		summary.TotalFees += a.TotalAmount
		summary.PaidAmount += a.PaidAmount
		if a.DueDate == nil {
			continue
		}
		if summary.DueDate == nil || a.DueDate.Before(*summary.DueDate) {
			d := *a.DueDate
			summary.DueDate = &d
		}
		if a.Outstanding() > 0 && (unpaidDue == nil || a.DueDate.Before(*unpaidDue)) {
			d := *a.DueDate
			unpaidDue = &d
		}
	}
	summary.Balance = summary.TotalFees - summary.PaidAmount

	switch {
	case summary.Balance <= 0:
		summary.Status = models.DuesStatusPaid
	case unpaidDue != nil && unpaidDue.Before(now):
		summary.Status = models.DuesStatusOverdue
		summary.DaysPastDue = int(now.Sub(*unpaidDue).Hours() / 24)
	default:
		// No due date on anything still owed, or it lies in the future.
		// A missing due date never counts as already due.
		summary.Status = models.DuesStatusPartial
	}
	return summary
}

// lastPaymentDates maps each student to the latest payment date across all of
// their assignments.
func lastPaymentDates(assignments []*models.StudentFeeAssignment, payments []*models.FeePayment) map[string]*time.Time {
	studentByAssignment := make(map[string]string, len(assignments))
	for _, a := range assignments {
		studentByAssignment[a.ID] = a.StudentID
	}

	last := make(map[string]*time.Time)
	for _, p := range payments {
		studentID, ok := studentByAssignment[p.AssignmentID]
		if !ok {
			continue
		}
		if cur := last[studentID]; cur == nil || p.PaymentDate.After(*cur) {
			d := p.PaymentDate
			last[studentID] = &d
		}
	}
	return last
}

func batchNameOrPlaceholder(name string) string {
	if name == "" {
		return UnknownBatch
	}
	return name
}

// GetDuesReportSummary rolls the school's dues rows up into one summary.
func (s *ReportService) GetDuesReportSummary(ctx context.Context, schoolID string) (models.DuesReportSummary, error) {
	rows, err := s.DuesSummaries(ctx, schoolID)
	if err != nil {
		return models.DuesReportSummary{}, err
	}
	return Summarize(rows), nil
}

// GetBatchDuesReports rolls the school's dues rows up per batch.
func (s *ReportService) GetBatchDuesReports(ctx context.Context, schoolID string) ([]models.BatchDuesReport, error) {
	rows, err := s.DuesSummaries(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return GroupByBatch(rows), nil
}
