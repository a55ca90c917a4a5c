package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"meridian-schools/app/database"
	"meridian-schools/app/models"
)

// ErrStudentNotFound is returned when a financial record is requested for an
// unknown or inactive student.
var ErrStudentNotFound = errors.New("student not found")

// ReportService derives ledgers, dues classifications and rollups from the
// fee store. It holds no state between calls; every report computes from a
// fresh read of the store.
type ReportService struct {
	store database.FeeReader
	now   func() time.Time
}

func NewReportService(store database.FeeReader) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// reader returns the store view a report should run against, snapshotted when
// the store supports it so multi-query reports see one committed state.
func (s *ReportService) reader(ctx context.Context) (database.FeeReader, func()) {
	if snap, ok := s.store.(database.Snapshotter); ok {
		r, release, err := snap.Snapshot(ctx)
		if err == nil {
			return r, release
		}
		slog.Warn("report snapshot unavailable, reading without one", "error", err)
	}
	return s.store, func() {}
}

// BuildLedger reconstructs the chronological statement for one student:
// one debit per fee assignment, one credit per payment, with a running
// balance stamped on each entry.
func (s *ReportService) BuildLedger(ctx context.Context, studentID string) ([]models.LedgerEntry, error) {
	r, release := s.reader(ctx)
	defer release()

	assignments, err := r.AssignmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []models.LedgerEntry{}, nil
	}

	payments, allocations, err := loadPayments(ctx, r, assignments)
	if err != nil {
		return nil, err
	}

	structureNames, err := r.FeeStructureNames(ctx, structureIDs(assignments))
	if err != nil {
		return nil, err
	}
	componentNames, err := r.FeeComponentNames(ctx, componentIDs(allocations))
	if err != nil {
		return nil, err
	}

	return buildLedgerEntries(assignments, payments, allocations, structureNames, componentNames), nil
}

// loadPayments fetches the payments for a set of assignments along with their
// allocations.
func loadPayments(ctx context.Context, r database.FeeReader, assignments []*models.StudentFeeAssignment) ([]*models.FeePayment, []*models.FeePaymentAllocation, error) {
	ids := make([]string, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ID
	}

	payments, err := r.PaymentsByAssignments(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	paymentIDs := make([]string, len(payments))
	for i, p := range payments {
		paymentIDs[i] = p.ID
	}
	allocations, err := r.AllocationsByPayments(ctx, paymentIDs)
	if err != nil {
		return nil, nil, err
	}
	return payments, allocations, nil
}

// buildLedgerEntries is the pure core of the ledger: debits before credits,
// stable chronological sort, single running-balance walk from zero.
func buildLedgerEntries(
	assignments []*models.StudentFeeAssignment,
	payments []*models.FeePayment,
	allocations []*models.FeePaymentAllocation,
	structureNames map[string]string,
	componentNames map[string]string,
) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(assignments)+len(payments))

	known := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		known[a.ID] = true
		entries = append(entries, models.LedgerEntry{
			ID:          a.ID,
			Date:        a.AssignmentDate,
			Description: "Fee Assignment - " + structureNames[a.FeeStructureID],
			Debit:       a.TotalAmount,
		})
	}

	allocsByPayment := make(map[string][]*models.FeePaymentAllocation)
	for _, al := range allocations {
		allocsByPayment[al.PaymentID] = append(allocsByPayment[al.PaymentID], al)
	}

	for _, p := range payments {
		if !known[p.AssignmentID] {
			// Referential integrity belongs to the store; an orphan here is
			// data drift, not a reason to fail the whole statement.
			slog.Warn("skipping payment with missing assignment",
				"payment_id", p.ID, "assignment_id", p.AssignmentID)
			continue
		}
		entries = append(entries, models.LedgerEntry{
			ID:          p.ID,
			Date:        p.PaymentDate,
			Description: paymentDescription(p, allocsByPayment[p.ID], componentNames),
			Credit:      p.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := 0.0
	for i := range entries {
		balance += entries[i].Debit - entries[i].Credit
		entries[i].RunningBalance = balance
	}
	return entries
}

// paymentDescription labels a credit entry with the distinct component names
// its allocations touched, falling back to "Payment" when nothing resolves.
func paymentDescription(p *models.FeePayment, allocs []*models.FeePaymentAllocation, componentNames map[string]string) string {
	var parts []string
	seen := make(map[string]bool)
	for _, al := range allocs {
		name, ok := componentNames[al.FeeComponentID]
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		parts = append(parts, name)
	}

	desc := "Payment"
	if len(parts) > 0 {
		desc = parts[0]
		for _, part := range parts[1:] {
			desc += ", " + part
		}
	}
	if p.Notes != nil && *p.Notes != "" {
		desc += " (" + *p.Notes + ")"
	}
	return desc
}

// GetFinancialRecord assembles the full statement view for one student.
func (s *ReportService) GetFinancialRecord(ctx context.Context, studentID string) (*models.StudentFinancialRecord, error) {
	r, release := s.reader(ctx)
	defer release()

	students, err := r.StudentsByIDs(ctx, []string{studentID})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrStudentNotFound
	}
	student := students[0]

	batches, err := r.CurrentBatches(ctx, []string{studentID})
	if err != nil {
		return nil, err
	}

	record := &models.StudentFinancialRecord{
		StudentID:       student.ID,
		StudentName:     student.FullName(),
		AdmissionNumber: student.AdmissionNumber,
		BatchName:       batchNameOrPlaceholder(batches[studentID]),
		FeeStructures:   []string{},
		Ledger:          []models.LedgerEntry{},
	}

	assignments, err := r.AssignmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return record, nil
	}

	payments, allocations, err := loadPayments(ctx, r, assignments)
	if err != nil {
		return nil, err
	}
	structureNames, err := r.FeeStructureNames(ctx, structureIDs(assignments))
	if err != nil {
		return nil, err
	}
	componentNames, err := r.FeeComponentNames(ctx, componentIDs(allocations))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, a := range assignments {
		record.TotalFees += a.TotalAmount
		record.PaidAmount += a.PaidAmount
		if name := structureNames[a.FeeStructureID]; name != "" && !seen[name] {
			seen[name] = true
			record.FeeStructures = append(record.FeeStructures, name)
		}
	}
	record.Balance = record.TotalFees - record.PaidAmount

	for _, p := range payments {
		if record.LastPaymentDate == nil || p.PaymentDate.After(*record.LastPaymentDate) {
			d := p.PaymentDate
			record.LastPaymentDate = &d
		}
	}

	record.Ledger = buildLedgerEntries(assignments, payments, allocations, structureNames, componentNames)
	return record, nil
}

func structureIDs(assignments []*models.StudentFeeAssignment) []string {
	seen := make(map[string]bool, len(assignments))
	var ids []string
	for _, a := range assignments {
		if !seen[a.FeeStructureID] {
			seen[a.FeeStructureID] = true
			ids = append(ids, a.FeeStructureID)
		}
	}
	return ids
}

func componentIDs(allocations []*models.FeePaymentAllocation) []string {
	seen := make(map[string]bool, len(allocations))
	var ids []string
	for _, al := range allocations {
		if !seen[al.FeeComponentID] {
			seen[al.FeeComponentID] = true
			ids = append(ids, al.FeeComponentID)
		}
	}
	return ids
}
