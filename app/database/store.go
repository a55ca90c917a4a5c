package database

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"

	"meridian-schools/app/models"
)

// FeeReader is the read-only view of the fee records the reporting engine
// consumes. The engine never writes; assignments and payments are created by
// the fee-collection workflow.
type FeeReader interface {
	AssignmentsBySchool(ctx context.Context, schoolID string) ([]*models.StudentFeeAssignment, error)
	AssignmentsByStudent(ctx context.Context, studentID string) ([]*models.StudentFeeAssignment, error)
	PaymentsByAssignments(ctx context.Context, assignmentIDs []string) ([]*models.FeePayment, error)
	AllocationsByPayments(ctx context.Context, paymentIDs []string) ([]*models.FeePaymentAllocation, error)
	StudentsByIDs(ctx context.Context, studentIDs []string) ([]*models.Student, error)
	CurrentBatches(ctx context.Context, studentIDs []string) (map[string]string, error)
	FeeStructureNames(ctx context.Context, structureIDs []string) (map[string]string, error)
	FeeComponentNames(ctx context.Context, componentIDs []string) (map[string]string, error)
}

// Snapshotter is implemented by stores that can serve a whole report from one
// point-in-time view. Reports issue several queries; without a snapshot a
// concurrent payment write can land between them.
type Snapshotter interface {
	Snapshot(ctx context.Context) (FeeReader, func(), error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store is the Postgres-backed FeeReader.
type Store struct {
	q  querier
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{q: db, db: db}
}

// Snapshot opens a read-only repeatable-read transaction so every query of
// one report sees the same committed state. The release func must be called
// when the report is done.
func (s *Store) Snapshot(ctx context.Context) (FeeReader, func(), error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Warn("failed to release report snapshot", "error", err)
		}
	}
	return &Store{q: tx}, release, nil
}

const assignmentColumns = `a.id, a.student_id, a.fee_structure_id, a.total_amount, a.paid_amount,
	       a.balance, a.assignment_date, a.due_date, a.status`

// AssignmentsBySchool returns all live assignments for active students of one
// school, across every fee structure and status.
func (s *Store) AssignmentsBySchool(ctx context.Context, schoolID string) ([]*models.StudentFeeAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
	          FROM student_fee_assignments a
	          JOIN students st ON a.student_id = st.id
	          WHERE st.school_id = $1 AND st.is_active = true
	            AND a.deleted_at IS NULL AND st.deleted_at IS NULL`

	rows, err := s.q.QueryContext(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (s *Store) AssignmentsByStudent(ctx context.Context, studentID string) ([]*models.StudentFeeAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
	          FROM student_fee_assignments a
	          WHERE a.student_id = $1 AND a.deleted_at IS NULL
	          ORDER BY a.assignment_date`

	rows, err := s.q.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func scanAssignments(rows *sql.Rows) ([]*models.StudentFeeAssignment, error) {
	var assignments []*models.StudentFeeAssignment
	for rows.Next() {
		a := &models.StudentFeeAssignment{}
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.FeeStructureID, &a.TotalAmount, &a.PaidAmount,
			&a.Balance, &a.AssignmentDate, &a.DueDate, &a.Status,
		)
		if err != nil {
			slog.Warn("skipping unreadable assignment row", "error", err)
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// PaymentsByAssignments returns every payment made against the given
// assignments, oldest first.
func (s *Store) PaymentsByAssignments(ctx context.Context, assignmentIDs []string) ([]*models.FeePayment, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT p.id, p.student_fee_assignment_id, p.amount, p.payment_date,
	                 p.payment_mode, p.receipt_number, p.notes
	          FROM fee_payments p
	          WHERE p.student_fee_assignment_id = ANY($1) AND p.deleted_at IS NULL
	          ORDER BY p.payment_date, p.created_at`

	rows, err := s.q.QueryContext(ctx, query, pq.Array(assignmentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		p := &models.FeePayment{}
		err := rows.Scan(&p.ID, &p.AssignmentID, &p.Amount, &p.PaymentDate,
			&p.PaymentMode, &p.ReceiptNumber, &p.Notes)
		if err != nil {
			slog.Warn("skipping unreadable payment row", "error", err)
			continue
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *Store) AllocationsByPayments(ctx context.Context, paymentIDs []string) ([]*models.FeePaymentAllocation, error) {
	if len(paymentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT al.id, al.payment_id, al.fee_component_id, al.allocated_amount
	          FROM fee_payment_allocations al
	          WHERE al.payment_id = ANY($1)
	          ORDER BY al.created_at`

	rows, err := s.q.QueryContext(ctx, query, pq.Array(paymentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.FeePaymentAllocation
	for rows.Next() {
		al := &models.FeePaymentAllocation{}
		if err := rows.Scan(&al.ID, &al.PaymentID, &al.FeeComponentID, &al.AllocatedAmount); err != nil {
			slog.Warn("skipping unreadable allocation row", "error", err)
			continue
		}
		allocations = append(allocations, al)
	}
	return allocations, rows.Err()
}

func (s *Store) StudentsByIDs(ctx context.Context, studentIDs []string) ([]*models.Student, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT s.id, s.school_id, s.first_name, s.last_name, s.admission_number, s.batch_id
	          FROM students s
	          WHERE s.id = ANY($1) AND s.deleted_at IS NULL`

	rows, err := s.q.QueryContext(ctx, query, pq.Array(studentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		st := &models.Student{}
		err := rows.Scan(&st.ID, &st.SchoolID, &st.FirstName, &st.LastName,
			&st.AdmissionNumber, &st.BatchID)
		if err != nil {
			slog.Warn("skipping unreadable student row", "error", err)
			continue
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// CurrentBatches maps student ids to their current batch name. Students with
// no batch are simply absent from the map.
func (s *Store) CurrentBatches(ctx context.Context, studentIDs []string) (map[string]string, error) {
	if len(studentIDs) == 0 {
		return map[string]string{}, nil
	}

	query := `SELECT s.id, b.name
	          FROM students s
	          JOIN batches b ON s.batch_id = b.id
	          WHERE s.id = ANY($1) AND b.deleted_at IS NULL`

	return s.nameMap(ctx, query, studentIDs)
}

func (s *Store) FeeStructureNames(ctx context.Context, structureIDs []string) (map[string]string, error) {
	if len(structureIDs) == 0 {
		return map[string]string{}, nil
	}
	return s.nameMap(ctx, `SELECT id, name FROM fee_structures WHERE id = ANY($1)`, structureIDs)
}

func (s *Store) FeeComponentNames(ctx context.Context, componentIDs []string) (map[string]string, error) {
	if len(componentIDs) == 0 {
		return map[string]string{}, nil
	}
	return s.nameMap(ctx, `SELECT id, name FROM fee_components WHERE id = ANY($1)`, componentIDs)
}

func (s *Store) nameMap(ctx context.Context, query string, ids []string) (map[string]string, error) {
	rows, err := s.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			continue
		}
		names[id] = name
	}
	return names, rows.Err()
}
