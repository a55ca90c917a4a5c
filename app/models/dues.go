package models

import "time"

// DuesStatus classifies a student's overall fee position.
type DuesStatus string

const (
	DuesStatusPaid    DuesStatus = "paid"
	DuesStatusPartial DuesStatus = "partial"
	DuesStatusOverdue DuesStatus = "overdue"
)

// LedgerEntry is one derived debit or credit row in a student statement.
// Entries are never persisted; they are rebuilt from assignments and
// payments on every request.
type LedgerEntry struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	Debit          float64   `json:"debit"`
	Credit         float64   `json:"credit"`
	RunningBalance float64   `json:"running_balance"`
}

// StudentFinancialRecord is the full statement view for one student.
type StudentFinancialRecord struct {
	StudentID       string        `json:"student_id"`
	StudentName     string        `json:"student_name"`
	AdmissionNumber string        `json:"admission_number"`
	BatchName       string        `json:"batch_name"`
	FeeStructures   []string      `json:"fee_structures"`
	TotalFees       float64       `json:"total_fees"`
	PaidAmount      float64       `json:"paid_amount"`
	Balance         float64       `json:"balance"`
	LastPaymentDate *time.Time    `json:"last_payment_date,omitempty"`
	Ledger          []LedgerEntry `json:"ledger"`
}

// DuesSummary is the one-row-per-student dues report entry.
// DaysPastDue is only meaningful when Status is overdue.
type DuesSummary struct {
	StudentID       string     `json:"student_id"`
	StudentName     string     `json:"student_name"`
	AdmissionNumber string     `json:"admission_number"`
	BatchName       string     `json:"batch_name"`
	TotalFees       float64    `json:"total_fees"`
	PaidAmount      float64    `json:"paid_amount"`
	Balance         float64    `json:"balance"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	Status          DuesStatus `json:"status"`
	DaysPastDue     int        `json:"days_past_due,omitempty"`
}

// DuesReportSummary is the school-level rollup of a dues report.
type DuesReportSummary struct {
	TotalStudents    int     `json:"total_students"`
	PaidStudents     int     `json:"paid_students"`
	PartialPayments  int     `json:"partial_payments"`
	OverdueStudents  int     `json:"overdue_students"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	CollectionRate   int     `json:"collection_rate"`
}

// BatchDuesReport is the per-batch rollup of a dues report.
type BatchDuesReport struct {
	BatchName         string  `json:"batch_name"`
	TotalStudents     int     `json:"total_students"`
	PaidStudents      int     `json:"paid_students"`
	TotalFees         float64 `json:"total_fees"`
	CollectedAmount   float64 `json:"collected_amount"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	CollectionRate    int     `json:"collection_rate"`
}
