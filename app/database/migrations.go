package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// RunMigrations applies the fee ledger schema. All statements are idempotent
// so the runner is safe to call on every startup.
func RunMigrations(db *sql.DB) error {
	slog.Info("running database migrations")

	statements := []struct {
		name  string
		query string
	}{
		{"batches", `
			CREATE TABLE IF NOT EXISTS batches (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				school_id UUID NOT NULL,
				name TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"students", `
			CREATE TABLE IF NOT EXISTS students (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				school_id UUID NOT NULL,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				admission_number TEXT NOT NULL UNIQUE,
				batch_id UUID REFERENCES batches(id),
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"fee_structures", `
			CREATE TABLE IF NOT EXISTS fee_structures (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				school_id UUID NOT NULL,
				name TEXT NOT NULL,
				academic_year VARCHAR(20) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"fee_components", `
			CREATE TABLE IF NOT EXISTS fee_components (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				fee_structure_id UUID NOT NULL REFERENCES fee_structures(id),
				name TEXT NOT NULL,
				amount DECIMAL(10,2) NOT NULL,
				recurring BOOLEAN NOT NULL DEFAULT false,
				priority INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"student_fee_assignments", `
			CREATE TABLE IF NOT EXISTS student_fee_assignments (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				student_id UUID NOT NULL REFERENCES students(id),
				fee_structure_id UUID NOT NULL REFERENCES fee_structures(id),
				total_amount DECIMAL(10,2) NOT NULL,
				paid_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
				balance DECIMAL(10,2) NOT NULL DEFAULT 0,
				assignment_date DATE NOT NULL,
				due_date DATE,
				status VARCHAR(20) NOT NULL DEFAULT 'pending',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"fee_payments", `
			CREATE TABLE IF NOT EXISTS fee_payments (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				student_fee_assignment_id UUID NOT NULL REFERENCES student_fee_assignments(id),
				amount DECIMAL(10,2) NOT NULL,
				payment_date TIMESTAMPTZ NOT NULL,
				payment_mode VARCHAR(50) NOT NULL DEFAULT 'cash',
				receipt_number TEXT NOT NULL UNIQUE,
				notes TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"fee_payment_allocations", `
			CREATE TABLE IF NOT EXISTS fee_payment_allocations (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				payment_id UUID NOT NULL REFERENCES fee_payments(id),
				fee_component_id UUID NOT NULL REFERENCES fee_components(id),
				allocated_amount DECIMAL(10,2) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`},
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				school_id UUID NOT NULL,
				email TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				role VARCHAR(30) NOT NULL DEFAULT 'accountant',
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMPTZ
			)`},
		{"assignment indexes", `
			CREATE INDEX IF NOT EXISTS idx_assignments_student
				ON student_fee_assignments(student_id) WHERE deleted_at IS NULL`},
		{"payment indexes", `
			CREATE INDEX IF NOT EXISTS idx_payments_assignment
				ON fee_payments(student_fee_assignment_id) WHERE deleted_at IS NULL`},
		{"allocation indexes", `
			CREATE INDEX IF NOT EXISTS idx_allocations_payment
				ON fee_payment_allocations(payment_id)`},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.query); err != nil {
			slog.Error("migration failed", "step", stmt.name, "error", err)
			return fmt.Errorf("migration %s: %w", stmt.name, err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
