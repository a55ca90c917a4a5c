package models

import "time"

// StudentFeeAssignment binds a fee structure's total to one student and
// tracks how much of it has been paid. The store maintains
// balance = total_amount - paid_amount; aggregation code recomputes the
// difference instead of trusting the stored balance.
type StudentFeeAssignment struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeStructureID string     `json:"fee_structure_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TotalAmount    float64    `json:"total_amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	PaidAmount     float64    `json:"paid_amount" gorm:"not null;type:decimal(10,2);default:0" validate:"gte=0"`
	Balance        float64    `json:"balance" gorm:"not null;type:decimal(10,2);default:0"`
	AssignmentDate time.Time  `json:"assignment_date" gorm:"not null;type:date" validate:"required"`
	DueDate        *time.Time `json:"due_date,omitempty" gorm:"type:date;index"`
	Status         string     `json:"status" gorm:"not null;default:'pending';type:varchar(20)"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Student      *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	FeeStructure *FeeStructure `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
	Payments     []*FeePayment `json:"payments,omitempty" gorm:"foreignKey:AssignmentID;references:ID"`
}

// Outstanding returns the amount still owed on this assignment, recomputed
// from totals rather than the stored balance column.
func (a *StudentFeeAssignment) Outstanding() float64 {
	return a.TotalAmount - a.PaidAmount
}
