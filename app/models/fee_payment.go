package models

import "time"

// FeePayment is one payment (full or installment) made against a student fee
// assignment.
type FeePayment struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	AssignmentID  string     `json:"student_fee_assignment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        float64    `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	PaymentDate   time.Time  `json:"payment_date" gorm:"not null;index" validate:"required"`
	PaymentMode   string     `json:"payment_mode" gorm:"type:varchar(50)"`
	ReceiptNumber string     `json:"receipt_number" gorm:"uniqueIndex"`
	Notes         *string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Assignment  *StudentFeeAssignment   `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID;references:ID"`
	Allocations []*FeePaymentAllocation `json:"allocations,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// FeePaymentAllocation records how a single payment is split across the
// components of the structure it pays against. Allocations for one payment
// sum to the payment's amount.
type FeePaymentAllocation struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentID       string    `json:"payment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeComponentID  string    `json:"fee_component_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AllocatedAmount float64   `json:"allocated_amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	Payment      *FeePayment   `json:"payment,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
	FeeComponent *FeeComponent `json:"fee_component,omitempty" gorm:"foreignKey:FeeComponentID;references:ID"`
}
