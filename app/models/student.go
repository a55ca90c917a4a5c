package models

import "time"

// Student is the slice of the student record the fee engine needs for
// reporting. Enrollment, guardians and academics live elsewhere.
type Student struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID        string     `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FirstName       string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName        string     `json:"last_name" gorm:"not null" validate:"required"`
	AdmissionNumber string     `json:"admission_number" gorm:"uniqueIndex;not null" validate:"required"`
	BatchID         *string    `json:"batch_id,omitempty" gorm:"index;type:uuid"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Batch *Batch `json:"batch,omitempty" gorm:"foreignKey:BatchID;references:ID"`
}

// FullName joins first and last name for display.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Batch is a cohort of students (a class section for one academic year).
type Batch struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID  string     `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
