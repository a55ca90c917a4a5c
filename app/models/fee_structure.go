package models

import "time"

// FeeStructure is a named template of fee components applicable to a cohort
// for one academic year. Structures are treated as immutable once a student
// assignment references them.
type FeeStructure struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID     string     `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name         string     `json:"name" gorm:"not null" validate:"required"`
	AcademicYear string     `json:"academic_year" gorm:"not null;type:varchar(20)" validate:"required"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Components []*FeeComponent `json:"components,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
}

// FeeComponent is one line item within a fee structure.
type FeeComponent struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FeeStructureID string     `json:"fee_structure_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name           string     `json:"name" gorm:"not null" validate:"required"`
	Amount         float64    `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	Recurring      bool       `json:"recurring" gorm:"default:false"`
	Priority       int        `json:"priority" gorm:"default:0"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	FeeStructure *FeeStructure `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
}
