package catalog

import (
	"strings"

	"github.com/pos/backend/internal/domain/shared"
)

// UnitOfMeasure is an immutable reference row describing a unit (e.g. "piece", "box of 12").
// Units are referenced by ID from product variants and are never duplicated or updated.
type UnitOfMeasure struct {
	shared.BaseEntity
	Name         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Abbreviation string `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for GORM
func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}

// NewUnitOfMeasure creates a new unit of measure
func NewUnitOfMeasure(name, abbreviation string) (*UnitOfMeasure, error) {
	name = strings.TrimSpace(name)
	abbreviation = strings.TrimSpace(abbreviation)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot exceed 50 characters")
	}
	if abbreviation == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_ABBREVIATION", "Unit abbreviation cannot be empty")
	}
	if len(abbreviation) > 10 {
		return nil, shared.NewDomainError("INVALID_UNIT_ABBREVIATION", "Unit abbreviation cannot exceed 10 characters")
	}

	return &UnitOfMeasure{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Abbreviation: abbreviation,
	}, nil
}
