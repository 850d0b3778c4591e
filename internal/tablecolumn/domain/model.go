// Package domain contains the column schema model for the line-item table.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// FieldType is the editor widget backing a column.
type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeNumber       FieldType = "number"
	FieldTypeDate         FieldType = "date"
	FieldTypeDropdown     FieldType = "dropdown"
	FieldTypeAutocomplete FieldType = "autocomplete"
	FieldTypeTextarea     FieldType = "textarea"
	FieldTypeCheckbox     FieldType = "checkbox"
	FieldTypeCalculated   FieldType = "calculated"
)

// Valid reports whether the field type is a known widget.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeDropdown,
		FieldTypeAutocomplete, FieldTypeTextarea, FieldTypeCheckbox,
		FieldTypeCalculated:
		return true
	default:
		return false
	}
}

// FormulaKind names a fixed derived-value computation. A closed enum keeps
// dependency tracking statically checkable; there is no string-expression
// evaluator.
type FormulaKind string

const (
	FormulaNone         FormulaKind = ""
	FormulaLineSubtotal FormulaKind = "line_subtotal"
	FormulaLineTax      FormulaKind = "line_tax"
	FormulaLineTotal    FormulaKind = "line_total"
)

// Eval computes the formula value from the row's calculation inputs.
func (k FormulaKind) Eval(quantity, rate, discount, taxRate float64) float64 {
	subtotal := quantity * rate
	discounted := subtotal - discount
	tax := discounted * taxRate / 100
	switch k {
	case FormulaLineSubtotal:
		return subtotal
	case FormulaLineTax:
		return tax
	case FormulaLineTotal:
		return discounted + tax
	default:
		return 0
	}
}

// Dependencies lists the row fields whose change invalidates the formula.
func (k FormulaKind) Dependencies() []string {
	switch k {
	case FormulaLineSubtotal:
		return []string{"quantity", "rate"}
	case FormulaLineTax, FormulaLineTotal:
		return []string{"quantity", "rate", "discount", "tax_rate"}
	default:
		return nil
	}
}

// Option is one selectable value of a dropdown or autocomplete column.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ColumnDefinition describes one field rendered and edited in the table.
type ColumnDefinition struct {
	ID        snowflake.ID `json:"id"`
	FieldName string       `json:"field_name"`
	Header    string       `json:"header"`
	FieldType FieldType    `json:"field_type"`
	Order     int          `json:"order"`

	Visible  bool `json:"visible"`
	Editable bool `json:"editable"`
	Required bool `json:"required"`
	Mappable bool `json:"mappable"`

	Options      []Option    `json:"options,omitempty"`
	Formula      FormulaKind `json:"formula,omitempty"`
	Dependencies []string    `json:"dependencies,omitempty"`

	Width string `json:"width,omitempty"`
	Align string `json:"align,omitempty"`
}

// TableConfig is a persisted named snapshot of a full column list.
type TableConfig struct {
	ID               snowflake.ID   `gorm:"primaryKey"`
	Name             string         `gorm:"type:text;not null"`
	Description      *string        `gorm:"type:text"`
	Columns          datatypes.JSON `gorm:"type:jsonb;not null"`
	DefaultColumnIDs datatypes.JSON `gorm:"column:default_column_ids;type:jsonb;not null"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TableConfig) TableName() string { return "table_configs" }
