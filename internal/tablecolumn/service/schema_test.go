package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	"github.com/stretchr/testify/assert"
)

func newTestSchema(t *testing.T) columndomain.Schema {
	t.Helper()
	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	return NewSchema(node, SchemaOptions{
		TaxRates: []float64{0, 5, 12, 18, 28},
		Units:    []string{"Units", "PCS", "KG", "MTR", "LTR", "BOX", "SET"},
	})
}

func fieldNames(columns []columndomain.ColumnDefinition) []string {
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.FieldName)
	}
	return names
}

func TestDefaultColumns(t *testing.T) {
	s := newTestSchema(t)
	columns := s.Columns()

	assert.Len(t, columns, 10)
	assert.Equal(t, []string{
		"line_number", "product_code", "description", "quantity", "unit",
		"rate", "amount_excl_tax", "tax_rate", "tax_amount", "amount_incl_tax",
	}, fieldNames(columns))

	for i, col := range columns {
		assert.Equal(t, i+1, col.Order)
		assert.True(t, col.Visible)
		assert.NotZero(t, col.ID)
	}

	byField := make(map[string]columndomain.ColumnDefinition, len(columns))
	for _, col := range columns {
		byField[col.FieldName] = col
	}

	assert.True(t, byField["description"].Required)
	assert.True(t, byField["quantity"].Required)
	assert.True(t, byField["rate"].Required)
	assert.False(t, byField["line_number"].Mappable)

	assert.Equal(t, columndomain.FieldTypeDropdown, byField["unit"].FieldType)
	assert.Len(t, byField["unit"].Options, 7)
	assert.Len(t, byField["tax_rate"].Options, 5)
	assert.Equal(t, "18", byField["tax_rate"].Options[3].Value)

	assert.Equal(t, columndomain.FormulaLineSubtotal, byField["amount_excl_tax"].Formula)
	assert.Equal(t, columndomain.FormulaLineTax, byField["tax_amount"].Formula)
	assert.Equal(t, columndomain.FormulaLineTotal, byField["amount_incl_tax"].Formula)
	assert.Equal(t, []string{"quantity", "rate"}, byField["amount_excl_tax"].Dependencies)
	assert.Equal(t, []string{"quantity", "rate", "discount", "tax_rate"}, byField["amount_incl_tax"].Dependencies)
}

func TestAddColumn(t *testing.T) {
	s := newTestSchema(t)

	added, err := s.AddColumn(columndomain.ColumnDefinition{
		FieldName: "hsn_code",
		Header:    "HSN Code",
		FieldType: columndomain.FieldTypeText,
		Visible:   true,
		Editable:  true,
		Mappable:  true,
	})
	assert.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.Equal(t, 11, added.Order)
	assert.Len(t, s.Columns(), 11)
}

func TestAddColumnValidation(t *testing.T) {
	s := newTestSchema(t)

	_, err := s.AddColumn(columndomain.ColumnDefinition{
		FieldName: "  ",
		FieldType: columndomain.FieldTypeText,
	})
	assert.ErrorIs(t, err, columndomain.ErrInvalidFieldName)

	_, err = s.AddColumn(columndomain.ColumnDefinition{
		FieldName: "hsn_code",
		FieldType: columndomain.FieldType("slider"),
	})
	assert.ErrorIs(t, err, columndomain.ErrInvalidFieldType)

	_, err = s.AddColumn(columndomain.ColumnDefinition{
		FieldName: "quantity",
		FieldType: columndomain.FieldTypeNumber,
	})
	assert.ErrorIs(t, err, columndomain.ErrDuplicateFieldName)

	_, err = s.AddColumn(columndomain.ColumnDefinition{
		FieldName:    "margin",
		FieldType:    columndomain.FieldTypeCalculated,
		Formula:      columndomain.FormulaLineTotal,
		Dependencies: []string{"cost_price"},
	})
	assert.ErrorIs(t, err, columndomain.ErrUnknownDependency)

	assert.Len(t, s.Columns(), 10)
}

func TestAddCalculatedColumnDefaultsDependencies(t *testing.T) {
	s := newTestSchema(t)

	added, err := s.AddColumn(columndomain.ColumnDefinition{
		FieldName: "line_total_copy",
		Header:    "Line Total",
		FieldType: columndomain.FieldTypeCalculated,
		Formula:   columndomain.FormulaLineTax,
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"quantity", "rate", "discount", "tax_rate"}, added.Dependencies)
}

func TestRemoveColumn(t *testing.T) {
	s := newTestSchema(t)
	columns := s.Columns()

	s.RemoveColumn(columns[4].ID) // unit
	remaining := s.Columns()
	assert.Len(t, remaining, 9)
	for i, col := range remaining {
		assert.Equal(t, i+1, col.Order)
		assert.NotEqual(t, "unit", col.FieldName)
	}

	// unknown id leaves state untouched
	s.RemoveColumn(snowflake.ID(999999))
	assert.Len(t, s.Columns(), 9)
}

func TestMoveColumn(t *testing.T) {
	s := newTestSchema(t)
	columns := s.Columns()
	descID := columns[2].ID // description at order 3

	s.MoveColumn(descID, 1)
	moved := s.Columns()
	assert.Equal(t, "description", moved[0].FieldName)
	assert.Equal(t, "line_number", moved[1].FieldName)
	assert.Equal(t, "product_code", moved[2].FieldName)
	for i, col := range moved {
		assert.Equal(t, i+1, col.Order)
	}

	s.MoveColumn(descID, 5)
	moved = s.Columns()
	assert.Equal(t, "description", moved[4].FieldName)
	for i, col := range moved {
		assert.Equal(t, i+1, col.Order)
	}
}

func TestMoveColumnClampsOrder(t *testing.T) {
	s := newTestSchema(t)
	columns := s.Columns()

	s.MoveColumn(columns[0].ID, 99)
	moved := s.Columns()
	assert.Equal(t, "line_number", moved[len(moved)-1].FieldName)

	s.MoveColumn(columns[0].ID, -3)
	moved = s.Columns()
	assert.Equal(t, "line_number", moved[0].FieldName)
	for i, col := range moved {
		assert.Equal(t, i+1, col.Order)
	}
}

func TestToggleVisibility(t *testing.T) {
	s := newTestSchema(t)
	id := s.Columns()[1].ID

	s.ToggleVisibility(id)
	assert.Len(t, s.VisibleColumns(), 9)

	s.ToggleVisibility(id)
	assert.Len(t, s.VisibleColumns(), 10)

	s.ToggleVisibility(snowflake.ID(424242))
	assert.Len(t, s.VisibleColumns(), 10)
}

func TestUpdateColumn(t *testing.T) {
	s := newTestSchema(t)
	id := s.Columns()[1].ID

	header := "SKU"
	mappable := false
	updated, ok := s.UpdateColumn(id, columndomain.ColumnPatch{
		Header:   &header,
		Mappable: &mappable,
	})
	assert.True(t, ok)
	assert.Equal(t, "SKU", updated.Header)
	assert.False(t, updated.Mappable)
	assert.Equal(t, "product_code", updated.FieldName)

	_, ok = s.UpdateColumn(snowflake.ID(123456), columndomain.ColumnPatch{Header: &header})
	assert.False(t, ok)
}

func TestReplaceSortsAndResequences(t *testing.T) {
	s := newTestSchema(t)

	s.Replace([]columndomain.ColumnDefinition{
		{ID: snowflake.ID(2), FieldName: "b", FieldType: columndomain.FieldTypeText, Order: 7, Visible: true},
		{ID: snowflake.ID(1), FieldName: "a", FieldType: columndomain.FieldTypeText, Order: 3, Visible: true},
	})

	columns := s.Columns()
	assert.Equal(t, []string{"a", "b"}, fieldNames(columns))
	assert.Equal(t, 1, columns[0].Order)
	assert.Equal(t, 2, columns[1].Order)
}

func TestMappableColumns(t *testing.T) {
	s := newTestSchema(t)
	mappable := s.MappableColumns()
	assert.Len(t, mappable, 9)
	assert.NotContains(t, fieldNames(mappable), "line_number")
}
