package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	"github.com/stretchr/testify/assert"
)

func newTestTable(t *testing.T) linetabledomain.Table {
	t.Helper()
	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	return NewTable(node)
}

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func TestAddRowDefaults(t *testing.T) {
	tbl := newTestTable(t)

	row := tbl.AddRow()
	assert.NotZero(t, row.ID)
	assert.Equal(t, 1, row.LineNumber)
	assert.Equal(t, 1.0, row.Quantity)
	assert.Equal(t, 0.0, row.Rate)
	assert.Equal(t, 18.0, row.TaxRate)
	assert.Equal(t, 0.0, row.Amount)
	assert.True(t, row.Meta.IsNew)
	assert.False(t, row.Meta.IsEdited)

	second := tbl.AddRow()
	assert.Equal(t, 2, second.LineNumber)
	assert.NotEqual(t, row.ID, second.ID)
}

func TestAddRowsNegativeCount(t *testing.T) {
	tbl := newTestTable(t)
	tbl.AddRow()

	_, err := tbl.AddRows(-1)
	assert.ErrorIs(t, err, linetabledomain.ErrInvalidArgument)
	assert.Len(t, tbl.Rows(), 1)

	added, err := tbl.AddRows(3)
	assert.NoError(t, err)
	assert.Len(t, added, 3)
	assert.Len(t, tbl.Rows(), 4)
}

func TestUpdateRowIntraState(t *testing.T) {
	tbl := newTestTable(t)
	row := tbl.AddRow()

	updated, ok := tbl.UpdateRow(row.ID, linetabledomain.RowPatch{
		Quantity: f64p(3),
		Rate:     f64p(100),
		TaxRate:  f64p(18),
	})
	assert.True(t, ok)
	assert.InDelta(t, 354, updated.Amount, 1e-9)
	assert.InDelta(t, 27, updated.CGST, 1e-9)
	assert.InDelta(t, 27, updated.SGST, 1e-9)
	assert.Equal(t, 0.0, updated.IGST)
	assert.True(t, updated.Meta.IsEdited)
}

func TestInterStateSplit(t *testing.T) {
	tbl := newTestTable(t)
	tbl.SetInterState(true)

	row := tbl.AddRow()
	updated, _ := tbl.UpdateRow(row.ID, linetabledomain.RowPatch{
		Quantity: f64p(3),
		Rate:     f64p(100),
		TaxRate:  f64p(18),
	})
	assert.InDelta(t, 354, updated.Amount, 1e-9)
	assert.InDelta(t, 54, updated.IGST, 1e-9)
	assert.Equal(t, 0.0, updated.CGST)
	assert.Equal(t, 0.0, updated.SGST)
}

func TestSetInterStateRecalculatesAllRows(t *testing.T) {
	tbl := newTestTable(t)

	first := tbl.AddRow()
	second := tbl.AddRow()
	tbl.UpdateRow(first.ID, linetabledomain.RowPatch{Quantity: f64p(2), Rate: f64p(50)})
	tbl.UpdateRow(second.ID, linetabledomain.RowPatch{Quantity: f64p(1), Rate: f64p(200)})

	tbl.SetInterState(true)
	for _, row := range tbl.Rows() {
		assert.Equal(t, 0.0, row.CGST)
		assert.Equal(t, 0.0, row.SGST)
		assert.Greater(t, row.IGST, 0.0)
	}

	tbl.SetInterState(false)
	for _, row := range tbl.Rows() {
		assert.Equal(t, 0.0, row.IGST)
		assert.InDelta(t, row.CGST, row.SGST, 1e-9)
	}
}

func TestUpdateRowUnknownIDIsNoOp(t *testing.T) {
	tbl := newTestTable(t)
	tbl.AddRow()
	before := tbl.Rows()

	_, ok := tbl.UpdateRow(snowflake.ID(999999), linetabledomain.RowPatch{Quantity: f64p(5)})
	assert.False(t, ok)
	assert.Equal(t, before, tbl.Rows())
}

func TestDeleteMiddleRowResequences(t *testing.T) {
	tbl := newTestTable(t)
	tbl.AddRow()
	middle := tbl.AddRow()
	tbl.AddRow()

	tbl.DeleteRow(middle.ID)

	rows := tbl.Rows()
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].LineNumber)
	assert.Equal(t, 2, rows[1].LineNumber)

	// unknown id is a no-op
	tbl.DeleteRow(middle.ID)
	assert.Len(t, tbl.Rows(), 2)
}

func TestDeleteRowsIgnoresUnknownIDs(t *testing.T) {
	tbl := newTestTable(t)
	first := tbl.AddRow()
	tbl.AddRow()
	third := tbl.AddRow()

	tbl.DeleteRows([]snowflake.ID{first.ID, third.ID, snowflake.ID(424242)})

	rows := tbl.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].LineNumber)
}

func TestDuplicateRow(t *testing.T) {
	tbl := newTestTable(t)
	row := tbl.AddRow()
	tbl.UpdateRow(row.ID, linetabledomain.RowPatch{
		Description: strp("Widget"),
		Quantity:    f64p(2),
		Rate:        f64p(75),
	})

	copied, ok := tbl.DuplicateRow(row.ID)
	assert.True(t, ok)
	assert.NotEqual(t, row.ID, copied.ID)
	assert.Equal(t, 2, copied.LineNumber)
	assert.Equal(t, "Widget", copied.Description)
	assert.Equal(t, 2.0, copied.Quantity)
	assert.True(t, copied.Meta.IsNew)
	assert.False(t, copied.Meta.IsEdited)

	_, ok = tbl.DuplicateRow(snowflake.ID(555555))
	assert.False(t, ok)
	assert.Len(t, tbl.Rows(), 2)
}

func TestPopulateFromOCRReplacesRows(t *testing.T) {
	tbl := newTestTable(t)
	for i := 0; i < 5; i++ {
		tbl.AddRow()
	}

	rows := tbl.PopulateFromOCR([]linetabledomain.ImportedLineItem{
		{
			Description: strp("Item A"),
			Quantity:    f64p(2),
			Rate:        f64p(50),
			TaxRate:     f64p(18),
		},
	})

	assert.Len(t, rows, 1)
	assert.Len(t, tbl.Rows(), 1)
	assert.Equal(t, "Item A", rows[0].Description)
	assert.Equal(t, 1, rows[0].LineNumber)
	assert.True(t, rows[0].Meta.IsMapped)
	assert.False(t, rows[0].Meta.IsEdited)
	assert.InDelta(t, 118, rows[0].Amount, 1e-9)
}

func TestPopulateFromOCRDefaults(t *testing.T) {
	tbl := newTestTable(t)

	rows := tbl.PopulateFromOCR([]linetabledomain.ImportedLineItem{
		{Description: strp("Sparse")},
	})

	assert.Equal(t, 1.0, rows[0].Quantity)
	assert.Equal(t, 0.0, rows[0].TaxRate)
	assert.Equal(t, "Units", rows[0].Unit)
	assert.Equal(t, 0.0, rows[0].Rate)
}

func TestClearAllRows(t *testing.T) {
	tbl := newTestTable(t)
	tbl.AddRows(3)

	tbl.ClearAllRows()
	assert.Empty(t, tbl.Rows())
}

func TestValidateRows(t *testing.T) {
	tbl := newTestTable(t)
	row := tbl.AddRow() // blank description, rate 0

	violations := tbl.ValidateRows()
	assert.Len(t, violations, 2)
	assert.Equal(t, "description", violations[0].Field)
	assert.Equal(t, "Description is required", violations[0].Message)
	assert.Equal(t, "rate", violations[1].Field)
	assert.Equal(t, "Rate must be greater than 0", violations[1].Message)

	tbl.UpdateRow(row.ID, linetabledomain.RowPatch{
		Description: strp("Widget"),
		Quantity:    f64p(0),
		Rate:        f64p(10),
	})
	violations = tbl.ValidateRows()
	assert.Len(t, violations, 1)
	assert.Equal(t, "quantity", violations[0].Field)
	assert.Equal(t, "Quantity must be greater than 0", violations[0].Message)

	tbl.UpdateRow(row.ID, linetabledomain.RowPatch{Quantity: f64p(1)})
	assert.Empty(t, tbl.ValidateRows())
}

// Amount identity holds across arbitrary mutation sequences.
func TestAmountIdentity(t *testing.T) {
	tbl := newTestTable(t)

	first := tbl.AddRow()
	tbl.UpdateRow(first.ID, linetabledomain.RowPatch{Quantity: f64p(3.5), Rate: f64p(99.99), Discount: f64p(20), TaxRate: f64p(12)})
	second := tbl.AddRow()
	tbl.UpdateRow(second.ID, linetabledomain.RowPatch{Quantity: f64p(1), Rate: f64p(5), Discount: f64p(50), TaxRate: f64p(28)})
	tbl.SetInterState(true)
	tbl.DuplicateRow(first.ID)
	tbl.SetInterState(false)

	for _, row := range tbl.Rows() {
		discounted := row.Quantity*row.Rate - row.Discount
		expected := discounted + discounted*row.TaxRate/100
		assert.InDelta(t, expected, row.Amount, 1e-9)

		tax := row.CGST + row.SGST + row.IGST
		assert.InDelta(t, discounted*row.TaxRate/100, tax, 1e-9)
	}
}

// Discounts above the base are passed through, not clamped.
func TestNegativeDiscountedAmountPassesThrough(t *testing.T) {
	tbl := newTestTable(t)
	row := tbl.AddRow()

	updated, _ := tbl.UpdateRow(row.ID, linetabledomain.RowPatch{
		Quantity: f64p(1),
		Rate:     f64p(100),
		Discount: f64p(150),
		TaxRate:  f64p(18),
	})

	// discounted = -50, tax = -9
	assert.InDelta(t, -59, updated.Amount, 1e-9)
	assert.InDelta(t, -4.5, updated.CGST, 1e-9)
	assert.InDelta(t, -4.5, updated.SGST, 1e-9)
}

func TestLineNumbersStayDense(t *testing.T) {
	tbl := newTestTable(t)

	rows, _ := tbl.AddRows(5)
	tbl.DeleteRow(rows[1].ID)
	tbl.DuplicateRow(rows[3].ID)
	tbl.DeleteRows([]snowflake.ID{rows[0].ID, rows[4].ID})

	current := tbl.Rows()
	for i, row := range current {
		assert.Equal(t, i+1, row.LineNumber)
	}
}
