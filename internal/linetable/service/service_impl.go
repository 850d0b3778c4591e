package service

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
)

const (
	defaultQuantity = 1
	defaultTaxRate  = 18
	defaultUnit     = "Units"
)

// table is the in-memory row store. Single-threaded by contract; the
// registry serializes calls into it.
type table struct {
	genID      *snowflake.Node
	rows       []linetabledomain.LineItem
	interState bool
}

// NewTable builds an empty line-item table.
func NewTable(genID *snowflake.Node) linetabledomain.Table {
	return &table{genID: genID}
}

func (t *table) AddRow() linetabledomain.LineItem {
	row := linetabledomain.LineItem{
		ID:         t.genID.Generate(),
		LineNumber: len(t.rows) + 1,
		Quantity:   defaultQuantity,
		TaxRate:    defaultTaxRate,
		Meta:       linetabledomain.RowMeta{IsNew: true},
	}
	recalcRow(&row, t.interState)
	t.rows = append(t.rows, row)
	return row
}

func (t *table) AddRows(count int) ([]linetabledomain.LineItem, error) {
	if count < 0 {
		return nil, linetabledomain.ErrInvalidArgument
	}
	added := make([]linetabledomain.LineItem, 0, count)
	for i := 0; i < count; i++ {
		added = append(added, t.AddRow())
	}
	return added, nil
}

func (t *table) UpdateRow(rowID snowflake.ID, patch linetabledomain.RowPatch) (linetabledomain.LineItem, bool) {
	idx := t.indexOf(rowID)
	if idx < 0 {
		return linetabledomain.LineItem{}, false
	}

	row := &t.rows[idx]
	applyPatch(row, patch)
	if !patch.Empty() {
		row.Meta.IsEdited = true
	}
	if patch.TouchesCalculation() {
		recalcRow(row, t.interState)
	}
	return *row, true
}

func (t *table) DeleteRow(rowID snowflake.ID) {
	idx := t.indexOf(rowID)
	if idx < 0 {
		return
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	t.resequence()
}

func (t *table) DeleteRows(rowIDs []snowflake.ID) {
	if len(rowIDs) == 0 {
		return
	}
	drop := make(map[snowflake.ID]struct{}, len(rowIDs))
	for _, id := range rowIDs {
		drop[id] = struct{}{}
	}
	kept := t.rows[:0]
	for _, row := range t.rows {
		if _, ok := drop[row.ID]; ok {
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	t.resequence()
}

func (t *table) DuplicateRow(rowID snowflake.ID) (linetabledomain.LineItem, bool) {
	idx := t.indexOf(rowID)
	if idx < 0 {
		return linetabledomain.LineItem{}, false
	}

	copied := t.rows[idx]
	copied.ID = t.genID.Generate()
	copied.LineNumber = len(t.rows) + 1
	copied.Meta = linetabledomain.RowMeta{IsNew: true}
	t.rows = append(t.rows, copied)
	return copied, true
}

func (t *table) PopulateFromOCR(items []linetabledomain.ImportedLineItem) []linetabledomain.LineItem {
	rows := make([]linetabledomain.LineItem, 0, len(items))
	for i, item := range items {
		row := linetabledomain.LineItem{
			ID:          t.genID.Generate(),
			LineNumber:  i + 1,
			ProductCode: stringOr(item.ProductCode, ""),
			Description: stringOr(item.Description, ""),
			HSNCode:     stringOr(item.HSNCode, ""),
			Quantity:    floatOr(item.Quantity, defaultQuantity),
			Unit:        stringOr(item.Unit, defaultUnit),
			Rate:        floatOr(item.Rate, 0),
			Discount:    floatOr(item.Discount, 0),
			TaxRate:     floatOr(item.TaxRate, 0),
			Meta: linetabledomain.RowMeta{
				IsMapped:   true,
				Confidence: item.Confidence,
				BBox:       item.BBox,
			},
		}
		recalcRow(&row, t.interState)
		rows = append(rows, row)
	}
	t.rows = rows
	return t.Rows()
}

func (t *table) ClearAllRows() {
	t.rows = nil
}

func (t *table) SetInterState(interState bool) {
	t.interState = interState
	for i := range t.rows {
		recalcRow(&t.rows[i], t.interState)
	}
}

func (t *table) ValidateRows() []linetabledomain.RowViolation {
	violations := []linetabledomain.RowViolation{}
	for _, row := range t.rows {
		if strings.TrimSpace(row.Description) == "" {
			violations = append(violations, linetabledomain.RowViolation{
				RowID:   row.ID,
				Field:   "description",
				Message: "Description is required",
			})
		}
		if row.Quantity <= 0 {
			violations = append(violations, linetabledomain.RowViolation{
				RowID:   row.ID,
				Field:   "quantity",
				Message: "Quantity must be greater than 0",
			})
		}
		if row.Rate <= 0 {
			violations = append(violations, linetabledomain.RowViolation{
				RowID:   row.ID,
				Field:   "rate",
				Message: "Rate must be greater than 0",
			})
		}
	}
	return violations
}

func (t *table) Rows() []linetabledomain.LineItem {
	rows := make([]linetabledomain.LineItem, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func (t *table) Row(rowID snowflake.ID) (linetabledomain.LineItem, bool) {
	idx := t.indexOf(rowID)
	if idx < 0 {
		return linetabledomain.LineItem{}, false
	}
	return t.rows[idx], true
}

func (t *table) InterState() bool {
	return t.interState
}

func (t *table) indexOf(rowID snowflake.ID) int {
	for i := range t.rows {
		if t.rows[i].ID == rowID {
			return i
		}
	}
	return -1
}

func (t *table) resequence() {
	for i := range t.rows {
		t.rows[i].LineNumber = i + 1
	}
}

func applyPatch(row *linetabledomain.LineItem, patch linetabledomain.RowPatch) {
	if patch.ProductCode != nil {
		row.ProductCode = *patch.ProductCode
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.HSNCode != nil {
		row.HSNCode = *patch.HSNCode
	}
	if patch.Unit != nil {
		row.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		row.Quantity = *patch.Quantity
	}
	if patch.Rate != nil {
		row.Rate = *patch.Rate
	}
	if patch.Discount != nil {
		row.Discount = *patch.Discount
	}
	if patch.TaxRate != nil {
		row.TaxRate = *patch.TaxRate
	}
	if patch.Cess != nil {
		row.Cess = *patch.Cess
	}
}

func stringOr(value *string, def string) string {
	if value == nil {
		return def
	}
	return *value
}

func floatOr(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}
