package domain

import "github.com/bwmarrin/snowflake"

// Table owns an ordered row collection and recomputes derived fields
// synchronously on every relevant mutation. A Table is not safe for
// concurrent use; callers serialize access (the registry does).
type Table interface {
	// AddRow appends a row with default values and returns it.
	AddRow() LineItem
	// AddRows appends count rows. A negative count fails with
	// ErrInvalidArgument and leaves the table untouched.
	AddRows(count int) ([]LineItem, error)
	// UpdateRow merges the patch into the matching row, marking it edited
	// and recalculating when a calculation input changed. Unknown ids are
	// a no-op.
	UpdateRow(rowID snowflake.ID, patch RowPatch) (LineItem, bool)
	// DeleteRow removes the matching row and re-sequences line numbers.
	// Unknown ids are a no-op.
	DeleteRow(rowID snowflake.ID)
	// DeleteRows removes all matching rows, ignoring unknown ids, and
	// re-sequences line numbers.
	DeleteRows(rowIDs []snowflake.ID)
	// DuplicateRow deep-copies the row's values under a new id, appended
	// at the end. Unknown ids return false.
	DuplicateRow(rowID snowflake.ID) (LineItem, bool)
	// PopulateFromOCR replaces the entire row set with one row per input
	// record and runs a full recalculation pass.
	PopulateFromOCR(items []ImportedLineItem) []LineItem
	// ClearAllRows empties the row collection.
	ClearAllRows()
	// SetInterState flips the table-wide tax split mode and recalculates
	// every row.
	SetInterState(interState bool)
	// ValidateRows reports violations without mutating state.
	ValidateRows() []RowViolation

	Rows() []LineItem
	Row(rowID snowflake.ID) (LineItem, bool)
	InterState() bool
	// Summary recomputes the table aggregates from the current rows.
	Summary() TableSummary
}
