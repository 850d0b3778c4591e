package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Schema owns the ordered column list for one table. Like the row store it
// is single-threaded by contract.
type Schema interface {
	// InitializeDefaults resets to the built-in ten-column GST schema.
	InitializeDefaults()
	// AddColumn appends the definition with a generated id and
	// order = current max + 1.
	AddColumn(def ColumnDefinition) (ColumnDefinition, error)
	// RemoveColumn drops the matching column and re-sequences the rest.
	// Unknown ids are a no-op.
	RemoveColumn(id snowflake.ID)
	// MoveColumn relocates the column to newOrder, clamped to
	// [1, column count], shifting intervening columns. Unknown ids are a
	// no-op.
	MoveColumn(id snowflake.ID, newOrder int)
	// ToggleVisibility flips the column's visible flag. Unknown ids are a
	// no-op.
	ToggleVisibility(id snowflake.ID)
	// UpdateColumn merges the patch. Unknown ids return false.
	UpdateColumn(id snowflake.ID, patch ColumnPatch) (ColumnDefinition, bool)
	// Replace swaps the full column list, used when applying a saved
	// config snapshot.
	Replace(columns []ColumnDefinition)

	Columns() []ColumnDefinition
	VisibleColumns() []ColumnDefinition
	MappableColumns() []ColumnDefinition
}

// ColumnPatch is a partial column update. Nil fields are left untouched.
type ColumnPatch struct {
	Header       *string      `json:"header,omitempty"`
	FieldType    *FieldType   `json:"field_type,omitempty"`
	Visible      *bool        `json:"visible,omitempty"`
	Editable     *bool        `json:"editable,omitempty"`
	Required     *bool        `json:"required,omitempty"`
	Mappable     *bool        `json:"mappable,omitempty"`
	Options      *[]Option    `json:"options,omitempty"`
	Formula      *FormulaKind `json:"formula,omitempty"`
	Dependencies *[]string    `json:"dependencies,omitempty"`
	Width        *string      `json:"width,omitempty"`
	Align        *string      `json:"align,omitempty"`
}

// ConfigService persists and restores named column snapshots.
type ConfigService interface {
	Save(ctx context.Context, req SaveConfigRequest) (*ConfigResponse, error)
	Get(ctx context.Context, id string) (*ConfigResponse, error)
	List(ctx context.Context) ([]ConfigResponse, error)
	Delete(ctx context.Context, id string) error
}

type SaveConfigRequest struct {
	Name             string             `json:"name"`
	Description      *string            `json:"description,omitempty"`
	Columns          []ColumnDefinition `json:"columns"`
	DefaultColumnIDs []string           `json:"default_column_ids"`
}

type ConfigResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      *string            `json:"description,omitempty"`
	Columns          []ColumnDefinition `json:"columns"`
	DefaultColumnIDs []string           `json:"default_column_ids"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ParseID parses a snapshot id from its string form.
func ParseID(id string) (snowflake.ID, error) {
	return snowflake.ParseString(id)
}
