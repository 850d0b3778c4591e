package service

import (
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
)

// schema is the in-memory column list for one table.
type schema struct {
	genID   *snowflake.Node
	columns []columndomain.ColumnDefinition
	opts    SchemaOptions
}

// SchemaOptions feeds the option lists of the default dropdown columns.
type SchemaOptions struct {
	TaxRates []float64
	Units    []string
}

// NewSchema builds a column schema initialized with the default columns.
func NewSchema(genID *snowflake.Node, opts SchemaOptions) columndomain.Schema {
	s := &schema{genID: genID, opts: opts}
	s.InitializeDefaults()
	return s
}

func (s *schema) InitializeDefaults() {
	s.columns = defaultColumns(s.genID, s.opts)
}

func (s *schema) AddColumn(def columndomain.ColumnDefinition) (columndomain.ColumnDefinition, error) {
	def.FieldName = strings.TrimSpace(def.FieldName)
	if def.FieldName == "" {
		return columndomain.ColumnDefinition{}, columndomain.ErrInvalidFieldName
	}
	if !def.FieldType.Valid() {
		return columndomain.ColumnDefinition{}, columndomain.ErrInvalidFieldType
	}
	for _, col := range s.columns {
		if col.FieldName == def.FieldName {
			return columndomain.ColumnDefinition{}, columndomain.ErrDuplicateFieldName
		}
	}

	if def.FieldType == columndomain.FieldTypeCalculated {
		if len(def.Dependencies) == 0 {
			def.Dependencies = def.Formula.Dependencies()
		}
		for _, dep := range def.Dependencies {
			if !s.hasField(dep) {
				return columndomain.ColumnDefinition{}, columndomain.ErrUnknownDependency
			}
		}
	}

	def.ID = s.genID.Generate()
	def.Order = len(s.columns) + 1
	s.columns = append(s.columns, def)
	return def, nil
}

func (s *schema) RemoveColumn(id snowflake.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.columns = append(s.columns[:idx], s.columns[idx+1:]...)
	s.resequence()
}

func (s *schema) MoveColumn(id snowflake.ID, newOrder int) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	if newOrder < 1 {
		newOrder = 1
	}
	if newOrder > len(s.columns) {
		newOrder = len(s.columns)
	}

	oldOrder := s.columns[idx].Order
	s.columns[idx].Order = newOrder

	for i := range s.columns {
		if s.columns[i].ID == id {
			continue
		}
		order := s.columns[i].Order
		if newOrder < oldOrder {
			if order >= newOrder && order < oldOrder {
				s.columns[i].Order = order + 1
			}
		} else {
			if order > oldOrder && order <= newOrder {
				s.columns[i].Order = order - 1
			}
		}
	}

	s.sortByOrder()
}

func (s *schema) ToggleVisibility(id snowflake.ID) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.columns[idx].Visible = !s.columns[idx].Visible
}

func (s *schema) UpdateColumn(id snowflake.ID, patch columndomain.ColumnPatch) (columndomain.ColumnDefinition, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return columndomain.ColumnDefinition{}, false
	}

	col := &s.columns[idx]
	if patch.Header != nil {
		col.Header = *patch.Header
	}
	if patch.FieldType != nil && patch.FieldType.Valid() {
		col.FieldType = *patch.FieldType
	}
	if patch.Visible != nil {
		col.Visible = *patch.Visible
	}
	if patch.Editable != nil {
		col.Editable = *patch.Editable
	}
	if patch.Required != nil {
		col.Required = *patch.Required
	}
	if patch.Mappable != nil {
		col.Mappable = *patch.Mappable
	}
	if patch.Options != nil {
		col.Options = *patch.Options
	}
	if patch.Formula != nil {
		col.Formula = *patch.Formula
	}
	if patch.Dependencies != nil {
		col.Dependencies = *patch.Dependencies
	}
	if patch.Width != nil {
		col.Width = *patch.Width
	}
	if patch.Align != nil {
		col.Align = *patch.Align
	}
	return *col, true
}

func (s *schema) Replace(columns []columndomain.ColumnDefinition) {
	s.columns = make([]columndomain.ColumnDefinition, len(columns))
	copy(s.columns, columns)
	s.sortByOrder()
	s.resequence()
}

func (s *schema) Columns() []columndomain.ColumnDefinition {
	columns := make([]columndomain.ColumnDefinition, len(s.columns))
	copy(columns, s.columns)
	return columns
}

func (s *schema) VisibleColumns() []columndomain.ColumnDefinition {
	visible := make([]columndomain.ColumnDefinition, 0, len(s.columns))
	for _, col := range s.columns {
		if col.Visible {
			visible = append(visible, col)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Order < visible[j].Order })
	return visible
}

func (s *schema) MappableColumns() []columndomain.ColumnDefinition {
	mappable := make([]columndomain.ColumnDefinition, 0, len(s.columns))
	for _, col := range s.columns {
		if col.Mappable {
			mappable = append(mappable, col)
		}
	}
	return mappable
}

func (s *schema) hasField(fieldName string) bool {
	for _, col := range s.columns {
		if col.FieldName == fieldName {
			return true
		}
	}
	return false
}

func (s *schema) indexOf(id snowflake.ID) int {
	for i := range s.columns {
		if s.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *schema) sortByOrder() {
	sort.SliceStable(s.columns, func(i, j int) bool { return s.columns[i].Order < s.columns[j].Order })
}

func (s *schema) resequence() {
	for i := range s.columns {
		s.columns[i].Order = i + 1
	}
}
