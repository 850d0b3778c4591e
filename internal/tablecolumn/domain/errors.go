package domain

import "errors"

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidFieldName   = errors.New("invalid_field_name")
	ErrInvalidFieldType   = errors.New("invalid_field_type")
	ErrUnknownDependency  = errors.New("unknown_dependency")
	ErrDuplicateFieldName = errors.New("duplicate_field_name")
	ErrNotFound           = errors.New("not_found")
)
