package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid_argument")
	ErrTableNotFound   = errors.New("table_not_found")
)
