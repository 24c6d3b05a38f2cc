package repositories

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
