package employee

import "errors"

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidStatus    = errors.New("employee: invalid integration status")
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrVersionMismatch  = errors.New("employee: version mismatch")
)
