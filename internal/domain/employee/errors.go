package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrNoActiveEmployees = errors.New("no active employees")
)
