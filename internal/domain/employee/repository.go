package employee

import "context"

// EmployeeRepository provides read access to the roster. Employee lifecycle
// is owned by the admin surface, not by the computation services.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
}
