package orders

import "fmt"

// NotFoundError reports a missing product or order referenced by a request.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// InsufficientStockError carries enough context for the caller to render an
// actionable message (which product, how much is left, how much was asked).
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s. Available: %d, Requested: %d",
		e.Name, e.Available, e.Requested)
}

// InvalidInputError rejects a malformed request before any unit of work is opened.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}
