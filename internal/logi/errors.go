package logi

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrVehicleNotFound is returned when a plate does not match any vehicle.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductNotEligible is returned when the operator picks an id that is
	// not in the currently displayed eligible set.
	ErrProductNotEligible = errors.New("invalid selection: product is not eligible for this load")

	// ErrCapacityExceeded is matched by every *CapacityError.
	ErrCapacityExceeded = errors.New("vehicle capacity exceeded")

	// ErrDuplicateAssignment is returned when a product is already part of the
	// load identified by (plate, timestamp).
	ErrDuplicateAssignment = errors.New("product already assigned to this load")

	ErrItemNotFound = errors.New("load item not found")
	ErrLoadNotFound = errors.New("no load found for this vehicle and timestamp")

	// ErrNothingToLoad is returned when no product is eligible when a build starts.
	ErrNothingToLoad = errors.New("nothing to load")

	// ErrNoProductsSelected is returned when the operator finishes a build
	// without accepting any product.
	ErrNoProductsSelected = errors.New("no products selected")

	// ErrCancelled is returned when the operator declines a confirmation.
	ErrCancelled = errors.New("operation cancelled")

	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrInUse              = errors.New("record is still referenced")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrStoreUnavailable   = errors.New("record store unavailable")
)

// CapacityError reports a product that would push a load over the vehicle's
// capacity. Excess is how far the candidate total is over capacity and
// Headroom is what was still free before the product was considered.
type CapacityError struct {
	ProductID int64
	Weight    decimal.Decimal
	Capacity  decimal.Decimal
	Excess    decimal.Decimal
	Headroom  decimal.Decimal
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("product %d (%s kg) exceeds capacity of %s kg by %s kg; %s kg still available",
		e.ProductID, FormatKg(e.Weight), FormatKg(e.Capacity), FormatKg(e.Excess), FormatKg(e.Headroom))
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// invalidInput wraps ErrInvalidInput with a field-specific message.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
