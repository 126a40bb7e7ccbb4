package checkout

import (
	"errors"
	"fmt"

	"github.com/kaffecito/kaffecito/internal/cart"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"go.uber.org/multierr"
)

// ValidateCart checks every line and aggregates all violations instead of
// stopping at the first; a failed validation never reaches the network.
func ValidateCart(items []cart.Line) error {
	var violations []error
	if len(items) == 0 {
		violations = append(violations, errors.New("cart is empty"))
	}
	for i, line := range items {
		n := i + 1
		if line.Product.ID <= 0 {
			violations = append(violations, fmt.Errorf("line %d: product id is missing", n))
		}
		if line.Quantity < 1 {
			violations = append(violations, fmt.Errorf("line %d: quantity must be at least 1", n))
		}
		if !line.Product.Price.Positive() {
			violations = append(violations, fmt.Errorf("line %d: price must be positive", n))
		}
	}

	combined := multierr.Combine(violations...)
	if combined == nil {
		return nil
	}
	all := multierr.Errors(combined)
	reasons := make([]string, 0, len(all))
	for _, violation := range all {
		reasons = append(reasons, violation.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "cart validation failed").WithDetails(reasons)
}
