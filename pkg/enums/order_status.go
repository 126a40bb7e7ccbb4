package enums

import "fmt"

// OrderStatus tracks an order through its lifecycle. The values are the
// backend's wire strings.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusInProcess OrderStatus = "en_proceso"
	OrderStatusCompleted OrderStatus = "completado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProcess,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is legal:
// pendiente → en_proceso → completado, with cancelado reachable from
// pendiente or en_proceso. Terminal states admit nothing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() || s.Terminal() {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusInProcess || next == OrderStatusCancelled
	case OrderStatusInProcess:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
