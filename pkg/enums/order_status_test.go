package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, raw := range []string{"pendiente", "en_proceso", "completado", "cancelado"} {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) returned error: %v", raw, err)
		}
		if status.String() != raw {
			t.Fatalf("expected %q got %q", raw, status)
		}
	}

	if _, err := ParseOrderStatus("listo"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusInProcess, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusInProcess, OrderStatusCompleted, true},
		{OrderStatusInProcess, OrderStatusCancelled, true},
		{OrderStatusInProcess, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusInProcess, false},
		{OrderStatus("listo"), OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("listo"), false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPending.Terminal() || OrderStatusInProcess.Terminal() {
		t.Fatal("open statuses must not be terminal")
	}
	if !OrderStatusCompleted.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatal("completed and cancelled must be terminal")
	}
}
