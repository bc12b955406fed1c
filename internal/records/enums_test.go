package records

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusInProgress, true},
		{OrderStatusInProgress, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusReady, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v", tc.from, tc.to, tc.allowed)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("in-progress")
	if err != nil || status != OrderStatusInProgress {
		t.Fatalf("unexpected parse result %v %v", status, err)
	}
	if _, err := ParseOrderStatus("brewing"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOrderStatusIsKnown(t *testing.T) {
	if !OrderStatusPending.IsKnown() {
		t.Fatalf("current statuses must be known")
	}
	if !OrderStatus("preparing").IsKnown() {
		t.Fatalf("pre-rename status must stay known until migrated")
	}
	if OrderStatus("preparing").IsValid() {
		t.Fatalf("legacy status must not be valid in the current schema")
	}
	if OrderStatus("brewing").IsKnown() {
		t.Fatalf("never-written status must be unknown")
	}
}

func TestMenuItemVisibleDefaultsTrue(t *testing.T) {
	item := MenuItem{ID: "drip"}
	if !item.Visible() {
		t.Fatalf("missing flag must read as visible")
	}
	hidden := false
	item.IsVisible = &hidden
	if item.Visible() {
		t.Fatalf("explicit false must hide the item")
	}
}

func TestSyrupStatus(t *testing.T) {
	if !SyrupStatusAvailable.IsValid() || !SyrupStatusSoldOut.IsValid() {
		t.Fatalf("canonical statuses must be valid")
	}
	if SyrupStatus("melted").IsValid() {
		t.Fatalf("unknown status must be invalid")
	}
	if _, err := ParseSyrupStatus("soldOut"); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
}
