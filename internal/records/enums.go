package records

import "fmt"

// OrderStatus describes where an order sits in the fulfillment flow.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid reports whether the value matches the canonical order status enum.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the status may move to next. Orders walk
// pending -> in-progress -> ready -> completed; cancellation is allowed from
// any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusInProgress
	case OrderStatusInProgress:
		return next == OrderStatusReady
	case OrderStatusReady:
		return next == OrderStatusCompleted
	}
	return false
}

// legacyOrderStatuses are values earlier schema versions wrote and a
// migration step renames. A store that is behind on migrations still holds
// them, so structural checks must treat them as sound until the engine has
// brought the data current.
var legacyOrderStatuses = []OrderStatus{
	"preparing", // renamed to in-progress at schema version 3
}

// IsKnown reports whether the value is valid in the current schema or was
// written by an earlier one.
func (s OrderStatus) IsKnown() bool {
	if s.IsValid() {
		return true
	}
	for _, candidate := range legacyOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts the raw string to OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// DrinkCategory groups menu items for display.
type DrinkCategory string

const (
	DrinkCategoryCoffee    DrinkCategory = "coffee"
	DrinkCategoryTea       DrinkCategory = "tea"
	DrinkCategoryColdDrink DrinkCategory = "cold-drink"
	DrinkCategorySeasonal  DrinkCategory = "seasonal"
)

var validDrinkCategories = []DrinkCategory{
	DrinkCategoryCoffee,
	DrinkCategoryTea,
	DrinkCategoryColdDrink,
	DrinkCategorySeasonal,
}

// IsValid reports whether the value matches the canonical drink category enum.
func (c DrinkCategory) IsValid() bool {
	for _, candidate := range validDrinkCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseDrinkCategory converts the raw string to DrinkCategory.
func ParseDrinkCategory(value string) (DrinkCategory, error) {
	for _, candidate := range validDrinkCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid drink category %q", value)
}

// OptionType tags a drink option with the kind of customization it applies.
type OptionType string

const (
	OptionTypeSize        OptionType = "size"
	OptionTypeMilk        OptionType = "milk"
	OptionTypeSyrup       OptionType = "syrup"
	OptionTypeTemperature OptionType = "temperature"
	OptionTypeExtra       OptionType = "extra"
)

var validOptionTypes = []OptionType{
	OptionTypeSize,
	OptionTypeMilk,
	OptionTypeSyrup,
	OptionTypeTemperature,
	OptionTypeExtra,
}

// IsValid reports whether the value matches the canonical option type enum.
func (o OptionType) IsValid() bool {
	for _, candidate := range validOptionTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// SyrupStatus tracks whether a syrup can currently be ordered.
type SyrupStatus string

const (
	SyrupStatusAvailable SyrupStatus = "available"
	SyrupStatusSoldOut   SyrupStatus = "soldOut"
)

// IsValid reports whether the value matches the canonical syrup status enum.
func (s SyrupStatus) IsValid() bool {
	return s == SyrupStatusAvailable || s == SyrupStatusSoldOut
}

// ParseSyrupStatus converts the raw string to SyrupStatus.
func ParseSyrupStatus(value string) (SyrupStatus, error) {
	switch value {
	case string(SyrupStatusAvailable):
		return SyrupStatusAvailable, nil
	case string(SyrupStatusSoldOut):
		return SyrupStatusSoldOut, nil
	}
	return "", fmt.Errorf("invalid syrup status %q", value)
}
