// Package records holds the persisted domain shapes. The json tags are the
// storage wire format; renaming a tag is a schema change and needs a
// migration step.
package records

import "time"

// Order is a single customer order. Orders are append-only history:
// cancellation is a terminal status, never a delete.
type Order struct {
	ID                      string      `json:"id" validate:"required"`
	CustomerName            string      `json:"customerName" validate:"required"`
	CustomerPhone           string      `json:"customerPhone,omitempty"`
	Items                   []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount             int64       `json:"totalAmount" validate:"gte=0"`
	Status                  OrderStatus `json:"status" validate:"required"`
	CreatedAt               time.Time   `json:"createdAt" validate:"required"`
	UpdatedAt               time.Time   `json:"updatedAt" validate:"required"`
	AssignedBarista         string      `json:"assignedBarista,omitempty"`
	Notes                   string      `json:"notes,omitempty"`
	EstimatedCompletionTime *time.Time  `json:"estimatedCompletionTime,omitempty"`
}

// OrderItem is one line of an order. The drink name is denormalized so the
// line survives menu edits and syrup deletions.
type OrderItem struct {
	DrinkID           string   `json:"drinkId" validate:"required"`
	Name              string   `json:"name" validate:"required"`
	Quantity          int      `json:"quantity" validate:"gte=1"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
	LineTotal         int64    `json:"lineTotal" validate:"gte=0"`
}

// MenuItem is a drink on the cart's menu. Menu items are never deleted
// because historical orders reference them; availability and visibility are
// two independent flags with different lifecycles (stock vs seasonal display).
type MenuItem struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Category    DrinkCategory `json:"category" validate:"required"`
	BasePrice   int64         `json:"basePrice" validate:"gte=0"`
	Options     []DrinkOption `json:"options" validate:"dive"`
	IsAvailable bool          `json:"isAvailable"`
	IsVisible   *bool         `json:"isVisible,omitempty"`
	Description string        `json:"description,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
}

// Visible reports menu presence; a missing flag means visible, so older
// records keep showing up after the flag was introduced.
func (m MenuItem) Visible() bool {
	return m.IsVisible == nil || *m.IsVisible
}

// DrinkOption is a selectable add-on for a menu item.
type DrinkOption struct {
	ID             string     `json:"id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	Type           OptionType `json:"type" validate:"required"`
	AdditionalCost int64      `json:"additionalCost" validate:"gte=0"`
	IsAvailable    bool       `json:"isAvailable"`
	Description    string     `json:"description,omitempty"`
}

// Syrup is a flavor additive managed from the admin screen. Unlike menu
// items, syrups are hard-deletable; order lines keep the name as a string.
type Syrup struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    SyrupStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Settings is the singleton holding preferences, cart configuration and the
// schema version with its migration history.
type Settings struct {
	Version          int               `json:"version"`
	SchemaVersion    int               `json:"schemaVersion"`
	LastUpdated      time.Time         `json:"lastUpdated"`
	MigrationHistory []MigrationRecord `json:"migrationHistory"`
	UserPreferences  UserPreferences   `json:"userPreferences"`
	CartConfig       CartConfig        `json:"cartConfig"`
}

// MigrationRecord is one migration attempt, appended once per run.
type MigrationRecord struct {
	FromVersion int       `json:"fromVersion"`
	ToVersion   int       `json:"toVersion"`
	Timestamp   time.Time `json:"timestamp"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
}

// UserPreferences carries the accessibility knobs the app exposes.
type UserPreferences struct {
	LargeText          bool `json:"largeText"`
	HighContrast       bool `json:"highContrast"`
	HapticsEnabled     bool `json:"hapticsEnabled"`
	ConfirmBeforeOrder bool `json:"confirmBeforeOrder"`
}

// CartConfig carries the ordering limits applied at checkout.
type CartConfig struct {
	MaxItemsPerOrder  int  `json:"maxItemsPerOrder"`
	AllowNotes        bool `json:"allowNotes"`
	PickupLeadMinutes int  `json:"pickupLeadMinutes"`
}
