// Package schema declares the current storage schema version and the seed
// records written on first run.
package schema

import "github.com/angelmondragon/beanwagon-backend/internal/records"

// CurrentVersion is the schema version this build reads and writes. Bump it
// together with a new step in internal/migrate.
const CurrentVersion = 3

// SettingsVersion tags the settings payload format itself.
const SettingsVersion = 1

func boolPtr(v bool) *bool {
	b := v
	return &b
}

// DefaultMenuItems returns the fixed first-run menu. Every price and option
// cost is zero: the cart runs as a free service.
func DefaultMenuItems() []records.MenuItem {
	sizes := []records.DrinkOption{
		{ID: "size-small", Name: "Small", Type: records.OptionTypeSize, AdditionalCost: 0, IsAvailable: true},
		{ID: "size-large", Name: "Large", Type: records.OptionTypeSize, AdditionalCost: 0, IsAvailable: true},
	}
	milks := []records.DrinkOption{
		{ID: "milk-whole", Name: "Whole Milk", Type: records.OptionTypeMilk, AdditionalCost: 0, IsAvailable: true},
		{ID: "milk-oat", Name: "Oat Milk", Type: records.OptionTypeMilk, AdditionalCost: 0, IsAvailable: true},
	}
	temps := []records.DrinkOption{
		{ID: "temp-hot", Name: "Hot", Type: records.OptionTypeTemperature, AdditionalCost: 0, IsAvailable: true},
		{ID: "temp-iced", Name: "Iced", Type: records.OptionTypeTemperature, AdditionalCost: 0, IsAvailable: true},
	}

	return []records.MenuItem{
		{
			ID:          "drip",
			Name:        "Drip Coffee",
			Category:    records.DrinkCategoryCoffee,
			BasePrice:   0,
			Options:     append(append([]records.DrinkOption{}, sizes...), temps...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Classic brewed coffee",
		},
		{
			ID:          "latte",
			Name:        "Latte",
			Category:    records.DrinkCategoryCoffee,
			BasePrice:   0,
			Options:     append(append(append([]records.DrinkOption{}, sizes...), milks...), temps...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Espresso with steamed milk",
		},
		{
			ID:          "cappuccino",
			Name:        "Cappuccino",
			Category:    records.DrinkCategoryCoffee,
			BasePrice:   0,
			Options:     append(append([]records.DrinkOption{}, sizes...), milks...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Espresso with foamed milk",
		},
		{
			ID:          "black-tea",
			Name:        "Black Tea",
			Category:    records.DrinkCategoryTea,
			BasePrice:   0,
			Options:     append(append([]records.DrinkOption{}, sizes...), temps...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Strong black tea",
		},
		{
			ID:          "herbal-tea",
			Name:        "Herbal Tea",
			Category:    records.DrinkCategoryTea,
			BasePrice:   0,
			Options:     append([]records.DrinkOption{}, sizes...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Caffeine-free herbal blend",
		},
		{
			ID:          "lemonade",
			Name:        "Lemonade",
			Category:    records.DrinkCategoryColdDrink,
			BasePrice:   0,
			Options:     append([]records.DrinkOption{}, sizes...),
			IsAvailable: true,
			IsVisible:   boolPtr(true),
			Description: "Fresh squeezed lemonade",
		},
	}
}

// DefaultSettings returns the first-run settings singleton. The migration
// history starts empty; LastUpdated is stamped by the store on save.
func DefaultSettings() records.Settings {
	return records.Settings{
		Version:          SettingsVersion,
		SchemaVersion:    CurrentVersion,
		MigrationHistory: []records.MigrationRecord{},
		UserPreferences: records.UserPreferences{
			LargeText:          true,
			HighContrast:       true,
			HapticsEnabled:     true,
			ConfirmBeforeOrder: true,
		},
		CartConfig: records.CartConfig{
			MaxItemsPerOrder:  5,
			AllowNotes:        true,
			PickupLeadMinutes: 10,
		},
	}
}
