package storage

import "strings"

const (
	collectionOrders   = "orders"
	collectionDrinks   = "drinks"
	collectionSyrups   = "syrups"
	collectionSettings = "settings"

	backupSuffix = "backup"

	// ScalarPrinterAddress is the one scalar setting the admin screen writes
	// today (the receipt printer's address).
	ScalarPrinterAddress = "printerAddress"
)

// knownScalars lists scalar setting names so ClearAll can remove them; the
// store has no key scan.
var knownScalars = []string{ScalarPrinterAddress}

// Keys builds every storage key under a single namespace. The layout is flat:
// <ns>:orders, <ns>:drinks, <ns>:syrups, <ns>:settings, plus :backup
// variants and <ns>:settings:<name> for scalars.
type Keys struct {
	namespace string
}

func NewKeys(namespace string) Keys {
	return Keys{namespace: strings.TrimSpace(namespace)}
}

func (k Keys) Orders() string   { return k.build(collectionOrders) }
func (k Keys) Drinks() string   { return k.build(collectionDrinks) }
func (k Keys) Syrups() string   { return k.build(collectionSyrups) }
func (k Keys) Settings() string { return k.build(collectionSettings) }

// Backup returns the parallel backup key for a primary key.
func (k Keys) Backup(primary string) string {
	return primary + ":" + backupSuffix
}

// Scalar returns the key for a single-value setting.
func (k Keys) Scalar(name string) string {
	return k.build(collectionSettings, name)
}

// Primary returns the four collection/singleton keys in a fixed order.
func (k Keys) Primary() []string {
	return []string{k.Orders(), k.Drinks(), k.Syrups(), k.Settings()}
}

// All returns every key ClearAll must remove: primaries, their backups, and
// the known scalar settings.
func (k Keys) All() []string {
	primary := k.Primary()
	all := make([]string, 0, len(primary)*2+len(knownScalars))
	all = append(all, primary...)
	for _, key := range primary {
		all = append(all, k.Backup(key))
	}
	for _, name := range knownScalars {
		all = append(all, k.Scalar(name))
	}
	return all
}

func (k Keys) build(parts ...string) string {
	clean := []string{k.namespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
