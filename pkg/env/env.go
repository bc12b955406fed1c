// Package env reads process environment knobs that live outside the
// envconfig structs, such as the logger's output format.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
