// Package validate supplies the structural-validity predicates the storage
// layer consumes. The predicates judge raw stored bytes, so the repair sweep
// can keep surviving records byte-identical.
package validate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/go-playground/validator/v10"
)

// Checker is the capability injected into the storage layer.
type Checker struct {
	validate *validator.Validate
}

func New() *Checker {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return &Checker{validate: v}
}

// ValidOrder reports whether raw decodes into a structurally sound order:
// required identity and timestamps, a known status, and at least one item.
// Statuses written by earlier schema versions count as known; the repair
// sweep runs before pending migrations, and dropping a record the engine is
// about to rename would lose it for good.
func (c *Checker) ValidOrder(raw json.RawMessage) bool {
	var order records.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return false
	}
	if !order.Status.IsKnown() {
		return false
	}
	return c.validate.Struct(order) == nil
}

// ValidMenuItem reports whether raw decodes into a structurally sound menu
// item: required identity, a known category, and a non-negative price.
func (c *Checker) ValidMenuItem(raw json.RawMessage) bool {
	var item records.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return false
	}
	if !item.Category.IsValid() {
		return false
	}
	for _, option := range item.Options {
		if !option.Type.IsValid() {
			return false
		}
	}
	return c.validate.Struct(item) == nil
}
