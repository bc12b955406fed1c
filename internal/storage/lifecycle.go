package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/angelmondragon/beanwagon-backend/internal/codec"
	"github.com/angelmondragon/beanwagon-backend/internal/schema"
)

// SeedInitialData bootstraps a first run: the default menu and settings are
// written only when their collection/singleton is empty or absent. Safe to
// call on every start.
func (s *Service) SeedInitialData(ctx context.Context) {
	if len(s.MenuItems(ctx)) == 0 {
		seed := schema.DefaultMenuItems()
		kept := seed[:0]
		for _, item := range seed {
			raw, err := json.Marshal(item)
			if err != nil || !s.checker.ValidMenuItem(raw) {
				// A seed record failing its own predicate is a bug in the seed
				// data; drop it rather than persist a record repair would
				// immediately strip.
				dropCtx := s.logg.WithRecordID(s.logg.WithCollection(ctx, collectionDrinks), item.ID)
				s.logg.Warn(dropCtx, "seed menu item failed validation, dropped")
				continue
			}
			kept = append(kept, item)
		}
		s.SaveMenuItems(ctx, kept)
		s.logg.Info(s.logg.WithField(ctx, "count", len(kept)), "seeded default menu")
	}

	if s.Settings(ctx) == nil {
		s.SaveSettings(ctx, schema.DefaultSettings())
		s.logg.Info(s.logg.WithField(ctx, "schema_version", schema.CurrentVersion), "seeded default settings")
	}
}

// ValidateStoredData sweeps orders and menu items, dropping records that fail
// their structural predicate and re-saving only when something was dropped.
// Survivors keep their exact stored bytes and relative order. Runs on every
// start, after seeding; corruption from a crash, a bad migration or manual
// tampering heals without user intervention.
func (s *Service) ValidateStoredData(ctx context.Context) {
	s.repairCollection(ctx, s.keys.Orders(), collectionOrders, s.checker.ValidOrder)
	s.repairCollection(ctx, s.keys.Drinks(), collectionDrinks, s.checker.ValidMenuItem)
}

func (s *Service) repairCollection(ctx context.Context, key, name string, valid func(json.RawMessage) bool) {
	ctx = s.logg.WithCollection(ctx, name)

	text, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logg.Error(ctx, "reading collection for repair failed, skipped", err)
		return
	}
	if !ok {
		return
	}

	elements, err := codec.Elements(text)
	if err != nil {
		if errors.Is(err, codec.ErrAbsent) {
			return
		}
		// The whole payload is unreadable; collection reads already fall back
		// to empty, so leave the bytes for diagnostics instead of wiping them.
		s.logg.Error(ctx, "collection payload unreadable, repair skipped", err)
		return
	}

	kept := elements[:0]
	dropped := 0
	for _, element := range elements {
		if valid(element) {
			kept = append(kept, element)
			continue
		}
		dropped++
		s.logg.Warn(s.logg.WithRecordID(ctx, elementID(element)), "dropping invalid record")
	}
	if dropped == 0 {
		return
	}

	rebuilt, err := codec.EncodeElements(kept)
	if err != nil {
		s.logg.Error(ctx, "re-encoding repaired collection failed", err)
		return
	}
	if err := s.store.Set(ctx, key, rebuilt); err != nil {
		s.logg.Error(ctx, "writing repaired collection failed", err)
		return
	}
	s.metrics.AddRepaired(name, dropped)
	s.logg.Info(s.logg.WithField(ctx, "dropped", dropped), "repaired collection")
}

func elementID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ID == "" {
		return "unknown"
	}
	return probe.ID
}
