package storage

import (
	"context"
	"time"

	"github.com/angelmondragon/beanwagon-backend/internal/codec"
	"github.com/angelmondragon/beanwagon-backend/internal/records"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
)

// Settings returns the decoded singleton, or nil when it was never written.
// Store and decode failures also read as "never written", logged.
func (s *Service) Settings(ctx context.Context) *records.Settings {
	s.metrics.IncRead(collectionSettings)
	ctx = s.logg.WithCollection(ctx, collectionSettings)

	text, ok, err := s.store.Get(ctx, s.keys.Settings())
	if err != nil {
		s.logg.Error(ctx, "reading settings failed, treating as absent", err)
		return nil
	}
	if !ok {
		return nil
	}

	var settings records.Settings
	if err := codec.Decode(text, &settings); err != nil {
		s.logg.Error(ctx, "decoding settings failed, treating as absent", err)
		return nil
	}
	return &settings
}

// SaveSettings stamps LastUpdated and writes the singleton. The stamp is
// unconditional; callers cannot suppress it. Best-effort.
func (s *Service) SaveSettings(ctx context.Context, settings records.Settings) {
	s.metrics.IncWrite(collectionSettings)
	ctx = s.logg.WithCollection(ctx, collectionSettings)

	settings.LastUpdated = time.Now().UTC()
	if settings.MigrationHistory == nil {
		settings.MigrationHistory = []records.MigrationRecord{}
	}
	text, err := codec.Encode(settings)
	if err != nil {
		s.metrics.IncWriteFailure(collectionSettings)
		s.logg.Error(ctx, "encoding settings failed, write skipped", err)
		return
	}
	if err := s.store.Set(ctx, s.keys.Settings(), text); err != nil {
		s.metrics.IncWriteFailure(collectionSettings)
		s.logg.Error(ctx, "writing settings failed", err)
	}
}

// Setting reads a single scalar setting. ok is false when it was never set.
func (s *Service) Setting(ctx context.Context, name string) (string, bool, error) {
	value, ok, err := s.store.Get(ctx, s.keys.Scalar(name))
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading setting")
	}
	return value, ok, nil
}

// SetSetting writes a single scalar setting. Unlike the bulk saves this
// PROPAGATES failure: scalar settings are written from an explicit admin
// action where the operator should see the failure and retry.
func (s *Service) SetSetting(ctx context.Context, name, value string) error {
	if err := s.store.Set(ctx, s.keys.Scalar(name), value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing setting")
	}
	return nil
}
