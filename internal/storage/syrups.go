package storage

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	pkgerrors "github.com/angelmondragon/beanwagon-backend/pkg/errors"
)

// AddSyrup appends a new flavor additive. Names are unique case-insensitively;
// a collision is the one storage operation surfaced as an error, because it is
// a user-actionable mistake at the moment of an explicit admin action.
func (s *Service) AddSyrup(ctx context.Context, name string, status records.SyrupStatus) (*records.Syrup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "syrup name required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid syrup status")
	}

	syrups := s.Syrups(ctx)
	for _, existing := range syrups {
		if strings.EqualFold(existing.Name, name) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "syrup name already exists").
				WithDetails(map[string]string{"name": existing.Name})
		}
	}

	now := time.Now().UTC()
	syrup := records.Syrup{
		ID:        newSyrupID(now),
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.SaveSyrups(ctx, append(syrups, syrup))
	return &syrup, nil
}

// UpdateSyrupStatus replaces the matching syrup's status and UpdatedAt.
// Silent no-op when the id is unknown.
func (s *Service) UpdateSyrupStatus(ctx context.Context, id string, status records.SyrupStatus) {
	syrups := s.Syrups(ctx)
	changed := false
	for i := range syrups {
		if syrups[i].ID == id {
			syrups[i].Status = status
			syrups[i].UpdatedAt = time.Now().UTC()
			changed = true
		}
	}
	if changed {
		s.SaveSyrups(ctx, syrups)
	}
}

// DeleteSyrup removes the matching syrup. Silent no-op when the id is
// unknown. Order lines keep the syrup name as a denormalized string, so
// history is unaffected.
func (s *Service) DeleteSyrup(ctx context.Context, id string) {
	syrups := s.Syrups(ctx)
	kept := syrups[:0]
	for _, syrup := range syrups {
		if syrup.ID != id {
			kept = append(kept, syrup)
		}
	}
	if len(kept) != len(syrups) {
		s.SaveSyrups(ctx, kept)
	}
}

const syrupIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newSyrupID builds a millis-plus-random-suffix identity. Practical collision
// avoidance only; there is no retry loop on a clash.
func newSyrupID(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = syrupIDAlphabet[rand.Intn(len(syrupIDAlphabet))]
	}
	return fmt.Sprintf("syrup-%d-%s", now.UnixMilli(), suffix)
}
