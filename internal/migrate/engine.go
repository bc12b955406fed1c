// Package migrate moves stored data between schema versions. The underlying
// key-value store has no transactions, so every run snapshots all collections
// to backup keys first and restores them on the first failure; a partial
// migration is never left in place.
package migrate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/beanwagon-backend/internal/records"
	"github.com/angelmondragon/beanwagon-backend/internal/schema"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/angelmondragon/beanwagon-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// Step transforms stored shape between two adjacent schema versions.
// FromVersion is the lower version; Up moves FromVersion -> FromVersion+1,
// Down reverses it.
type Step struct {
	FromVersion int
	Description string
	Up          func(ctx context.Context, env *Env) error
	Down        func(ctx context.Context, env *Env) error
}

// Result is what every run returns; the engine never panics or errors past
// its own boundary. A failed run reports ToVersion equal to the version the
// data was rolled back to, which is always the starting version.
type Result struct {
	Success     bool     `json:"success"`
	FromVersion int      `json:"fromVersion"`
	ToVersion   int      `json:"toVersion"`
	Errors      []string `json:"errors,omitempty"`
}

// Engine orchestrates version-to-version transitions.
type Engine struct {
	svc     *storage.Service
	logg    *logger.Logger
	metrics *metrics.StorageMetrics
	steps   map[int]Step
}

// NewEngine wires the engine with the given step registry. The metrics
// handle may be nil.
func NewEngine(svc *storage.Service, logg *logger.Logger, m *metrics.StorageMetrics, steps []Step) (*Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("storage service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := make(map[int]Step, len(steps))
	for _, step := range steps {
		if step.Up == nil || step.Down == nil {
			return nil, fmt.Errorf("step %d must define both up and down", step.FromVersion)
		}
		if _, exists := registry[step.FromVersion]; exists {
			return nil, fmt.Errorf("duplicate step for version %d", step.FromVersion)
		}
		registry[step.FromVersion] = step
	}
	return &Engine{svc: svc, logg: logg, metrics: m, steps: registry}, nil
}

// RunPending migrates the persisted schema version to the current constant.
// A missing settings singleton means a fresh install, which seeding stamps at
// the current version already, so there is nothing to do.
func (e *Engine) RunPending(ctx context.Context) Result {
	settings := e.svc.Settings(ctx)
	if settings == nil {
		return Result{Success: true, FromVersion: schema.CurrentVersion, ToVersion: schema.CurrentVersion}
	}
	return e.Run(ctx, settings.SchemaVersion, schema.CurrentVersion)
}

// Run migrates from current to target. It never panics: any unexpected
// failure triggers a best-effort restore from backup and comes back as a
// failure result.
func (e *Engine) Run(ctx context.Context, current, target int) (result Result) {
	ctx = e.logg.WithFields(ctx, map[string]any{
		"from_version": current,
		"to_version":   target,
	})

	var snapshot backup
	stepsRun := 0

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during migration: %v", r)
			e.logg.Error(ctx, "migration panicked, restoring backup", err)
			snapshot.restore(ctx, e)
			result = Result{
				Success:     false,
				FromVersion: current,
				ToVersion:   current,
				Errors:      []string{err.Error()},
			}
		}
		e.metrics.ObserveMigration(result.Success, stepsRun)
	}()

	if current == target {
		return Result{Success: true, FromVersion: current, ToVersion: target}
	}
	if current < 0 || target < 0 {
		return Result{
			Success:     false,
			FromVersion: current,
			ToVersion:   current,
			Errors:      []string{fmt.Sprintf("invalid migration versions: %d -> %d", current, target)},
		}
	}

	path, err := e.path(current, target)
	if err != nil {
		return Result{
			Success:     false,
			FromVersion: current,
			ToVersion:   current,
			Errors:      []string{err.Error()},
		}
	}

	// Best-effort safety net, not a hard precondition: a backup failure is
	// logged and the migration proceeds.
	snapshot = e.takeBackup(ctx)

	env := &Env{store: e.svc.Store(), keys: e.svc.Keys()}
	isUpgrade := target > current
	for _, step := range path {
		var stepErr error
		if isUpgrade {
			e.logg.Info(e.logg.WithField(ctx, "step", step.FromVersion), "applying migration step up")
			stepErr = step.Up(ctx, env)
		} else {
			e.logg.Info(e.logg.WithField(ctx, "step", step.FromVersion), "applying migration step down")
			stepErr = step.Down(ctx, env)
		}
		stepsRun++
		if stepErr != nil {
			e.logg.Error(ctx, "migration step failed, restoring backup", stepErr)
			restoreErr := snapshot.restore(ctx, e)
			combined := multierr.Append(stepErr, restoreErr)
			return Result{
				Success:     false,
				FromVersion: current,
				ToVersion:   current,
				Errors:      errorStrings(combined),
			}
		}
	}

	e.recordSuccess(ctx, current, target)
	snapshot.discard(ctx, e)
	e.logg.Info(ctx, "migration completed")
	return Result{Success: true, FromVersion: current, ToVersion: target}
}

// path returns the steps strictly between current and target, ascending for
// an upgrade and descending for a downgrade.
func (e *Engine) path(current, target int) ([]Step, error) {
	lo, hi := current, target
	if lo > hi {
		lo, hi = hi, lo
	}
	versions := make([]int, 0, hi-lo)
	for v := lo; v < hi; v++ {
		if _, ok := e.steps[v]; !ok {
			return nil, fmt.Errorf("no migration step for version %d -> %d", v, v+1)
		}
		versions = append(versions, v)
	}
	if target < current {
		sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	}
	path := make([]Step, 0, len(versions))
	for _, v := range versions {
		path = append(path, e.steps[v])
	}
	return path, nil
}

func (e *Engine) recordSuccess(ctx context.Context, from, to int) {
	settings := e.svc.Settings(ctx)
	if settings == nil {
		defaults := schema.DefaultSettings()
		settings = &defaults
	}
	settings.MigrationHistory = append(settings.MigrationHistory, records.MigrationRecord{
		FromVersion: from,
		ToVersion:   to,
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})
	settings.SchemaVersion = to
	e.svc.SaveSettings(ctx, *settings)
}

// backup is a pre-migration snapshot of every primary key. existed tracks
// keys that were absent before the run so restore can delete anything a step
// wrote there.
type backup struct {
	entries map[string]backupEntry
}

type backupEntry struct {
	value   string
	existed bool
}

func (e *Engine) takeBackup(ctx context.Context) backup {
	keys := e.svc.Keys()
	store := e.svc.Store()
	snapshot := backup{entries: make(map[string]backupEntry)}
	for _, key := range keys.Primary() {
		value, ok, err := store.Get(ctx, key)
		if err != nil {
			e.logg.Error(ctx, "backing up "+key+" failed, continuing", err)
			continue
		}
		snapshot.entries[key] = backupEntry{value: value, existed: ok}
		if !ok {
			continue
		}
		if err := store.Set(ctx, keys.Backup(key), value); err != nil {
			e.logg.Error(ctx, "writing backup key for "+key+" failed, continuing", err)
		}
	}
	return snapshot
}

// restore puts every primary key back to its pre-migration bytes, deleting
// keys that did not exist before. Best-effort; errors are aggregated.
func (b backup) restore(ctx context.Context, e *Engine) error {
	if b.entries == nil {
		return nil
	}
	store := e.svc.Store()
	var combined error
	for key, entry := range b.entries {
		var err error
		if entry.existed {
			err = store.Set(ctx, key, entry.value)
		} else {
			err = store.Del(ctx, key)
		}
		if err != nil {
			e.logg.Error(ctx, "restoring "+key+" failed", err)
			combined = multierr.Append(combined, fmt.Errorf("restore %s: %w", key, err))
		}
	}
	b.discard(ctx, e)
	return combined
}

// discard removes the backup keys.
func (b backup) discard(ctx context.Context, e *Engine) {
	if b.entries == nil {
		return
	}
	keys := e.svc.Keys()
	toDelete := make([]string, 0, len(b.entries))
	for key := range b.entries {
		toDelete = append(toDelete, keys.Backup(key))
	}
	if err := e.svc.Store().Del(ctx, toDelete...); err != nil {
		e.logg.Error(ctx, "deleting backup keys failed", err)
	}
}

func errorStrings(err error) []string {
	var out []string
	for _, single := range multierr.Errors(err) {
		out = append(out, single.Error())
	}
	return out
}
