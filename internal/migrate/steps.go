package migrate

import (
	"context"
)

// Steps is the canonical migration registry. Keep it in lockstep with
// schema.CurrentVersion: a new version bump lands here as one Step with a
// working Down.
func Steps() []Step {
	return []Step{
		{
			FromVersion: 1,
			Description: "menu items gain the isVisible flag",
			Up:          menuVisibilityUp,
			Down:        menuVisibilityDown,
		},
		{
			FromVersion: 2,
			Description: "order status 'preparing' renamed to 'in-progress'; settings gain confirmBeforeOrder",
			Up:          orderStatusRenameUp,
			Down:        orderStatusRenameDown,
		},
	}
}

func menuVisibilityUp(ctx context.Context, env *Env) error {
	return env.TransformCollection(ctx, env.Keys().Drinks(), func(record map[string]any) (map[string]any, error) {
		if _, ok := record["isVisible"]; !ok {
			record["isVisible"] = true
		}
		return record, nil
	})
}

func menuVisibilityDown(ctx context.Context, env *Env) error {
	return env.TransformCollection(ctx, env.Keys().Drinks(), func(record map[string]any) (map[string]any, error) {
		delete(record, "isVisible")
		return record, nil
	})
}

func orderStatusRenameUp(ctx context.Context, env *Env) error {
	if err := env.TransformCollection(ctx, env.Keys().Orders(), func(record map[string]any) (map[string]any, error) {
		if record["status"] == "preparing" {
			record["status"] = "in-progress"
		}
		return record, nil
	}); err != nil {
		return err
	}
	return env.TransformSingleton(ctx, env.Keys().Settings(), func(record map[string]any) (map[string]any, error) {
		prefs, ok := record["userPreferences"].(map[string]any)
		if !ok {
			return record, nil
		}
		if _, ok := prefs["confirmBeforeOrder"]; !ok {
			prefs["confirmBeforeOrder"] = true
		}
		return record, nil
	})
}

func orderStatusRenameDown(ctx context.Context, env *Env) error {
	if err := env.TransformCollection(ctx, env.Keys().Orders(), func(record map[string]any) (map[string]any, error) {
		if record["status"] == "in-progress" {
			record["status"] = "preparing"
		}
		return record, nil
	}); err != nil {
		return err
	}
	return env.TransformSingleton(ctx, env.Keys().Settings(), func(record map[string]any) (map[string]any, error) {
		if prefs, ok := record["userPreferences"].(map[string]any); ok {
			delete(prefs, "confirmBeforeOrder")
		}
		return record, nil
	})
}
