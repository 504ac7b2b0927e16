package hooks

import (
	"context"
	"fmt"
)

// DefaultHookManager keeps hooks in memory and runs them with the Tengo executor.
type DefaultHookManager struct {
	executor *TengoExecutor
}

// NewHookManager creates an empty hook manager.
func NewHookManager() *DefaultHookManager {
	return &DefaultHookManager{executor: NewTengoExecutor()}
}

// Execute runs the hook of hookType, if one is registered.
func (m *DefaultHookManager) Execute(ctx context.Context, hookType HookType, hc HookContext) error {
	return m.executor.Execute(ctx, hookType, hc)
}

// AddHook registers hook, replacing any hook of the same type.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.Valid() {
		return ErrUnsupportedHookType(hook.Type)
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook unregisters the hook of hookType.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if !m.executor.HasScript(hookType) {
		return fmt.Errorf("%w: no %s hook registered", ErrHookLoad, hookType)
	}
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of hookType is registered.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	return m.executor.HasScript(hookType)
}
