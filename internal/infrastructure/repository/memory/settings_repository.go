package memory

import (
	"context"
	"sync"
)

type SettingsRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{values: make(map[string]string)}
}

func (r *SettingsRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	return value, ok, nil
}

func (r *SettingsRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}
