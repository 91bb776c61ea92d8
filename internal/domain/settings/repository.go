package settings

import "context"

// Repository describes raw key/value persistence for pool settings.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
