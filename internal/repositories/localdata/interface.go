// Package localdata is the key/value store holding the persisted session
// (access token, user JSON) and user preferences, under fixed keys.
package localdata

import "context"

// Repository describes the key/value operations. A missing key reads as
// (nil, nil), so absence never needs special error handling.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
