package out

import "context"

// KVStore is the local key-value persistence the user state is written through.
// Values are opaque strings; a missing key reports ok=false without an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
