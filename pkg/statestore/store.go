// Package statestore persists per-user reflection state as JSON values under
// string keys. Loads recover from corrupted entries by deleting them and
// falling back to the caller's default; saves are fire-and-forget so a
// persistence failure never interrupts the user flow.
package statestore

import "context"

// Key layout for the reflection tool. Each key is saved independently; there
// is no transactional guarantee across keys.
const (
	KeyMapPrefix        = "reflect:map:"
	KeyTranscriptPrefix = "reflect:transcript:"
	KeyInsightsPrefix   = "reflect:insights:"
)

// Store is the key-value capability injected into business logic. Implemented
// by RedisStore in production and MemoryStore in tests.
type Store interface {
	// Load unmarshals the value at key into dst and reports whether a valid
	// value was found. A corrupted entry is deleted and reported as absent,
	// leaving whatever default the caller pre-filled dst with intact.
	Load(ctx context.Context, key string, dst interface{}) bool

	// LoadRaw returns the raw stored bytes, for callers that run their own
	// versioned decoding. Absent keys return (nil, false).
	LoadRaw(ctx context.Context, key string) ([]byte, bool)

	// Save serializes value and writes it. Failures are logged, never
	// returned; callers must tolerate a lost write.
	Save(ctx context.Context, key string, value interface{})

	// Delete removes the entry, if present.
	Delete(ctx context.Context, key string)
}
