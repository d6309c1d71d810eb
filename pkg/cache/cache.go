// Package cache is the host-side resolution cache keyed on a spec's
// declared dependencies.
//
// The engine itself never reads cache_ttl or depends_on; those fields are a
// contract for this layer. A resolved value is cached under a key derived
// from the spec plus the current values of its depends_on fields, so a
// change to any declared dependency naturally misses the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Store is the cache contract the resolve handler consumes.
type Store interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Key derives the cache key for a spec and context: a sha256 over the
// canonical spec JSON and the stringified values of its depends_on fields.
func Key(spec *models.ResolverSpec, rctx models.Context) string {
	h := sha256.New()

	specJSON, _ := json.Marshal(spec)
	h.Write(specJSON)

	for _, fieldID := range spec.DependsOn {
		value := rctx[fieldID]
		fmt.Fprintf(h, "|%s=%v", fieldID, value)
	}

	return "fern:resolution:" + hex.EncodeToString(h.Sum(nil))
}
