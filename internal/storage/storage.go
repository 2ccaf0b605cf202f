package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
)

// ErrNotFound is returned by Get when a key has no value
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed blob store. The engine decides what is stored
// and when; a Store only moves bytes.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Key prefix for all battleship data
const keyPrefix = "battleship"

// StatsKey returns the key for the cumulative statistics record
func StatsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}

// MatchKey returns the key for a match snapshot
func MatchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}
