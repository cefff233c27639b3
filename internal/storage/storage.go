package storage

import "errors"

// Keys of the persisted collections. Every value stored under a key is a
// whole serialized collection; mutations replace the value wholesale.
const (
	KeyTransactions = "transactions"
	KeyUserProfile  = "userProfile"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a synchronous key-value store holding whole serialized
// collections. There are no partial writes and no multi-key transactions:
// callers read a full value, modify it in memory and write the full value
// back.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
