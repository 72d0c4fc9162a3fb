package db

import (
	"errors"
	"io"
	"time"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrReadOnly    = errors.New("read only transaction")
	ErrDiscarded   = errors.New("discarded transaction")
)

// DB is a key-value database with serialised read-write transactions.
type DB interface {
	io.Closer

	// NewTransaction returns a transaction on this database. A read-write transaction blocks
	// until every other read-write transaction has been committed or discarded.
	NewTransaction(update bool) Transaction
	// View runs fn in a read-only transaction and discards it afterwards.
	View(fn func(txn Transaction) error) error
	// Update runs fn in a read-write transaction, committing it when fn succeeds and
	// discarding it otherwise.
	Update(fn func(txn Transaction) error) error

	// WithListener registers an EventListener
	WithListener(listener EventListener) DB
}

// Iterator walks the keys sharing a prefix in lexicographical order.
//
//	for iter.Next() {
//		key, val := iter.Key(), iter.Value()
//	}
type Iterator interface {
	io.Closer

	// Next moves to the next key, the first one on the initial call. It returns false once
	// the keys are exhausted.
	Next() bool
	// Key returns a copy of the key at the current position.
	Key() []byte
	// Value returns a copy of the value at the current position.
	Value() ([]byte, error)
}

// Transaction sees the database as of its creation. Writes become visible to transactions
// created after Commit.
type Transaction interface {
	// NewIterator returns an iterator over the keys starting with prefix.
	NewIterator(prefix []byte) (Iterator, error)
	Discard() error
	Commit() error

	Set(key, val []byte) error
	Delete(key []byte) error
	// Get calls cb with the value of key, or returns ErrKeyNotFound. The value is only valid
	// during cb.
	Get(key []byte, cb func([]byte) error) error
	Has(key []byte) (bool, error)
}

type EventListener interface {
	OnIO(write bool, duration time.Duration)
	OnCommit(duration time.Duration)
}

type SelectiveListener struct {
	OnIOCb     func(write bool, duration time.Duration)
	OnCommitCb func(duration time.Duration)
}

func (l *SelectiveListener) OnIO(write bool, duration time.Duration) {
	if l.OnIOCb != nil {
		l.OnIOCb(write, duration)
	}
}

func (l *SelectiveListener) OnCommit(duration time.Duration) {
	if l.OnCommitCb != nil {
		l.OnCommitCb(duration)
	}
}

// CloseAndWrapOnError closes the given closer and joins its error, if any, into *err.
func CloseAndWrapOnError(closer func() error, err *error) {
	if closer == nil {
		return
	}
	if closeErr := closer(); closeErr != nil {
		*err = errors.Join(*err, closeErr)
	}
}

// UpperBound returns the smallest key greater than every key starting with prefix, or nil
// when no such key exists.
func UpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
