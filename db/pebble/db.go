package pebble

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var _ db.DB = (*DB)(nil)

// DB is a db.DB over pebble. Every read-write transaction is an indexed batch committed with
// fsync, so an operation recorded as sent survives a crash.
type DB struct {
	pebble   *pebble.DB
	writer   sync.Mutex
	listener db.EventListener
}

// New opens the database at path, creating it if needed.
func New(path string, logger pebble.Logger) (db.DB, error) {
	return open(path, &pebble.Options{Logger: logger})
}

// NewMem opens a new in-memory database
func NewMem() (db.DB, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

// NewMemTest opens an in-memory database closed at the end of the test.
func NewMemTest(t testing.TB) db.DB {
	memDB, err := NewMem()
	if err != nil {
		t.Fatalf("create in-memory db: %v", err)
	}
	t.Cleanup(func() {
		if err := memDB.Close(); err != nil {
			t.Errorf("close in-memory db: %v", err)
		}
	})
	return memDB
}

func open(path string, options *pebble.Options) (*DB, error) {
	pDB, err := pebble.Open(path, options)
	if err != nil {
		return nil, err
	}
	return &DB{pebble: pDB, listener: &db.SelectiveListener{}}, nil
}

// WithListener registers an EventListener
func (d *DB) WithListener(listener db.EventListener) db.DB {
	d.listener = listener
	return d
}

func (d *DB) NewTransaction(update bool) db.Transaction {
	if !update {
		return &transaction{reader: d.pebble.NewSnapshot(), listener: d.listener}
	}

	d.writer.Lock()
	batch := d.pebble.NewIndexedBatch()
	return &transaction{reader: batch, batch: batch, unlock: d.writer.Unlock, listener: d.listener}
}

func (d *DB) Close() error {
	return d.pebble.Close()
}

func (d *DB) View(fn func(txn db.Transaction) error) error {
	txn := d.NewTransaction(false)
	defer discardOnPanic(txn)
	return utils.RunAndWrapOnError(txn.Discard, fn(txn))
}

func (d *DB) Update(fn func(txn db.Transaction) error) error {
	txn := d.NewTransaction(true)
	defer discardOnPanic(txn)
	if err := fn(txn); err != nil {
		return utils.RunAndWrapOnError(txn.Discard, err)
	}
	return utils.RunAndWrapOnError(txn.Discard, txn.Commit())
}

func discardOnPanic(txn db.Transaction) {
	if p := recover(); p != nil {
		if err := txn.Discard(); err != nil {
			fmt.Fprintf(os.Stderr, "discard panicking transaction: %s", err)
		}
		panic(p)
	}
}
