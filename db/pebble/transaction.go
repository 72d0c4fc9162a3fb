package pebble

import (
	"errors"
	"io"
	"time"

	"github.com/NethermindEth/l1sender/db"
	"github.com/cockroachdb/pebble"
)

var _ db.Transaction = (*transaction)(nil)

// reader is implemented by both pebble.Batch and pebble.Snapshot.
type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
	Close() error
}

type transaction struct {
	reader reader
	// batch is nil for read-only transactions.
	batch    *pebble.Batch
	unlock   func()
	listener db.EventListener
}

func (t *transaction) Discard() error {
	var err error
	if t.reader != nil {
		err = t.reader.Close()
		t.reader, t.batch = nil, nil
	}
	if t.unlock != nil {
		t.unlock()
		t.unlock = nil
	}
	return err
}

func (t *transaction) Commit() (err error) {
	if t.batch == nil {
		if t.reader == nil {
			return db.ErrDiscarded
		}
		return db.ErrReadOnly
	}

	start := time.Now()
	defer func() { t.listener.OnCommit(time.Since(start)) }()
	defer db.CloseAndWrapOnError(t.Discard, &err)
	return t.batch.Commit(pebble.Sync)
}

func (t *transaction) writable() error {
	switch {
	case t.batch != nil:
		return nil
	case t.reader == nil:
		return db.ErrDiscarded
	default:
		return db.ErrReadOnly
	}
}

func (t *transaction) Set(key, val []byte) error {
	if err := t.writable(); err != nil {
		return err
	} else if len(key) == 0 {
		return errors.New("empty key")
	}

	start := time.Now()
	defer func() { t.listener.OnIO(true, time.Since(start)) }()
	return t.batch.Set(key, val, pebble.Sync)
}

func (t *transaction) Delete(key []byte) error {
	if err := t.writable(); err != nil {
		return err
	}

	start := time.Now()
	defer func() { t.listener.OnIO(true, time.Since(start)) }()
	return t.batch.Delete(key, pebble.Sync)
}

func (t *transaction) Get(key []byte, cb func([]byte) error) (err error) {
	if t.reader == nil {
		return db.ErrDiscarded
	}

	start := time.Now()
	val, closer, err := t.reader.Get(key)
	t.listener.OnIO(false, time.Since(start))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return db.ErrKeyNotFound
		}
		return err
	}
	defer db.CloseAndWrapOnError(closer.Close, &err)
	return cb(val)
}

func (t *transaction) Has(key []byte) (bool, error) {
	err := t.Get(key, func([]byte) error { return nil })
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (t *transaction) NewIterator(prefix []byte) (db.Iterator, error) {
	if t.reader == nil {
		return nil, db.ErrDiscarded
	}

	iter, err := t.reader.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: db.UpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	return &iterator{iter: iter}, nil
}

type iterator struct {
	iter       *pebble.Iterator
	positioned bool
}

func (i *iterator) Next() bool {
	if !i.positioned {
		i.positioned = true
		return i.iter.First()
	}
	return i.iter.Next()
}

func (i *iterator) Key() []byte {
	return clone(i.iter.Key())
}

func (i *iterator) Value() ([]byte, error) {
	val, err := i.iter.ValueAndErr()
	if err != nil {
		return nil, err
	}
	return clone(val), nil
}

func (i *iterator) Close() error {
	return i.iter.Close()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
