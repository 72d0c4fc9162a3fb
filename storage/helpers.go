package storage

import (
	"encoding/binary"
	"errors"
	"slices"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/encoder"
	pkgerrors "github.com/pkg/errors"
)

func get(txn db.Transaction, key []byte, v any) error {
	return txn.Get(key, func(val []byte) error {
		return encoder.Unmarshal(val, v)
	})
}

func put(txn db.Transaction, key []byte, v any) error {
	val, err := encoder.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, val)
}

func getUint64(txn db.Transaction, key []byte) (uint64, error) {
	var n uint64
	err := txn.Get(key, func(val []byte) error {
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

func setUint64(txn db.Transaction, key []byte, n uint64) error {
	return txn.Set(key, binary.BigEndian.AppendUint64(nil, n))
}

// nextID returns the id stored under key and stores its successor.
func nextID(txn db.Transaction, key []byte) (uint64, error) {
	id, err := getUint64(txn, key)
	if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return 0, err
	}
	return id, setUint64(txn, key, id+1)
}

func parameters(txn db.Transaction) (*core.Parameters, error) {
	params := new(core.Parameters)
	if err := get(txn, db.Parameters.Key(), params); err != nil {
		return nil, pkgerrors.Wrap(err, "get parameters")
	}
	return params, nil
}

func operation(txn db.Transaction, id uint64) (*core.Operation, error) {
	op := new(core.Operation)
	if err := get(txn, db.Operations.Uint64Key(id), op); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, pkgerrors.Wrapf(ErrOperationNotFound, "operation %d", id)
		}
		return nil, err
	}
	return op, nil
}

func putOperation(txn db.Transaction, op *core.Operation) error {
	return put(txn, db.Operations.Uint64Key(op.ID), op)
}

func lastBlockKey(action core.ActionType, lastBlock uint64) []byte {
	return db.OperationsByLastBlock.Key([]byte{byte(action)}, binary.BigEndian.AppendUint64(nil, lastBlock))
}

// iteratePrefix calls fn for every key in the bucket, in key order.
func iteratePrefix(txn db.Transaction, bucket db.Bucket, fn func(key, val []byte) error) (err error) {
	iter, err := txn.NewIterator(bucket.Key())
	if err != nil {
		return err
	}
	defer db.CloseAndWrapOnError(iter.Close, &err)

	for iter.Next() {
		val, err := iter.Value()
		if err != nil {
			return err
		}
		if err = fn(iter.Key(), val); err != nil {
			return err
		}
	}
	return nil
}

func sortByNonce(ops []*core.Operation) {
	slices.SortFunc(ops, func(a, b *core.Operation) int {
		switch {
		case a.Nonce < b.Nonce:
			return -1
		case a.Nonce > b.Nonce:
			return 1
		default:
			return 0
		}
	})
}
