package storage

import (
	"encoding/binary"
	"errors"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/encoder"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	pkgerrors "github.com/pkg/errors"
)

const schemaVersion uint64 = 1

var _ Store = (*Storage)(nil)

// Storage is a Store backed by a key-value database.
type Storage struct {
	db db.DB
}

// New returns a Storage over database. When the database holds no parameters yet, defaults
// are stored.
func New(database db.DB, defaults *core.Parameters) (*Storage, error) {
	err := database.Update(func(txn db.Transaction) error {
		version, err := getUint64(txn, db.SchemaVersion.Key())
		if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
			return err
		} else if err == nil && version != schemaVersion {
			return pkgerrors.Errorf("unsupported schema version %d, want %d", version, schemaVersion)
		}
		if err = setUint64(txn, db.SchemaVersion.Key(), schemaVersion); err != nil {
			return err
		}

		has, err := txn.Has(db.Parameters.Key())
		if err != nil || has {
			return err
		}
		return put(txn, db.Parameters.Key(), defaults)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "initialise storage")
	}
	return &Storage{db: database}, nil
}

func (s *Storage) EnqueueOperation(op core.AggregatedOperation) (uint64, error) {
	if err := op.Validate(); err != nil {
		return 0, err
	}

	var id uint64
	err := s.db.Update(func(txn db.Transaction) error {
		var err error
		if id, err = nextID(txn, db.NextQueueID.Key()); err != nil {
			return err
		}
		return put(txn, db.PendingOperations.Uint64Key(id), &op)
	})
	return id, pkgerrors.Wrap(err, "enqueue operation")
}

func (s *Storage) LoadPendingOperations() ([]core.QueuedOperation, error) {
	var ops []core.QueuedOperation
	err := s.db.View(func(txn db.Transaction) error {
		return iteratePrefix(txn, db.PendingOperations, func(key, val []byte) error {
			op, err := encoder.Decode[core.AggregatedOperation](val)
			if err != nil {
				return err
			}
			ops = append(ops, core.QueuedOperation{ID: binary.BigEndian.Uint64(key[1:]), Op: op})
			return nil
		})
	})
	return ops, pkgerrors.Wrap(err, "load pending operations")
}

func (s *Storage) RemovePendingOperations(ids []uint64) error {
	return pkgerrors.Wrap(s.db.Update(func(txn db.Transaction) error {
		for _, id := range ids {
			if err := txn.Delete(db.PendingOperations.Uint64Key(id)); err != nil {
				return err
			}
		}
		return nil
	}), "remove pending operations")
}

func (s *Storage) LoadUnconfirmedOperations() ([]*core.Operation, error) {
	var ops []*core.Operation
	err := s.db.View(func(txn db.Transaction) error {
		return iteratePrefix(txn, db.UnconfirmedOperations, func(key, _ []byte) error {
			op, err := operation(txn, binary.BigEndian.Uint64(key[1:]))
			if err != nil {
				return err
			}
			ops = append(ops, op)
			return nil
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load unconfirmed operations")
	}
	sortByNonce(ops)
	return ops, nil
}

func (s *Storage) SaveNewOperation(op *core.Operation) (*core.Operation, error) {
	if op.Op == nil {
		return nil, errors.New("operation has no aggregated operation")
	}

	stored := *op
	stored.Confirmed = false
	stored.FinalHash = nil
	err := s.db.Update(func(txn db.Transaction) error {
		params, err := parameters(txn)
		if err != nil {
			return err
		}
		if params.Nonce != op.Nonce {
			return pkgerrors.Wrapf(ErrNonceMismatch, "got %d, persisted %d", op.Nonce, params.Nonce)
		}
		params.Nonce++
		if err = put(txn, db.Parameters.Key(), params); err != nil {
			return err
		}

		if stored.ID, err = nextID(txn, db.NextOperationID.Key()); err != nil {
			return err
		}
		if err = putOperation(txn, &stored); err != nil {
			return err
		}
		if err = txn.Set(db.UnconfirmedOperations.Uint64Key(stored.ID), nil); err != nil {
			return err
		}
		if err = setUint64(txn, lastBlockKey(stored.Action, stored.Range().Last), stored.ID); err != nil {
			return err
		}
		return txn.Delete(db.PendingOperations.Uint64Key(stored.Op.ID))
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "save new operation")
	}
	return &stored, nil
}

func (s *Storage) AddHash(id uint64, hash common.Hash) error {
	return s.updateUnconfirmed(id, func(op *core.Operation) error {
		op.TxHashes = append(op.TxHashes, hash)
		return nil
	})
}

func (s *Storage) ResubmitOperation(id, deadlineBlock uint64, gasPrice uint256.Int, hash common.Hash) error {
	return s.updateUnconfirmed(id, func(op *core.Operation) error {
		if op.Failure != nil {
			return pkgerrors.Wrapf(ErrOperationFailed, "operation %d", id)
		}
		op.DeadlineBlock = deadlineBlock
		op.GasPrice = gasPrice
		op.TxHashes = append(op.TxHashes, hash)
		return nil
	})
}

func (s *Storage) MarkFailed(id uint64, hash common.Hash, info *core.FailureInfo) error {
	return s.updateUnconfirmed(id, func(op *core.Operation) error {
		if !op.HasHash(hash) {
			return pkgerrors.Wrapf(ErrUnknownHash, "operation %d, hash %s", id, hash.Hex())
		}
		op.Failure = &core.Failure{Hash: hash, Info: info}
		return nil
	})
}

func (s *Storage) ConfirmOperation(id uint64, hash common.Hash, progress core.Progress) error {
	return s.db.Update(func(txn db.Transaction) error {
		err := updateUnconfirmed(txn, id, func(op *core.Operation) error {
			if !op.HasHash(hash) {
				return pkgerrors.Wrapf(ErrUnknownHash, "operation %d, hash %s", id, hash.Hex())
			}
			op.Confirmed = true
			op.FinalHash = &hash
			return nil
		})
		if err != nil {
			return err
		}
		if err = txn.Delete(db.UnconfirmedOperations.Uint64Key(id)); err != nil {
			return err
		}

		params, err := parameters(txn)
		if err != nil {
			return err
		}
		params.Progress = progress
		return put(txn, db.Parameters.Key(), params)
	})
}

func (s *Storage) IsPredecessorConfirmed(action core.ActionType, lastBlock uint64) (bool, error) {
	var confirmed bool
	err := s.db.View(func(txn db.Transaction) error {
		id, err := getUint64(txn, lastBlockKey(action, lastBlock))
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		op, err := operation(txn, id)
		if err != nil {
			return err
		}
		confirmed = op.Confirmed
		return nil
	})
	return confirmed, err
}

func (s *Storage) Operation(id uint64) (*core.Operation, error) {
	var op *core.Operation
	err := s.db.View(func(txn db.Transaction) error {
		var err error
		op, err = operation(txn, id)
		return err
	})
	return op, err
}

func (s *Storage) NextOperationID() (uint64, error) {
	var id uint64
	err := s.db.View(func(txn db.Transaction) error {
		var err error
		id, err = getUint64(txn, db.NextOperationID.Key())
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	return id, err
}

func (s *Storage) LoadParameters() (*core.Parameters, error) {
	var params *core.Parameters
	err := s.db.View(func(txn db.Transaction) error {
		var err error
		params, err = parameters(txn)
		return err
	})
	return params, err
}

func (s *Storage) UpdateGasPriceParams(limit, average uint256.Int) error {
	return pkgerrors.Wrap(s.db.Update(func(txn db.Transaction) error {
		params, err := parameters(txn)
		if err != nil {
			return err
		}
		params.GasPriceLimit = limit
		params.AverageGasPrice = &average
		return put(txn, db.Parameters.Key(), params)
	}), "update gas price parameters")
}

func (s *Storage) LoadStats() (core.Stats, error) {
	params, err := s.LoadParameters()
	if err != nil {
		return core.Stats{}, err
	}
	return params.Progress.Stats, nil
}

func (s *Storage) updateUnconfirmed(id uint64, fn func(op *core.Operation) error) error {
	return s.db.Update(func(txn db.Transaction) error {
		return updateUnconfirmed(txn, id, fn)
	})
}

func updateUnconfirmed(txn db.Transaction, id uint64, fn func(op *core.Operation) error) error {
	op, err := operation(txn, id)
	if err != nil {
		return err
	}
	if op.Confirmed {
		return pkgerrors.Wrapf(ErrAlreadyConfirmed, "operation %d", id)
	}
	if err = fn(op); err != nil {
		return err
	}
	return putOperation(txn, op)
}
