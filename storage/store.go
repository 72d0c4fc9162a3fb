package storage

import (
	"errors"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrOperationNotFound = errors.New("operation not found")
	ErrAlreadyConfirmed  = errors.New("operation already confirmed")
	ErrNonceMismatch     = errors.New("nonce does not match the persisted nonce counter")
	ErrUnknownHash       = errors.New("hash was never used by the operation")
	ErrOperationFailed   = errors.New("operation failed on L1")
)

// Store persists aggregated operations awaiting submission, tracked L1 operations and the
// sender parameters.
//
//go:generate mockgen -destination=../mocks/mock_store.go -package=mocks github.com/NethermindEth/l1sender/storage Store
type Store interface {
	// EnqueueOperation queues an aggregated operation for submission and returns its queue id.
	EnqueueOperation(op core.AggregatedOperation) (uint64, error)
	// LoadPendingOperations returns the queued operations in queue order.
	LoadPendingOperations() ([]core.QueuedOperation, error)
	RemovePendingOperations(ids []uint64) error

	// LoadUnconfirmedOperations returns the unconfirmed operations ordered by nonce.
	LoadUnconfirmedOperations() ([]*core.Operation, error)
	// SaveNewOperation stores op as unconfirmed, assigns its id, advances the nonce counter
	// and removes the originating aggregated operation from the queue. op.Nonce must equal
	// the persisted nonce counter.
	SaveNewOperation(op *core.Operation) (*core.Operation, error)
	AddHash(id uint64, hash common.Hash) error
	// ResubmitOperation stores the deadline, gas price and hash of a replacement transaction
	// in one update. It fails with ErrOperationFailed once the operation is marked failed.
	ResubmitOperation(id, deadlineBlock uint64, gasPrice uint256.Int, hash common.Hash) error
	// MarkFailed records that the transaction with the given hash reverted.
	MarkFailed(id uint64, hash common.Hash, info *core.FailureInfo) error
	// ConfirmOperation marks the operation confirmed with the given final hash and stores the
	// progress resulting from the confirmation.
	ConfirmOperation(id uint64, hash common.Hash, progress core.Progress) error
	// IsPredecessorConfirmed reports whether the operation of the given action covering a block
	// range ending at lastBlock exists and is confirmed.
	IsPredecessorConfirmed(action core.ActionType, lastBlock uint64) (bool, error)
	Operation(id uint64) (*core.Operation, error)
	// NextOperationID returns the id the next saved operation will get. Ids and nonces are
	// assigned together, so it also counts the nonces used since the store was created.
	NextOperationID() (uint64, error)

	LoadParameters() (*core.Parameters, error)
	UpdateGasPriceParams(limit, average uint256.Int) error
	LoadStats() (core.Stats, error)
}
