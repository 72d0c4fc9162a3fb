package sender

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/storage"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInvariantViolation means the persisted state contradicts the sender's bookkeeping.
	// The sender stops rather than risk double submission.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNotRecovered       = errors.New("sender state has not been recovered")
)

// TxFailedError describes an operation whose transaction reverted on L1.
type TxFailedError struct {
	OperationID uint64
	Action      core.ActionType
	Range       core.BlockRange
	Nonce       uint64
	Hash        common.Hash
	// Info is nil when the chain had no diagnostics for the transaction.
	Info *core.FailureInfo
}

func (e *TxFailedError) Error() string {
	msg := fmt.Sprintf("%s operation %d for blocks %s failed in tx %s (nonce %d)",
		e.Action, e.OperationID, e.Range, e.Hash.Hex(), e.Nonce)
	if e.Info != nil && e.Info.RevertReason != "" {
		msg += ": " + e.Info.RevertReason
	}
	return msg
}

func invariantViolation(err error) error {
	return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
}

// classify marks store errors caused by a contradiction between the store and the sender.
func classify(err error) error {
	if errors.Is(err, storage.ErrAlreadyConfirmed) || errors.Is(err, storage.ErrNonceMismatch) ||
		errors.Is(err, storage.ErrUnknownHash) || errors.Is(err, storage.ErrOperationFailed) {
		return invariantViolation(err)
	}
	return err
}
