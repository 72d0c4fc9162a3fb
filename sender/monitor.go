package sender

import (
	"context"
	"fmt"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sourcegraph/conc/iter"
)

type outcomeKind uint8

const (
	// notMined: none of the hashes is known to the chain.
	notMined outcomeKind = iota
	// pending: a hash is mined but does not have enough confirmations yet.
	pending
	committed
	failed
)

type outcome struct {
	kind outcomeKind
	hash common.Hash
}

// check returns the outcome of op, looking at its most recent hash first. The first mined
// hash decides the outcome.
func (s *Sender) check(ctx context.Context, op *core.Operation) (outcome, error) {
	for i := len(op.TxHashes) - 1; i >= 0; i-- {
		hash := op.TxHashes[i]
		status, err := s.chain.TxStatus(ctx, hash)
		if err != nil {
			return outcome{}, fmt.Errorf("get status of %s: %w", hash.Hex(), err)
		}
		if status == nil {
			continue
		}

		switch {
		case status.Confirmations < s.cfg.WaitConfirmations:
			return outcome{kind: pending, hash: hash}, nil
		case status.Success:
			return outcome{kind: committed, hash: hash}, nil
		default:
			return outcome{kind: failed, hash: hash}, nil
		}
	}
	return outcome{kind: notMined}, nil
}

// monitor checks every unconfirmed operation that has not failed and applies the outcomes
// in nonce order. It returns the operations that are past their deadline without any mined
// transaction.
func (s *Sender) monitor(ctx context.Context, height uint64) ([]*core.Operation, error) {
	ops := make([]*core.Operation, 0, len(s.tracker.ops))
	for _, op := range s.tracker.ops {
		if !s.tracker.isFailed(op.ID) {
			ops = append(ops, op)
		}
	}

	mapper := iter.Mapper[*core.Operation, outcome]{MaxGoroutines: s.maxPollers}
	outcomes, err := mapper.MapErr(ops, func(op **core.Operation) (outcome, error) {
		return s.check(ctx, *op)
	})
	if err != nil {
		return nil, err
	}

	var stuck []*core.Operation
	for i, op := range ops {
		switch out := outcomes[i]; out.kind {
		case committed:
			if err = s.confirm(op, out.hash); err != nil {
				return nil, err
			}
		case failed:
			if err = s.fail(ctx, op, out.hash); err != nil {
				return nil, err
			}
		case notMined:
			if height >= op.DeadlineBlock {
				stuck = append(stuck, op)
			}
		}
	}
	return stuck, nil
}

// confirm finalises op with the given hash and advances the progress counters.
func (s *Sender) confirm(op *core.Operation, hash common.Hash) error {
	progress := advanceProgress(s.progress, op.Action, op.Range())
	if err := s.store.ConfirmOperation(op.ID, hash, progress); err != nil {
		return classify(fmt.Errorf("confirm operation %d: %w", op.ID, err))
	}
	s.progress = progress
	s.tracker.remove(op.ID)

	last := progress.Stats.LastBlock(op.Action)
	s.log.Infow("Confirmed operation", "id", op.ID, "action", op.Action, "blocks", op.Range(),
		"nonce", op.Nonce, "hash", hash.Hex(), "lastBlock", last)
	if len(progress.Deferred) > 0 {
		s.log.Debugw("Progress is waiting for earlier confirmations", "deferred", len(progress.Deferred))
	}
	s.listener.OnConfirmed(op.Action, last)
	return nil
}

// fail persists the failure of op. The operation is neither confirmed nor resubmitted: a
// reverted transaction needs operator intervention.
func (s *Sender) fail(ctx context.Context, op *core.Operation, hash common.Hash) error {
	info, err := s.chain.FailureReason(ctx, hash)
	if err != nil {
		return fmt.Errorf("get failure reason of %s: %w", hash.Hex(), err)
	}

	if err = s.store.MarkFailed(op.ID, hash, info); err != nil {
		return classify(fmt.Errorf("mark operation %d failed: %w", op.ID, err))
	}
	op.Failure = &core.Failure{Hash: hash, Info: info}
	s.recordFailure(op)

	fields := []any{"id", op.ID, "action", op.Action, "blocks", op.Range(), "nonce", op.Nonce,
		"hash", hash.Hex(), "halted", s.halted}
	if info != nil {
		fields = append(fields, "revertCode", info.RevertCode, "revertReason", info.RevertReason,
			"gasUsed", info.GasUsed, "gasLimit", info.GasLimit)
	}
	s.log.Errorw("L1 transaction failed, operator intervention required", fields...)
	s.listener.OnFailed(op.Action)
	return nil
}

// recordFailure adds the persisted failure of op to the sender state, halting admission when
// configured to.
func (s *Sender) recordFailure(op *core.Operation) {
	s.tracker.failed[op.ID] = struct{}{}
	s.failures = append(s.failures, &TxFailedError{
		OperationID: op.ID,
		Action:      op.Action,
		Range:       op.Range(),
		Nonce:       op.Nonce,
		Hash:        op.Failure.Hash,
		Info:        op.Failure.Info,
	})
	if s.cfg.HaltOnFailure {
		s.halted = true
	}
}
