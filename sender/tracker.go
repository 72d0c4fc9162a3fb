package sender

import (
	"context"
	"fmt"
	"slices"

	"github.com/NethermindEth/l1sender/contract"
	"github.com/NethermindEth/l1sender/core"
)

const (
	deferredInFlight    = "max_txs_in_flight"
	deferredPredecessor = "predecessor_unconfirmed"
	deferredHalted      = "halted"
)

// tracker is the in-memory view of the unconfirmed operations. It is only accessed from
// within a tick.
type tracker struct {
	nextNonce uint64
	// ops holds the unconfirmed operations in nonce order.
	ops []*core.Operation
	// failed holds the ids of operations whose transaction reverted.
	failed map[uint64]struct{}
	// unsent holds the ids of operations whose latest transaction may not have reached the
	// chain.
	unsent map[uint64]struct{}
}

func newTracker(nextNonce uint64, ops []*core.Operation) *tracker {
	t := &tracker{
		nextNonce: nextNonce,
		ops:       ops,
		failed:    make(map[uint64]struct{}),
		unsent:    make(map[uint64]struct{}),
	}
	for _, op := range ops {
		if len(op.TxHashes) == 0 {
			t.unsent[op.ID] = struct{}{}
		}
	}
	return t
}

func (t *tracker) add(op *core.Operation) {
	t.ops = append(t.ops, op)
	t.nextNonce = op.Nonce + 1
}

func (t *tracker) remove(id uint64) {
	t.ops = slices.DeleteFunc(t.ops, func(op *core.Operation) bool {
		return op.ID == id
	})
	delete(t.unsent, id)
}

func (t *tracker) isFailed(id uint64) bool {
	_, ok := t.failed[id]
	return ok
}

func (t *tracker) tracksQueued(queueID uint64) bool {
	return slices.ContainsFunc(t.ops, func(op *core.Operation) bool {
		return op.Op != nil && op.Op.ID == queueID
	})
}

// deferral returns why queued cannot be admitted yet, or an empty string if it can.
func (s *Sender) deferral(queued *core.QueuedOperation) (string, error) {
	if s.halted {
		return deferredHalted, nil
	}
	if uint64(len(s.tracker.ops)) >= s.cfg.MaxTxsInFlight {
		return deferredInFlight, nil
	}

	predecessor, ok := queued.Op.Action.Predecessor()
	if !ok || queued.Op.Range.StartsAtFirstBlock() {
		return "", nil
	}
	confirmed, err := s.store.IsPredecessorConfirmed(predecessor, queued.Op.Range.First-1)
	if err != nil {
		return "", fmt.Errorf("check predecessor of %s %s: %w", queued.Op.Action, queued.Op.Range, err)
	}
	if !confirmed {
		return deferredPredecessor, nil
	}
	return "", nil
}

// admitQueued admits queued operations in queue order until one has to wait.
func (s *Sender) admitQueued(ctx context.Context, height uint64, queue []core.QueuedOperation) error {
	for i := range queue {
		queued := &queue[i]
		if s.tracker.tracksQueued(queued.ID) {
			if err := s.store.RemovePendingOperations([]uint64{queued.ID}); err != nil {
				return fmt.Errorf("remove tracked queue entry %d: %w", queued.ID, err)
			}
			continue
		}

		reason, err := s.deferral(queued)
		if err != nil {
			return err
		}
		if reason != "" {
			s.listener.OnDeferred(reason)
			s.log.Debugw("Deferred operation", "action", queued.Op.Action, "blocks", queued.Op.Range,
				"reason", reason)
			return nil
		}

		if err = s.admit(ctx, height, queued); err != nil {
			return err
		}
	}
	return nil
}

// admit assigns the next nonce to queued, persists it as unconfirmed and broadcasts it.
func (s *Sender) admit(ctx context.Context, height uint64, queued *core.QueuedOperation) error {
	calldata, err := contract.Encode(&queued.Op)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", queued.Op.Action, queued.Op.Range, err)
	}
	network, err := s.chain.GasPrice(ctx)
	if err != nil {
		return fmt.Errorf("get gas price: %w", err)
	}

	ref := *queued
	op, err := s.store.SaveNewOperation(&core.Operation{
		Action:        queued.Op.Action,
		Op:            &ref,
		Nonce:         s.tracker.nextNonce,
		DeadlineBlock: height + s.cfg.ExpectedWaitBlocks,
		GasPrice:      s.gas.GasPrice(nil, network),
		TxData:        calldata,
	})
	if err != nil {
		return classify(fmt.Errorf("save operation for %s %s: %w", queued.Op.Action, queued.Op.Range, err))
	}
	s.tracker.add(op)
	s.tracker.unsent[op.ID] = struct{}{}
	s.log.Infow("Admitted operation", "id", op.ID, "action", op.Action, "blocks", op.Range(),
		"nonce", op.Nonce, "gasPrice", op.GasPrice.Dec())

	if err = s.broadcast(ctx, op); err != nil {
		return err
	}
	s.listener.OnSent(op.Action, false)
	return nil
}

// broadcast signs op at its current gas price, records the hash and sends the transaction.
// The hash is persisted before the transaction is sent, so a crash in between never loses
// track of a transaction that may be mined.
func (s *Sender) broadcast(ctx context.Context, op *core.Operation) error {
	signed, err := s.chain.SignTx(ctx, op.TxData, op.Nonce, op.GasPrice)
	if err != nil {
		return fmt.Errorf("sign operation %d: %w", op.ID, err)
	}
	if last, ok := op.LastHash(); !ok || last != signed.Hash {
		if err = s.store.AddHash(op.ID, signed.Hash); err != nil {
			return classify(fmt.Errorf("add hash to operation %d: %w", op.ID, err))
		}
		op.TxHashes = append(op.TxHashes, signed.Hash)
	}

	if err = s.chain.SendTx(ctx, signed); err != nil {
		return fmt.Errorf("send operation %d: %w", op.ID, err)
	}
	delete(s.tracker.unsent, op.ID)
	s.log.Debugw("Sent transaction", "id", op.ID, "nonce", op.Nonce, "hash", signed.Hash.Hex())
	return nil
}

// resubmit replaces the transaction of a stuck operation with one using the same nonce and
// an escalated gas price. The replacement is signed before anything is stored, and its price,
// deadline and hash are stored together, so the record never holds a price without the
// transaction signed at it.
func (s *Sender) resubmit(ctx context.Context, height uint64, op *core.Operation) error {
	network, err := s.chain.GasPrice(ctx)
	if err != nil {
		return fmt.Errorf("get gas price: %w", err)
	}
	previous := op.GasPrice
	price := s.gas.GasPrice(&previous, network)
	deadline := height + s.cfg.ExpectedWaitBlocks

	// Signing at the ceiling again reproduces the previous transaction. It is still recorded
	// as a resubmission.
	signed, err := s.chain.SignTx(ctx, op.TxData, op.Nonce, price)
	if err != nil {
		return fmt.Errorf("sign operation %d: %w", op.ID, err)
	}
	if err = s.store.ResubmitOperation(op.ID, deadline, price, signed.Hash); err != nil {
		return classify(fmt.Errorf("store resubmission of operation %d: %w", op.ID, err))
	}
	op.DeadlineBlock = deadline
	op.GasPrice = price
	op.TxHashes = append(op.TxHashes, signed.Hash)

	if err = s.chain.SendTx(ctx, signed); err != nil {
		s.tracker.unsent[op.ID] = struct{}{}
		return fmt.Errorf("send operation %d: %w", op.ID, err)
	}
	delete(s.tracker.unsent, op.ID)

	s.log.Infow("Resubmitted operation", "id", op.ID, "action", op.Action, "nonce", op.Nonce,
		"gasPrice", price.Dec(), "previousGasPrice", previous.Dec(), "deadline", deadline,
		"hash", signed.Hash.Hex())
	s.listener.OnSent(op.Action, true)
	return nil
}
