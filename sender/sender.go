package sender

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/gasprice"
	"github.com/NethermindEth/l1sender/l1"
	"github.com/NethermindEth/l1sender/service"
	"github.com/NethermindEth/l1sender/storage"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/jinzhu/copier"
)

var (
	_ service.Service = (*Sender)(nil)
	_ Reader          = (*Sender)(nil)
)

//go:generate mockgen -destination=../mocks/mock_sender_reader.go -package=mocks github.com/NethermindEth/l1sender/sender Reader

// Reader exposes the sender state to the rest of the operator.
type Reader interface {
	InFlight() []*core.Operation
	NextNonce() uint64
	Stats() core.Stats
	Progress() core.Progress
	Failures() []*TxFailedError
	Halted() bool
}

// Sender turns queued aggregated operations into L1 transactions and follows them until
// they are confirmed.
type Sender struct {
	// mu serialises ticks and guards every field below against concurrent readers.
	mu sync.Mutex

	cfg        Config
	gasCfg     gasprice.Config
	chain      l1.Chain
	store      storage.Store
	gas        *gasprice.Adjuster
	maxPollers int

	tracker  *tracker
	progress core.Progress
	failures []*TxFailedError
	halted   bool

	log      utils.SimpleLogger
	listener EventListener
}

func New(cfg *Config, gasCfg *gasprice.Config, chain l1.Chain, store storage.Store, log utils.SimpleLogger) *Sender {
	return &Sender{
		cfg:        *cfg,
		gasCfg:     *gasCfg,
		chain:      chain,
		store:      store,
		maxPollers: min(runtime.GOMAXPROCS(0), 16),
		log:        log,
		listener:   &SelectiveListener{},
	}
}

// WithListener registers an EventListener
func (s *Sender) WithListener(listener EventListener) *Sender {
	s.listener = listener
	return s
}

// Recover rebuilds the sender state from the store. Transactions already sent are not sent
// again; their fate is discovered by the next tick.
func (s *Sender) Recover() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	params, err := s.store.LoadParameters()
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}
	ops, err := s.store.LoadUnconfirmedOperations()
	if err != nil {
		return fmt.Errorf("load unconfirmed operations: %w", err)
	}

	nextID, err := s.store.NextOperationID()
	if err != nil {
		return fmt.Errorf("load next operation id: %w", err)
	}

	nextNonce := params.Nonce
	for i, op := range ops {
		if op.Confirmed {
			return invariantViolation(fmt.Errorf("operation %d is both confirmed and unconfirmed", op.ID))
		}
		if i > 0 && ops[i-1].Nonce == op.Nonce {
			return invariantViolation(fmt.Errorf("operations %d and %d share nonce %d", ops[i-1].ID, op.ID, op.Nonce))
		}
		if op.Nonce >= params.Nonce {
			return invariantViolation(fmt.Errorf("operation %d has nonce %d, nonce counter is %d",
				op.ID, op.Nonce, params.Nonce))
		}
		// Every saved operation takes the next id and the next nonce, so the operations saved
		// after op account for exactly the nonces above it.
		if op.ID >= nextID || params.Nonce-op.Nonce != nextID-op.ID {
			return invariantViolation(fmt.Errorf("nonce gap: operation %d has nonce %d, "+
				"nonce counter is %d and next operation id is %d", op.ID, op.Nonce, params.Nonce, nextID))
		}
		nextNonce = max(nextNonce, op.Nonce+1)
	}

	queue, err := s.store.LoadPendingOperations()
	if err != nil {
		return fmt.Errorf("load pending operations: %w", err)
	}
	tracker := newTracker(nextNonce, ops)
	var tracked []uint64
	for _, queued := range queue {
		if tracker.tracksQueued(queued.ID) {
			tracked = append(tracked, queued.ID)
		}
	}
	if len(tracked) > 0 {
		if err = s.store.RemovePendingOperations(tracked); err != nil {
			return fmt.Errorf("remove tracked queue entries: %w", err)
		}
	}

	s.tracker = tracker
	s.progress = params.Progress
	s.gas = gasprice.New(&s.gasCfg, params.GasPriceLimit, s.log)
	s.failures = nil
	s.halted = false
	for _, op := range ops {
		if op.Failure != nil {
			s.recordFailure(op)
		}
	}
	s.listener.OnInFlight(len(ops))
	s.log.Infow("Recovered sender state", "nextNonce", nextNonce, "inFlight", len(ops),
		"lastCommitted", s.progress.Stats.LastCommittedBlock,
		"lastVerified", s.progress.Stats.LastVerifiedBlock,
		"lastExecuted", s.progress.Stats.LastExecutedBlock, "failed", len(s.failures), "halted", s.halted)
	return nil
}

// Tick runs one round of the sender: admission of queued operations, confirmation
// monitoring and resubmission of stuck transactions. Nothing is resumed from a tick that
// fails: every change made before the error is already persisted.
func (s *Sender) Tick(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return ErrNotRecovered
	}

	start := time.Now()
	defer func() {
		s.listener.OnInFlight(len(s.tracker.ops))
		s.listener.OnTick(time.Since(start), err)
	}()

	if err = s.gas.KeepUpdated(ctx, s.chain, s.store); err != nil {
		return err
	}
	height, err := s.chain.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("get block number: %w", err)
	}

	queue, err := s.store.LoadPendingOperations()
	if err != nil {
		return fmt.Errorf("load pending operations: %w", err)
	}
	if err = s.admitQueued(ctx, height, queue); err != nil {
		return err
	}

	stuck, err := s.monitor(ctx, height)
	if err != nil {
		return err
	}

	for _, op := range slices.Clone(s.tracker.ops) {
		_, unsent := s.tracker.unsent[op.ID]
		if unsent && !s.tracker.isFailed(op.ID) && !slices.Contains(stuck, op) {
			if err = s.broadcast(ctx, op); err != nil {
				return err
			}
		}
	}
	for _, op := range stuck {
		if err = s.resubmit(ctx, height, op); err != nil {
			return err
		}
	}
	return nil
}

// Run recovers the sender state and ticks every poll period until ctx is cancelled.
// Transient errors are logged and retried on the next tick, invariant violations stop the
// sender.
func (s *Sender) Run(ctx context.Context) error {
	if err := s.Recover(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.cfg.TxPollPeriod)
	defer ticker.Stop()
	for {
		if err := s.Tick(ctx); err != nil {
			if errors.Is(err, ErrInvariantViolation) {
				s.log.Errorw("Stopping sender", "err", err)
				return err
			}
			if ctx.Err() == nil {
				s.log.Warnw("Sender tick failed", "err", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// InFlight returns copies of the unconfirmed operations in nonce order.
func (s *Sender) InFlight() []*core.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return nil
	}

	var ops []*core.Operation
	if err := copier.CopyWithOption(&ops, s.tracker.ops, copier.Option{DeepCopy: true}); err != nil {
		s.log.Errorw("Failed to copy in-flight operations", "err", err)
		return nil
	}
	return ops
}

// NextNonce returns the nonce the next admitted operation will use.
func (s *Sender) NextNonce() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return 0
	}
	return s.tracker.nextNonce
}

func (s *Sender) Stats() core.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Stats
}

func (s *Sender) Progress() core.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Progress{
		Stats:    s.progress.Stats,
		Deferred: slices.Clone(s.progress.Deferred),
	}
}

// Failures returns the operations whose transaction reverted.
func (s *Sender) Failures() []*TxFailedError {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []*TxFailedError
	if err := copier.CopyWithOption(&failures, s.failures, copier.Option{DeepCopy: true}); err != nil {
		s.log.Errorw("Failed to copy failures", "err", err)
		return nil
	}
	return failures
}

// Halted reports whether admission stopped because of a failed transaction.
func (s *Sender) Halted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.halted
}
