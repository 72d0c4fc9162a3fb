package core

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// FirstBlock is the number of the first rollup block. Operations covering it have no
// predecessor to wait for.
const FirstBlock uint64 = 1

type ActionType uint8

const (
	Commit ActionType = iota
	Verify
	Execute
)

func (a ActionType) String() string {
	switch a {
	case Commit:
		return "commit"
	case Verify:
		return "verify"
	case Execute:
		return "execute"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

var ErrUnknownAction = errors.New("unknown action (known: commit, verify, execute)")

func (a ActionType) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrUnknownAction
	}
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "commit", "COMMIT":
		*a = Commit
	case "verify", "VERIFY":
		*a = Verify
	case "execute", "EXECUTE":
		*a = Execute
	default:
		return ErrUnknownAction
	}
	return nil
}

func (a ActionType) Valid() bool {
	return a <= Execute
}

// Predecessor returns the action which must be confirmed for the block range
// immediately preceding an operation of type a before that operation may be sent.
func (a ActionType) Predecessor() (ActionType, bool) {
	if a == Execute {
		return Verify, true
	}
	return 0, false
}

// BlockRange is an inclusive range of rollup blocks.
type BlockRange struct {
	First uint64 `json:"first"`
	Last  uint64 `json:"last"`
}

func (r BlockRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.First, r.Last)
}

func (r BlockRange) Valid() bool {
	return r.First >= FirstBlock && r.First <= r.Last
}

func (r BlockRange) StartsAtFirstBlock() bool {
	return r.First == FirstBlock
}

// AggregatedOperation is a batched rollup action awaiting settlement on L1.
type AggregatedOperation struct {
	Action ActionType
	Range  BlockRange
	Data   []byte
}

func (o *AggregatedOperation) Validate() error {
	if !o.Action.Valid() {
		return fmt.Errorf("invalid action %s", o.Action)
	}
	if !o.Range.Valid() {
		return fmt.Errorf("invalid block range %s", o.Range)
	}
	return nil
}

// QueuedOperation is an AggregatedOperation with the id it was queued under.
type QueuedOperation struct {
	ID uint64
	Op AggregatedOperation
}

// Operation is the record of one aggregated operation's submission history on L1.
type Operation struct {
	ID            uint64
	Action        ActionType
	Op            *QueuedOperation
	Nonce         uint64
	DeadlineBlock uint64
	GasPrice      uint256.Int
	TxHashes      []common.Hash
	TxData        []byte
	Confirmed     bool
	FinalHash     *common.Hash
	// Failure is set once a transaction of the operation reverted. A failed operation is
	// never resubmitted.
	Failure *Failure
}

// Range returns the block range covered by the operation.
func (o *Operation) Range() BlockRange {
	if o.Op == nil {
		return BlockRange{}
	}
	return o.Op.Op.Range
}

// LastHash returns the hash of the most recent (re)submission.
func (o *Operation) LastHash() (common.Hash, bool) {
	if len(o.TxHashes) == 0 {
		return common.Hash{}, false
	}
	return o.TxHashes[len(o.TxHashes)-1], true
}

func (o *Operation) HasHash(hash common.Hash) bool {
	for _, h := range o.TxHashes {
		if h == hash {
			return true
		}
	}
	return false
}
