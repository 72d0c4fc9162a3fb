package core

import "github.com/holiman/uint256"

// Stats is the progress reported to the rest of the operator.
type Stats struct {
	LastCommittedBlock uint64 `json:"last_committed_block"`
	LastVerifiedBlock  uint64 `json:"last_verified_block"`
	LastExecutedBlock  uint64 `json:"last_executed_block"`
}

// LastBlock returns the progress counter for the given action.
func (s *Stats) LastBlock(action ActionType) uint64 {
	switch action {
	case Commit:
		return s.LastCommittedBlock
	case Verify:
		return s.LastVerifiedBlock
	default:
		return s.LastExecutedBlock
	}
}

func (s *Stats) SetLastBlock(action ActionType, block uint64) {
	switch action {
	case Commit:
		s.LastCommittedBlock = block
	case Verify:
		s.LastVerifiedBlock = block
	default:
		s.LastExecutedBlock = block
	}
}

// ConfirmedRange is a confirmed operation whose progress could not be applied yet
// because an operation of the same action covering earlier blocks is unconfirmed.
type ConfirmedRange struct {
	Action ActionType
	Range  BlockRange
}

type Progress struct {
	Stats    Stats
	Deferred []ConfirmedRange
}

// Parameters is the process-wide persisted state of the sender.
type Parameters struct {
	// Nonce is the next nonce to be assigned.
	Nonce           uint64
	GasPriceLimit   uint256.Int
	AverageGasPrice *uint256.Int
	Progress        Progress
}
