package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SignedTx is a signed L1 transaction ready to be broadcast.
type SignedTx struct {
	Hash     common.Hash
	Nonce    uint64
	GasPrice uint256.Int
	Raw      []byte
}

// TxStatus is the execution status of a mined transaction.
type TxStatus struct {
	Confirmations uint64
	Success       bool
}

// FailureInfo describes why a mined transaction failed.
type FailureInfo struct {
	RevertCode   uint64
	RevertReason string
	GasUsed      uint64
	GasLimit     uint64
}

// Failure is the persisted record of a reverted transaction.
type Failure struct {
	Hash common.Hash
	// Info is nil when the chain had no diagnostics for the transaction.
	Info *FailureInfo
}
