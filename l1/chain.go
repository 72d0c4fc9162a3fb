package l1

import (
	"context"
	"math/big"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Chain is the settlement layer as seen by the sender.
//
//go:generate mockgen -destination=../mocks/mock_chain.go -package=mocks github.com/NethermindEth/l1sender/l1 Chain
type Chain interface {
	BlockNumber(ctx context.Context) (uint64, error)
	GasPrice(ctx context.Context) (uint256.Int, error)
	// SignTx signs a call of the settlement contract with data, nonce and gasPrice. Signing
	// the same inputs twice yields the same hash.
	SignTx(ctx context.Context, data []byte, nonce uint64, gasPrice uint256.Int) (*core.SignedTx, error)
	// SendTx broadcasts a signed transaction. Sending a transaction the chain already knows
	// about, or one whose nonce has already been used, is not an error.
	SendTx(ctx context.Context, tx *core.SignedTx) error
	// TxStatus returns nil if the transaction has not been mined.
	TxStatus(ctx context.Context, hash common.Hash) (*core.TxStatus, error)
	// FailureReason returns nil if the transaction has not been mined.
	FailureReason(ctx context.Context, hash common.Hash) (*core.FailureInfo, error)
}

// Backend is the subset of the go-ethereum client used by EthClient.
//
//go:generate mockgen -destination=../mocks/mock_backend.go -package=mocks github.com/NethermindEth/l1sender/l1 Backend
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}
