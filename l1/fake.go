package l1

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

type execution struct {
	block   uint64
	success bool
}

// FakeChain is a deterministic in-memory Chain. Transactions are never mined on their own:
// tests decide when and how each hash executes.
type FakeChain struct {
	mu         sync.Mutex
	height     uint64
	gasPrice   uint256.Int
	sent       []*core.SignedTx
	signed     map[common.Hash]*core.SignedTx
	executions map[common.Hash]execution
	failures   map[common.Hash]*core.FailureInfo
}

var _ Chain = (*FakeChain)(nil)

func NewFakeChain(height uint64, gasPrice uint64) *FakeChain {
	return &FakeChain{
		height:     height,
		gasPrice:   *uint256.NewInt(gasPrice),
		signed:     make(map[common.Hash]*core.SignedTx),
		executions: make(map[common.Hash]execution),
		failures:   make(map[common.Hash]*core.FailureInfo),
	}
}

func (c *FakeChain) BlockNumber(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height, nil
}

func (c *FakeChain) GasPrice(context.Context) (uint256.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gasPrice, nil
}

// SignTx derives the hash from the transaction contents.
func (c *FakeChain) SignTx(_ context.Context, data []byte, nonce uint64, gasPrice uint256.Int) (*core.SignedTx, error) {
	price := gasPrice.Bytes32()
	hash := crypto.Keccak256Hash(data, binary.BigEndian.AppendUint64(nil, nonce), price[:])

	c.mu.Lock()
	defer c.mu.Unlock()
	tx := &core.SignedTx{
		Hash:     hash,
		Nonce:    nonce,
		GasPrice: gasPrice,
		Raw:      append([]byte(nil), data...),
	}
	c.signed[hash] = tx
	return tx, nil
}

func (c *FakeChain) SendTx(_ context.Context, tx *core.SignedTx) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, tx)
	return nil
}

func (c *FakeChain) TxStatus(_ context.Context, hash common.Hash) (*core.TxStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exec, ok := c.executions[hash]
	if !ok {
		return nil, nil
	}
	return &core.TxStatus{
		Confirmations: c.height - exec.block,
		Success:       exec.success,
	}, nil
}

func (c *FakeChain) FailureReason(_ context.Context, hash common.Hash) (*core.FailureInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exec, ok := c.executions[hash]
	if !ok || exec.success {
		return nil, nil
	}
	if info, ok := c.failures[hash]; ok {
		infoCopy := *info
		return &infoCopy, nil
	}
	return &core.FailureInfo{}, nil
}

// AdvanceBlocks mines n empty blocks.
func (c *FakeChain) AdvanceBlocks(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height += n
}

func (c *FakeChain) SetGasPrice(price uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gasPrice = *uint256.NewInt(price)
}

// AddSuccessfulExecution mines hash in the next block and then mines confirmations more blocks.
func (c *FakeChain) AddSuccessfulExecution(hash common.Hash, confirmations uint64) {
	c.execute(hash, true, confirmations)
}

// AddFailedExecution mines hash as reverted in the next block and then mines confirmations
// more blocks.
func (c *FakeChain) AddFailedExecution(hash common.Hash, confirmations uint64) {
	c.execute(hash, false, confirmations)
}

func (c *FakeChain) SetFailureReason(hash common.Hash, info *core.FailureInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[hash] = info
}

func (c *FakeChain) execute(hash common.Hash, success bool, confirmations uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height++
	c.executions[hash] = execution{block: c.height, success: success}
	c.height += confirmations
}

// Sent returns every broadcast in order, including repeated ones.
func (c *FakeChain) Sent() []*core.SignedTx {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*core.SignedTx(nil), c.sent...)
}

// SentWithNonce returns the broadcasts using nonce, in order.
func (c *FakeChain) SentWithNonce(nonce uint64) []*core.SignedTx {
	c.mu.Lock()
	defer c.mu.Unlock()
	var txs []*core.SignedTx
	for _, tx := range c.sent {
		if tx.Nonce == nonce {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Signed returns the transaction signed with the given hash.
func (c *FakeChain) Signed(hash common.Hash) (*core.SignedTx, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ok := c.signed[hash]
	return tx, ok
}
