package l1

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"
)

// Send errors meaning the transaction, or another one with its nonce, already reached the chain.
var alreadySentErrors = []string{"already known", "nonce too low", "known transaction"}

// EthClient is a Chain backed by an Ethereum JSON-RPC endpoint. Transactions call the
// settlement contract and are signed with the operator key.
type EthClient struct {
	backend  Backend
	contract common.Address
	key      *ecdsa.PrivateKey
	from     common.Address
	signer   types.Signer
	gasLimit uint64
	listener EventListener
	log      utils.SimpleLogger
}

var _ Chain = (*EthClient)(nil)

func NewEthClient(ctx context.Context, backend Backend, contract common.Address, key *ecdsa.PrivateKey,
	gasLimit uint64, log utils.SimpleLogger,
) (*EthClient, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	return &EthClient{
		backend:  backend,
		contract: contract,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		signer:   types.LatestSignerForChainID(chainID),
		gasLimit: gasLimit,
		listener: SelectiveListener{},
		log:      log,
	}, nil
}

// Dial connects to the Ethereum node at url.
func Dial(ctx context.Context, url string, contract common.Address, key *ecdsa.PrivateKey, gasLimit uint64,
	log utils.SimpleLogger,
) (*EthClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	client, err := rpc.DialContext(dialCtx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewEthClient(ctx, ethclient.NewClient(client), contract, key, gasLimit, log)
}

func (c *EthClient) WithEventListener(l EventListener) *EthClient {
	c.listener = l
	return c
}

// From returns the operator address transactions are sent from.
func (c *EthClient) From() common.Address {
	return c.from
}

func (c *EthClient) BlockNumber(ctx context.Context) (height uint64, err error) {
	defer c.observe("eth_blockNumber", time.Now(), &err)
	return c.backend.BlockNumber(ctx)
}

func (c *EthClient) GasPrice(ctx context.Context) (_ uint256.Int, err error) {
	defer c.observe("eth_gasPrice", time.Now(), &err)
	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return uint256.Int{}, err
	}
	gasPrice, overflow := uint256.FromBig(price)
	if overflow {
		return uint256.Int{}, fmt.Errorf("gas price %s overflows", price)
	}
	return *gasPrice, nil
}

func (c *EthClient) SignTx(_ context.Context, data []byte, nonce uint64, gasPrice uint256.Int) (*core.SignedTx, error) {
	tx, err := types.SignNewTx(c.key, c.signer, &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice.ToBig(),
		Gas:      c.gasLimit,
		To:       &c.contract,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &core.SignedTx{
		Hash:     tx.Hash(),
		Nonce:    nonce,
		GasPrice: gasPrice,
		Raw:      raw,
	}, nil
}

func (c *EthClient) SendTx(ctx context.Context, signed *core.SignedTx) (err error) {
	defer c.observe("eth_sendRawTransaction", time.Now(), &err)
	tx := new(types.Transaction)
	if err = tx.UnmarshalBinary(signed.Raw); err != nil {
		return fmt.Errorf("decode signed transaction: %w", err)
	}

	if err = c.backend.SendTransaction(ctx, tx); err != nil {
		if isAlreadySent(err) {
			c.log.Debugw("Transaction already sent", "hash", tx.Hash().Hex(), "nonce", tx.Nonce(), "err", err)
			return nil
		}
		return err
	}
	return nil
}

func (c *EthClient) TxStatus(ctx context.Context, hash common.Hash) (_ *core.TxStatus, err error) {
	defer c.observe("eth_getTransactionReceipt", time.Now(), &err)
	receipt, err := c.receipt(ctx, hash)
	if err != nil || receipt == nil {
		return nil, err
	}
	head, err := c.backend.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	var confirmations uint64
	if mined := receipt.BlockNumber.Uint64(); head > mined {
		confirmations = head - mined
	}
	return &core.TxStatus{
		Confirmations: confirmations,
		Success:       receipt.Status == types.ReceiptStatusSuccessful,
	}, nil
}

// FailureReason replays a mined transaction at its block to recover the revert reason.
func (c *EthClient) FailureReason(ctx context.Context, hash common.Hash) (_ *core.FailureInfo, err error) {
	defer c.observe("eth_call", time.Now(), &err)
	receipt, err := c.receipt(ctx, hash)
	if err != nil || receipt == nil {
		return nil, err
	}
	tx, _, err := c.backend.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", hash.Hex(), err)
	}

	info := &core.FailureInfo{
		RevertCode: receipt.Status,
		GasUsed:    receipt.GasUsed,
		GasLimit:   tx.Gas(),
	}
	_, callErr := c.backend.CallContract(ctx, ethereum.CallMsg{
		From:     c.from,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}, receipt.BlockNumber)
	if callErr != nil {
		info.RevertReason = revertReason(callErr)
	}
	return info, nil
}

func (c *EthClient) receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	receipt, err := c.backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt %s: %w", hash.Hex(), err)
	}
	return receipt, nil
}

func (c *EthClient) observe(method string, start time.Time, err *error) {
	c.listener.OnL1Call(method, time.Since(start), *err)
}

func isAlreadySent(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, known := range alreadySentErrors {
		if strings.Contains(msg, known) {
			return true
		}
	}
	return false
}

func revertReason(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if encoded, ok := dataErr.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(encoded); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}
