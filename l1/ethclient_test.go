package l1_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/NethermindEth/l1sender/l1"
	"github.com/NethermindEth/l1sender/mocks"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var settlement = common.HexToAddress("0x32400084C286CF3E17e7B677ea9583e60a000324")

func newEthClient(t *testing.T) (*l1.EthClient, *mocks.MockBackend) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(11155111), nil)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	client, err := l1.NewEthClient(context.Background(), backend, settlement, key, 500_000, utils.NewNopZapLogger())
	require.NoError(t, err)
	return client, backend
}

func TestNewEthClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("connection refused"))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	_, err = l1.NewEthClient(context.Background(), backend, settlement, key, 500_000, utils.NewNopZapLogger())
	require.ErrorContains(t, err, "connection refused")
}

func TestSignAndSend(t *testing.T) {
	client, backend := newEthClient(t)
	ctx := context.Background()
	data := []byte{1, 2, 3}

	signed, err := client.SignTx(ctx, data, 7, *uint256.NewInt(30_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), signed.Nonce)

	again, err := client.SignTx(ctx, data, 7, *uint256.NewInt(30_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, signed.Hash, again.Hash)

	backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			assert.Equal(t, signed.Hash, tx.Hash())
			assert.Equal(t, uint64(7), tx.Nonce())
			assert.Equal(t, uint64(500_000), tx.Gas())
			assert.Equal(t, &settlement, tx.To())
			assert.Equal(t, data, tx.Data())

			sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
			require.NoError(t, err)
			assert.Equal(t, client.From(), sender)
			return nil
		})
	require.NoError(t, client.SendTx(ctx, signed))

	t.Run("already sent transactions are not an error", func(t *testing.T) {
		backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("already known"))
		require.NoError(t, client.SendTx(ctx, signed))

		backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("nonce too low: next nonce 8, tx nonce 7"))
		require.NoError(t, client.SendTx(ctx, signed))
	})

	t.Run("send error", func(t *testing.T) {
		backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("replacement transaction underpriced"))
		require.Error(t, client.SendTx(ctx, signed))
	})
}

func TestGasPrice(t *testing.T) {
	client, backend := newEthClient(t)

	backend.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(25), nil)
	price, err := client.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(25), price.Uint64())

	overflowing := new(big.Int).Lsh(big.NewInt(1), 256)
	backend.EXPECT().SuggestGasPrice(gomock.Any()).Return(overflowing, nil)
	_, err = client.GasPrice(context.Background())
	require.Error(t, err)
}

func TestTxStatus(t *testing.T) {
	client, backend := newEthClient(t)
	ctx := context.Background()
	hash := common.Hash{1}

	t.Run("not mined", func(t *testing.T) {
		backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound)
		status, err := client.TxStatus(ctx, hash)
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("mined", func(t *testing.T) {
		backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(100),
		}, nil)
		backend.EXPECT().BlockNumber(gomock.Any()).Return(uint64(103), nil)

		status, err := client.TxStatus(ctx, hash)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.True(t, status.Success)
		assert.Equal(t, uint64(3), status.Confirmations)
	})

	t.Run("reverted", func(t *testing.T) {
		backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(100),
		}, nil)
		backend.EXPECT().BlockNumber(gomock.Any()).Return(uint64(100), nil)

		status, err := client.TxStatus(ctx, hash)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.False(t, status.Success)
		assert.Zero(t, status.Confirmations)
	})

	t.Run("rpc error", func(t *testing.T) {
		backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, errors.New("timeout"))
		_, err := client.TxStatus(ctx, hash)
		require.Error(t, err)
	})
}

func TestFailureReason(t *testing.T) {
	client, backend := newEthClient(t)
	ctx := context.Background()

	signed, err := client.SignTx(ctx, []byte{9}, 1, *uint256.NewInt(10))
	require.NoError(t, err)
	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(signed.Raw))

	backend.EXPECT().TransactionReceipt(gomock.Any(), signed.Hash).Return(&types.Receipt{
		Status:      types.ReceiptStatusFailed,
		BlockNumber: big.NewInt(50),
		GasUsed:     21_500,
	}, nil)
	backend.EXPECT().TransactionByHash(gomock.Any(), signed.Hash).Return(tx, false, nil)
	backend.EXPECT().CallContract(gomock.Any(), gomock.Any(), big.NewInt(50)).DoAndReturn(
		func(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, client.From(), call.From)
			assert.Equal(t, []byte{9}, call.Data)
			return nil, errors.New("execution reverted: invalid block range")
		})

	info, err := client.FailureReason(ctx, signed.Hash)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, types.ReceiptStatusFailed, info.RevertCode)
	assert.Equal(t, uint64(21_500), info.GasUsed)
	assert.Equal(t, uint64(500_000), info.GasLimit)
	assert.Equal(t, "execution reverted: invalid block range", info.RevertReason)

	t.Run("not mined", func(t *testing.T) {
		backend.EXPECT().TransactionReceipt(gomock.Any(), common.Hash{2}).Return(nil, ethereum.NotFound)
		info, err := client.FailureReason(ctx, common.Hash{2})
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestEventListener(t *testing.T) {
	client, backend := newEthClient(t)
	var calls []string
	client.WithEventListener(l1.SelectiveListener{
		OnL1CallCb: func(method string, _ time.Duration, err error) {
			calls = append(calls, method)
		},
	})

	backend.EXPECT().BlockNumber(gomock.Any()).Return(uint64(1), nil)
	_, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eth_blockNumber"}, calls)
}
