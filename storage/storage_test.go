package storage_test

import (
	"testing"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db/pebble"
	"github.com/NethermindEth/l1sender/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *storage.Storage {
	t.Helper()
	params := &core.Parameters{Nonce: 5, GasPriceLimit: *uint256.NewInt(400_000_000_000)}
	s, err := storage.New(pebble.NewMemTest(t), params)
	require.NoError(t, err)
	return s
}

func aggregated(action core.ActionType, first, last uint64) core.AggregatedOperation {
	return core.AggregatedOperation{
		Action: action,
		Range:  core.BlockRange{First: first, Last: last},
		Data:   []byte{byte(action), byte(first), byte(last)},
	}
}

func saveQueued(t *testing.T, s *storage.Storage, op core.AggregatedOperation, nonce uint64) *core.Operation {
	t.Helper()
	id, err := s.EnqueueOperation(op)
	require.NoError(t, err)

	saved, err := s.SaveNewOperation(&core.Operation{
		Action:        op.Action,
		Op:            &core.QueuedOperation{ID: id, Op: op},
		Nonce:         nonce,
		DeadlineBlock: 100,
		GasPrice:      *uint256.NewInt(10),
		TxData:        op.Data,
	})
	require.NoError(t, err)
	return saved
}

func TestNew(t *testing.T) {
	database := pebble.NewMemTest(t)
	defaults := &core.Parameters{Nonce: 7, GasPriceLimit: *uint256.NewInt(42)}

	s, err := storage.New(database, defaults)
	require.NoError(t, err)
	params, err := s.LoadParameters()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), params.Nonce)
	assert.Equal(t, uint64(42), params.GasPriceLimit.Uint64())
	assert.Nil(t, params.AverageGasPrice)

	t.Run("existing parameters are kept", func(t *testing.T) {
		s, err := storage.New(database, &core.Parameters{Nonce: 1})
		require.NoError(t, err)
		params, err := s.LoadParameters()
		require.NoError(t, err)
		assert.Equal(t, uint64(7), params.Nonce)
	})
}

func TestQueue(t *testing.T) {
	s := newStorage(t)

	t.Run("invalid operation is rejected", func(t *testing.T) {
		_, err := s.EnqueueOperation(aggregated(core.Commit, 0, 1))
		require.Error(t, err)
		_, err = s.EnqueueOperation(aggregated(core.Execute+1, 1, 1))
		require.Error(t, err)
	})

	ids := make([]uint64, 0, 3)
	for i := uint64(1); i <= 3; i++ {
		id, err := s.EnqueueOperation(aggregated(core.Commit, i, i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []uint64{0, 1, 2}, ids)

	pending, err := s.LoadPendingOperations()
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, queued := range pending {
		assert.Equal(t, ids[i], queued.ID)
		assert.Equal(t, aggregated(core.Commit, uint64(i+1), uint64(i+1)), queued.Op)
	}

	require.NoError(t, s.RemovePendingOperations([]uint64{ids[0], ids[2]}))
	pending, err = s.LoadPendingOperations()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[1], pending[0].ID)
}

func TestSaveNewOperation(t *testing.T) {
	s := newStorage(t)

	t.Run("nonce mismatch", func(t *testing.T) {
		op := aggregated(core.Commit, 1, 1)
		_, err := s.SaveNewOperation(&core.Operation{
			Action: op.Action,
			Op:     &core.QueuedOperation{Op: op},
			Nonce:  6,
		})
		require.ErrorIs(t, err, storage.ErrNonceMismatch)

		params, err := s.LoadParameters()
		require.NoError(t, err)
		assert.Equal(t, uint64(5), params.Nonce)
	})

	nextID, err := s.NextOperationID()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nextID)

	saved := saveQueued(t, s, aggregated(core.Commit, 1, 2), 5)
	assert.Equal(t, uint64(0), saved.ID)
	nextID, err = s.NextOperationID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nextID)
	assert.False(t, saved.Confirmed)

	params, err := s.LoadParameters()
	require.NoError(t, err)
	assert.Equal(t, uint64(6), params.Nonce)

	pending, err := s.LoadPendingOperations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	stored, err := s.Operation(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, stored)

	second := saveQueued(t, s, aggregated(core.Commit, 3, 3), 6)
	assert.Equal(t, uint64(1), second.ID)

	unconfirmed, err := s.LoadUnconfirmedOperations()
	require.NoError(t, err)
	require.Len(t, unconfirmed, 2)
	assert.Equal(t, uint64(5), unconfirmed[0].Nonce)
	assert.Equal(t, uint64(6), unconfirmed[1].Nonce)
}

func TestOperationUpdates(t *testing.T) {
	s := newStorage(t)
	op := saveQueued(t, s, aggregated(core.Commit, 1, 1), 5)

	hashes := []common.Hash{{1}, {2}}
	for _, hash := range hashes {
		require.NoError(t, s.AddHash(op.ID, hash))
	}
	require.NoError(t, s.ResubmitOperation(op.ID, 250, *uint256.NewInt(12), common.Hash{3}))

	stored, err := s.Operation(op.ID)
	require.NoError(t, err)
	assert.Equal(t, []common.Hash{{1}, {2}, {3}}, stored.TxHashes)
	assert.Equal(t, uint64(250), stored.DeadlineBlock)
	assert.Equal(t, uint64(12), stored.GasPrice.Uint64())
	assert.Nil(t, stored.Failure)

	t.Run("unknown operation", func(t *testing.T) {
		require.ErrorIs(t, s.AddHash(42, common.Hash{}), storage.ErrOperationNotFound)
		require.ErrorIs(t, s.ResubmitOperation(42, 1, uint256.Int{}, common.Hash{}), storage.ErrOperationNotFound)
		require.ErrorIs(t, s.MarkFailed(42, common.Hash{}, nil), storage.ErrOperationNotFound)
		_, err := s.Operation(42)
		require.ErrorIs(t, err, storage.ErrOperationNotFound)
	})
}

func TestMarkFailed(t *testing.T) {
	s := newStorage(t)
	op := saveQueued(t, s, aggregated(core.Commit, 1, 1), 5)
	require.NoError(t, s.AddHash(op.ID, common.Hash{1}))

	require.ErrorIs(t, s.MarkFailed(op.ID, common.Hash{2}, nil), storage.ErrUnknownHash)
	stored, err := s.Operation(op.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Failure)

	info := &core.FailureInfo{RevertReason: "stale batch", GasUsed: 21_000, GasLimit: 50_000}
	require.NoError(t, s.MarkFailed(op.ID, common.Hash{1}, info))

	unconfirmed, err := s.LoadUnconfirmedOperations()
	require.NoError(t, err)
	require.Len(t, unconfirmed, 1)
	require.NotNil(t, unconfirmed[0].Failure)
	assert.Equal(t, common.Hash{1}, unconfirmed[0].Failure.Hash)
	assert.Equal(t, info, unconfirmed[0].Failure.Info)
	assert.False(t, unconfirmed[0].Confirmed)

	t.Run("failed operations are not resubmitted", func(t *testing.T) {
		require.ErrorIs(t, s.ResubmitOperation(op.ID, 300, *uint256.NewInt(20), common.Hash{3}), storage.ErrOperationFailed)
		stored, err := s.Operation(op.ID)
		require.NoError(t, err)
		assert.Equal(t, []common.Hash{{1}}, stored.TxHashes)
		assert.Equal(t, uint64(10), stored.GasPrice.Uint64())
	})
}

func TestConfirmOperation(t *testing.T) {
	s := newStorage(t)
	op := saveQueued(t, s, aggregated(core.Commit, 1, 4), 5)
	require.NoError(t, s.AddHash(op.ID, common.Hash{1}))
	require.NoError(t, s.AddHash(op.ID, common.Hash{2}))

	require.ErrorIs(t, s.ConfirmOperation(op.ID, common.Hash{3}, core.Progress{}), storage.ErrUnknownHash)

	progress := core.Progress{
		Stats:    core.Stats{LastCommittedBlock: 4},
		Deferred: []core.ConfirmedRange{{Action: core.Verify, Range: core.BlockRange{First: 9, Last: 10}}},
	}
	require.NoError(t, s.ConfirmOperation(op.ID, common.Hash{1}, progress))

	stored, err := s.Operation(op.ID)
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	require.NotNil(t, stored.FinalHash)
	assert.Equal(t, common.Hash{1}, *stored.FinalHash)

	unconfirmed, err := s.LoadUnconfirmedOperations()
	require.NoError(t, err)
	assert.Empty(t, unconfirmed)

	params, err := s.LoadParameters()
	require.NoError(t, err)
	assert.Equal(t, progress, params.Progress)

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), stats.LastCommittedBlock)

	t.Run("confirmed operations are immutable", func(t *testing.T) {
		require.ErrorIs(t, s.ConfirmOperation(op.ID, common.Hash{1}, progress), storage.ErrAlreadyConfirmed)
		require.ErrorIs(t, s.AddHash(op.ID, common.Hash{4}), storage.ErrAlreadyConfirmed)
		require.ErrorIs(t, s.ResubmitOperation(op.ID, 1, uint256.Int{}, common.Hash{5}), storage.ErrAlreadyConfirmed)
		require.ErrorIs(t, s.MarkFailed(op.ID, common.Hash{1}, nil), storage.ErrAlreadyConfirmed)
	})
}

func TestIsPredecessorConfirmed(t *testing.T) {
	s := newStorage(t)

	confirmed, err := s.IsPredecessorConfirmed(core.Verify, 3)
	require.NoError(t, err)
	assert.False(t, confirmed)

	verify := saveQueued(t, s, aggregated(core.Verify, 1, 3), 5)
	require.NoError(t, s.AddHash(verify.ID, common.Hash{1}))

	confirmed, err = s.IsPredecessorConfirmed(core.Verify, 3)
	require.NoError(t, err)
	assert.False(t, confirmed)

	require.NoError(t, s.ConfirmOperation(verify.ID, common.Hash{1}, core.Progress{}))

	confirmed, err = s.IsPredecessorConfirmed(core.Verify, 3)
	require.NoError(t, err)
	assert.True(t, confirmed)

	confirmed, err = s.IsPredecessorConfirmed(core.Commit, 3)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestUpdateGasPriceParams(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.UpdateGasPriceParams(*uint256.NewInt(500), *uint256.NewInt(300)))

	params, err := s.LoadParameters()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), params.GasPriceLimit.Uint64())
	require.NotNil(t, params.AverageGasPrice)
	assert.Equal(t, uint64(300), params.AverageGasPrice.Uint64())
	assert.Equal(t, uint64(5), params.Nonce)
}
