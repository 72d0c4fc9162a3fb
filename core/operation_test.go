package core_test

import (
	"testing"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionType(t *testing.T) {
	for _, action := range []core.ActionType{core.Commit, core.Verify, core.Execute} {
		t.Run(action.String(), func(t *testing.T) {
			assert.True(t, action.Valid())

			text, err := action.MarshalText()
			require.NoError(t, err)
			var decoded core.ActionType
			require.NoError(t, decoded.UnmarshalText(text))
			assert.Equal(t, action, decoded)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		unknown := core.ActionType(7)
		assert.False(t, unknown.Valid())
		assert.Equal(t, "unknown(7)", unknown.String())
		_, err := unknown.MarshalText()
		require.ErrorIs(t, err, core.ErrUnknownAction)

		var decoded core.ActionType
		require.ErrorIs(t, decoded.UnmarshalText([]byte("prove")), core.ErrUnknownAction)
	})

	t.Run("predecessor", func(t *testing.T) {
		pred, ok := core.Execute.Predecessor()
		assert.True(t, ok)
		assert.Equal(t, core.Verify, pred)

		_, ok = core.Commit.Predecessor()
		assert.False(t, ok)
		_, ok = core.Verify.Predecessor()
		assert.False(t, ok)
	})
}

func TestBlockRange(t *testing.T) {
	tests := map[string]struct {
		r          core.BlockRange
		valid      bool
		startFirst bool
	}{
		"single block":      {r: core.BlockRange{First: 1, Last: 1}, valid: true, startFirst: true},
		"later range":       {r: core.BlockRange{First: 5, Last: 9}, valid: true},
		"zero first":        {r: core.BlockRange{First: 0, Last: 3}},
		"last before first": {r: core.BlockRange{First: 4, Last: 3}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.valid, test.r.Valid())
			assert.Equal(t, test.startFirst, test.r.StartsAtFirstBlock())
		})
	}
	assert.Equal(t, "[5, 9]", core.BlockRange{First: 5, Last: 9}.String())
}

func TestAggregatedOperationValidate(t *testing.T) {
	valid := core.AggregatedOperation{Action: core.Commit, Range: core.BlockRange{First: 1, Last: 2}}
	require.NoError(t, valid.Validate())

	badAction := valid
	badAction.Action = 9
	require.ErrorContains(t, badAction.Validate(), "invalid action")

	badRange := valid
	badRange.Range = core.BlockRange{First: 3, Last: 2}
	require.ErrorContains(t, badRange.Validate(), "invalid block range")
}

func TestOperationHashes(t *testing.T) {
	op := &core.Operation{}
	_, ok := op.LastHash()
	assert.False(t, ok)
	assert.Equal(t, core.BlockRange{}, op.Range())

	first, second := common.HexToHash("0x1"), common.HexToHash("0x2")
	op.TxHashes = []common.Hash{first, second}
	op.Op = &core.QueuedOperation{Op: core.AggregatedOperation{Range: core.BlockRange{First: 2, Last: 4}}}

	last, ok := op.LastHash()
	assert.True(t, ok)
	assert.Equal(t, second, last)
	assert.True(t, op.HasHash(first))
	assert.False(t, op.HasHash(common.HexToHash("0x3")))
	assert.Equal(t, core.BlockRange{First: 2, Last: 4}, op.Range())
}

func TestStats(t *testing.T) {
	var stats core.Stats
	stats.SetLastBlock(core.Commit, 30)
	stats.SetLastBlock(core.Verify, 20)
	stats.SetLastBlock(core.Execute, 10)

	assert.Equal(t, core.Stats{LastCommittedBlock: 30, LastVerifiedBlock: 20, LastExecutedBlock: 10}, stats)
	assert.Equal(t, uint64(30), stats.LastBlock(core.Commit))
	assert.Equal(t, uint64(20), stats.LastBlock(core.Verify))
	assert.Equal(t, uint64(10), stats.LastBlock(core.Execute))
}
