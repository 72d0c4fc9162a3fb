package encoder_test

import (
	"testing"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/encoder"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationRecord(t *testing.T) {
	final := common.HexToHash("0x02")
	op := core.Operation{
		ID:     4,
		Action: core.Execute,
		Op: &core.QueuedOperation{
			ID: 9,
			Op: core.AggregatedOperation{Action: core.Execute, Range: core.BlockRange{First: 3, Last: 6}, Data: []byte{1, 2}},
		},
		Nonce:         11,
		DeadlineBlock: 300,
		GasPrice:      *uint256.MustFromDecimal("120000000000"),
		TxHashes:      []common.Hash{common.HexToHash("0x01"), final},
		TxData:        []byte{1, 2},
		Confirmed:     true,
		FinalHash:     &final,
	}

	encoded, err := encoder.Marshal(op)
	require.NoError(t, err)

	again, err := encoder.Marshal(op)
	require.NoError(t, err)
	assert.Equal(t, encoded, again, "encoding is deterministic")

	decoded, err := encoder.Decode[core.Operation](encoded)
	require.NoError(t, err)
	assert.Equal(t, op, decoded)
}

func TestUnconfirmedOperationHasNoFinalHash(t *testing.T) {
	encoded, err := encoder.Marshal(core.Operation{ID: 1})
	require.NoError(t, err)

	decoded, err := encoder.Decode[core.Operation](encoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.FinalHash)
	assert.False(t, decoded.Confirmed)
}

func TestRejectsMalformedRecords(t *testing.T) {
	t.Run("duplicate map key", func(t *testing.T) {
		// {"Nonce": 1, "Nonce": 2}
		record := []byte{0xa2, 0x65, 'N', 'o', 'n', 'c', 'e', 0x01, 0x65, 'N', 'o', 'n', 'c', 'e', 0x02}
		_, err := encoder.Decode[core.Operation](record)
		require.Error(t, err)
	})

	t.Run("indefinite length", func(t *testing.T) {
		// [_ 1]
		_, err := encoder.Decode[[]uint64]([]byte{0x9f, 0x01, 0xff})
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		encoded, err := encoder.Marshal(core.Stats{LastCommittedBlock: 5})
		require.NoError(t, err)
		_, err = encoder.Decode[core.Stats](encoded[:len(encoded)-1])
		require.Error(t, err)
	})
}
