package contract

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NethermindEth/l1sender/core"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

const settlementABI = `[
	{"type":"function","name":"commitBlocks","stateMutability":"nonpayable","inputs":[
		{"name":"firstBlock","type":"uint64"},{"name":"lastBlock","type":"uint64"},{"name":"data","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"proveBlocks","stateMutability":"nonpayable","inputs":[
		{"name":"firstBlock","type":"uint64"},{"name":"lastBlock","type":"uint64"},{"name":"data","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"executeBlocks","stateMutability":"nonpayable","inputs":[
		{"name":"firstBlock","type":"uint64"},{"name":"lastBlock","type":"uint64"},{"name":"data","type":"bytes"}],"outputs":[]}
]`

var (
	parsed    abi.ABI
	parseErr  error
	parseOnce sync.Once
)

// ABI returns the parsed settlement contract ABI.
func ABI() (abi.ABI, error) {
	parseOnce.Do(func() {
		parsed, parseErr = abi.JSON(strings.NewReader(settlementABI))
	})
	return parsed, parseErr
}

// Method returns the settlement contract method settling operations of the given action.
func Method(action core.ActionType) (string, error) {
	switch action {
	case core.Commit:
		return "commitBlocks", nil
	case core.Verify:
		return "proveBlocks", nil
	case core.Execute:
		return "executeBlocks", nil
	default:
		return "", fmt.Errorf("no settlement method for action %s", action)
	}
}

// Encode returns the calldata settling op on L1.
func Encode(op *core.AggregatedOperation) ([]byte, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	method, err := Method(op.Action)
	if err != nil {
		return nil, err
	}
	contractABI, err := ABI()
	if err != nil {
		return nil, err
	}

	data := op.Data
	if data == nil {
		data = []byte{}
	}
	calldata, err := contractABI.Pack(method, op.Range.First, op.Range.Last, data)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return calldata, nil
}
