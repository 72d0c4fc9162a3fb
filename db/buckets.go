package db

import (
	"encoding/binary"
	"slices"
)

type Bucket byte

// Pebble does not support buckets to differentiate between groups of
// keys like Bolt or MDBX does. We use a global prefix list as a poor
// man's bucket alternative.
const (
	Parameters            Bucket = iota // sender parameters: nonce, gas price limit, progress
	PendingOperations                   // QueueID -> AggregatedOperation
	NextQueueID                         // id of the next queued aggregated operation
	Operations                          // OperationID -> Operation
	UnconfirmedOperations               // OperationID -> nil, index of unconfirmed operations
	OperationsByLastBlock               // ActionType + last block -> OperationID
	NextOperationID                     // id of the next tracked operation
	SchemaVersion
)

// Key flattens a prefix and series of byte arrays into a single []byte.
func (b Bucket) Key(key ...[]byte) []byte {
	return append([]byte{byte(b)}, slices.Concat(key...)...)
}

// Uint64Key returns the key for the given uint64 in this bucket. Keys are big endian so that
// iteration follows numeric order.
func (b Bucket) Uint64Key(n uint64) []byte {
	return b.Key(binary.BigEndian.AppendUint64(nil, n))
}

func (b Bucket) String() string {
	switch b {
	case Parameters:
		return "Parameters"
	case PendingOperations:
		return "PendingOperations"
	case NextQueueID:
		return "NextQueueID"
	case Operations:
		return "Operations"
	case UnconfirmedOperations:
		return "UnconfirmedOperations"
	case OperationsByLastBlock:
		return "OperationsByLastBlock"
	case NextOperationID:
		return "NextOperationID"
	case SchemaVersion:
		return "SchemaVersion"
	default:
		return "Unknown"
	}
}
