package sender

import "time"

type Config struct {
	Enabled bool `mapstructure:"sender-enabled"`
	// MaxTxsInFlight caps the number of unconfirmed operations.
	MaxTxsInFlight uint64 `mapstructure:"max-txs-in-flight" validate:"gt=0"`
	// ExpectedWaitBlocks is the number of blocks a transaction may stay unmined before it is
	// resubmitted at a higher gas price.
	ExpectedWaitBlocks uint64 `mapstructure:"expected-wait-blocks" validate:"gt=0"`
	// WaitConfirmations is the number of blocks mined on top of a transaction before its
	// outcome is final.
	WaitConfirmations uint64        `mapstructure:"wait-confirmations"`
	TxPollPeriod      time.Duration `mapstructure:"tx-poll-period" validate:"gt=0"`
	// HaltOnFailure stops the admission of new operations once a transaction reverts.
	HaltOnFailure bool `mapstructure:"halt-on-failure"`
}
