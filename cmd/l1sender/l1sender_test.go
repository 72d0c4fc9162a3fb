package main_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	l1sender "github.com/NethermindEth/l1sender/cmd/l1sender"
	"github.com/NethermindEth/l1sender/gasprice"
	"github.com/NethermindEth/l1sender/node"
	"github.com/NethermindEth/l1sender/sender"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyNode struct {
	sync.RWMutex
	cfg   *node.Config
	calls []string
}

func newSpyNode(cfg *node.Config, _ string) (l1sender.Node, error) {
	return &spyNode{cfg: cfg}, nil
}

func (s *spyNode) Run(context.Context) {
	s.Lock()
	s.calls = append(s.calls, "run")
	s.Unlock()
}

func (s *spyNode) Config() node.Config {
	return *s.cfg
}

func TestNewCmd(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	contract := common.HexToAddress("0x32400084C286CF3E17e7B677ea9583e60a000324")
	defaultConfig := func() *node.Config {
		return &node.Config{
			LogLevel:     utils.INFO,
			Colour:       true,
			DatabasePath: filepath.Join(dataHome, "l1sender"),
			GasLimit:     4_000_000,
			Sender: sender.Config{
				Enabled:            true,
				MaxTxsInFlight:     16,
				ExpectedWaitBlocks: 30,
				WaitConfirmations:  1,
				TxPollPeriod:       3 * time.Second,
			},
			GasPrice: gasprice.Config{
				DefaultLimit:   100_000_000_000,
				SampleInterval: 15 * time.Second,
				UpdateInterval: 15 * time.Minute,
				ScaleFactor:    1.5,
			},
			MetricsHost: "localhost",
			MetricsPort: 9090,
			PprofHost:   "localhost",
			PprofPort:   6062,
		}
	}

	t.Run("runs the node with defaults", func(t *testing.T) {
		cmd := l1sender.NewCmd(newSpyNode)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.ExecuteContext(context.Background()))

		n, ok := l1sender.L1Sender.(*spyNode)
		require.True(t, ok)
		assert.Equal(t, []string{"run"}, n.calls)
		assert.Equal(t, *defaultConfig(), n.Config())
	})

	t.Run("config precedence", func(t *testing.T) {
		// Precedence is provided by viper, so only a few combinations are checked to make
		// sure the sources are wired in the right order.
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(`log-level: debug
colour: false
contract-address: "0x32400084C286CF3E17e7B677ea9583e60a000324"
max-txs-in-flight: 4
tx-poll-period: 10s
gas-price-scale-factor: 2
metrics: true
metrics-port: 9191
`), 0o600))

		tests := map[string]struct {
			args     []string
			env      map[string]string
			expected func(cfg *node.Config)
		}{
			"flags only": {
				args: []string{"--log-level", "warn", "--sender-enabled=false", "--eth-node", "http://localhost:8545"},
				expected: func(cfg *node.Config) {
					cfg.LogLevel = utils.WARN
					cfg.Sender.Enabled = false
					cfg.EthNode = "http://localhost:8545"
				},
			},
			"config file only": {
				args: []string{"--config", configFile},
				expected: func(cfg *node.Config) {
					cfg.LogLevel = utils.DEBUG
					cfg.Colour = false
					cfg.ContractAddress = contract
					cfg.Sender.MaxTxsInFlight = 4
					cfg.Sender.TxPollPeriod = 10 * time.Second
					cfg.GasPrice.ScaleFactor = 2
					cfg.Metrics = true
					cfg.MetricsPort = 9191
				},
			},
			"flags override config file": {
				args: []string{"--config", configFile, "--max-txs-in-flight", "6", "--tx-poll-period", "1m"},
				expected: func(cfg *node.Config) {
					cfg.LogLevel = utils.DEBUG
					cfg.Colour = false
					cfg.ContractAddress = contract
					cfg.Sender.MaxTxsInFlight = 6
					cfg.Sender.TxPollPeriod = time.Minute
					cfg.GasPrice.ScaleFactor = 2
					cfg.Metrics = true
					cfg.MetricsPort = 9191
				},
			},
			"environment overrides config file": {
				args: []string{"--config", configFile},
				env: map[string]string{
					"L1SENDER_MAX_TXS_IN_FLIGHT":       "8",
					"L1SENDER_GAS_PRICE_DEFAULT_LIMIT": "5",
				},
				expected: func(cfg *node.Config) {
					cfg.LogLevel = utils.DEBUG
					cfg.Colour = false
					cfg.ContractAddress = contract
					cfg.Sender.MaxTxsInFlight = 8
					cfg.Sender.TxPollPeriod = 10 * time.Second
					cfg.GasPrice.ScaleFactor = 2
					cfg.GasPrice.DefaultLimit = 5
					cfg.Metrics = true
					cfg.MetricsPort = 9191
				},
			},
			"flags override environment": {
				args: []string{"--wait-confirmations", "12"},
				env:  map[string]string{"L1SENDER_WAIT_CONFIRMATIONS": "3"},
				expected: func(cfg *node.Config) {
					cfg.Sender.WaitConfirmations = 12
				},
			},
		}

		for name, test := range tests {
			t.Run(name, func(t *testing.T) {
				for key, value := range test.env {
					t.Setenv(key, value)
				}

				cmd := l1sender.NewCmd(newSpyNode)
				cmd.SetArgs(test.args)
				require.NoError(t, cmd.ExecuteContext(context.Background()))

				expected := defaultConfig()
				test.expected(expected)
				assert.Equal(t, *expected, l1sender.L1Sender.Config())
			})
		}
	})

	t.Run("invalid contract address", func(t *testing.T) {
		cmd := l1sender.NewCmd(newSpyNode)
		cmd.SetArgs([]string{"--contract-address", "0x1234"})
		require.ErrorContains(t, cmd.ExecuteContext(context.Background()), "invalid L1 address")
	})

	t.Run("missing config file", func(t *testing.T) {
		cmd := l1sender.NewCmd(newSpyNode)
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
		require.Error(t, cmd.ExecuteContext(context.Background()))
	})
}
