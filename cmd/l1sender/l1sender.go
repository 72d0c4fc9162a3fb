package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/NethermindEth/l1sender/node"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF             = "config"
	logLevelF           = "log-level"
	colourF             = "colour"
	dbPathF             = "db-path"
	ethNodeF            = "eth-node"
	contractAddressF    = "contract-address"
	operatorKeyF        = "operator-private-key"
	gasLimitF           = "gas-limit"
	senderEnabledF      = "sender-enabled"
	maxTxsInFlightF     = "max-txs-in-flight"
	expectedWaitBlocksF = "expected-wait-blocks"
	waitConfirmationsF  = "wait-confirmations"
	txPollPeriodF       = "tx-poll-period"
	haltOnFailureF      = "halt-on-failure"
	gasPriceLimitF      = "gas-price-default-limit"
	gasSampleIntervalF  = "gas-price-sample-interval"
	gasUpdateIntervalF  = "gas-price-update-interval"
	gasScaleFactorF     = "gas-price-scale-factor"
	metricsF            = "metrics"
	metricsHostF        = "metrics-host"
	metricsPortF        = "metrics-port"
	pprofF              = "pprof"
	pprofHostF          = "pprof-host"
	pprofPortF          = "pprof-port"

	defaultConfig             = ""
	defaultColour             = true
	defaultEthNode            = ""
	defaultContractAddress    = ""
	defaultOperatorKey        = ""
	defaultGasLimit           = uint64(4_000_000)
	defaultSenderEnabled      = true
	defaultMaxTxsInFlight     = uint64(16)
	defaultExpectedWaitBlocks = uint64(30)
	defaultWaitConfirmations  = uint64(1)
	defaultTxPollPeriod       = 3 * time.Second
	defaultHaltOnFailure      = false
	defaultGasPriceLimit      = uint64(100_000_000_000) // 100 gwei
	defaultGasSampleInterval  = 15 * time.Second
	defaultGasUpdateInterval  = 15 * time.Minute
	defaultGasScaleFactor     = 1.5
	defaultMetrics            = false
	defaultMetricsHost        = "localhost"
	defaultMetricsPort        = uint16(9090)
	defaultPprof              = false
	defaultPprofHost          = "localhost"
	defaultPprofPort          = uint16(6062)

	configFlagUsage   = "The YAML configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	colourUsage       = "Use `--colour=false` command to disable colourized outputs (ANSI Escape Codes)."
	dbPathUsage       = "Location of the database files."
	ethNodeUsage      = "The Ethereum endpoint transactions are sent to."
	contractUsage     = "Address of the rollup settlement contract on L1."
	operatorKeyUsage  = "Hex encoded private key of the operator account. The " + node.OperatorKeyEnv +
		" environment variable takes precedence."
	gasLimitUsage           = "Gas limit of every settlement transaction."
	senderEnabledUsage      = "Enables sending queued operations to L1."
	maxTxsInFlightUsage     = "Maximum number of unconfirmed operations."
	expectedWaitBlocksUsage = "Number of L1 blocks a transaction may stay unmined before it is resubmitted " +
		"at a higher gas price."
	waitConfirmationsUsage = "Number of L1 blocks mined on top of a transaction before its outcome is final."
	txPollPeriodUsage      = "Interval between two sender ticks."
	haltOnFailureUsage     = "Stop admitting new operations once a transaction reverts."
	gasPriceLimitUsage     = "Lowest gas price ceiling, in wei."
	gasSampleIntervalUsage = "Interval between two network gas price samples."
	gasUpdateIntervalUsage = "Interval between two gas price ceiling updates."
	gasScaleFactorUsage    = "Factor applied to the average sampled gas price to obtain the ceiling."
	metricsUsage           = "Enables the Prometheus metrics endpoint and the health endpoints."
	metricsHostUsage       = "The interface on which the metrics server will listen for requests."
	metricsPortUsage       = "The port on which the metrics server will listen for requests."
	pprofUsage             = "Enables the pprof endpoint on the default port."
	pprofHostUsage         = "The interface on which the pprof HTTP server will listen for requests."
	pprofPortUsage         = "The port on which the pprof HTTP server will listen for requests."
)

// Node is the part of node.Node the command drives.
type Node interface {
	Run(ctx context.Context)
	Config() node.Config
}

type NewNodeFn func(cfg *node.Config, version string) (Node, error)

func newNode(cfg *node.Config, version string) (Node, error) {
	n, err := node.New(cfg, version)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// L1Sender is the node created by the last execution of the root command.
var L1Sender Node

func NewCmd(newNodeFn NewNodeFn) *cobra.Command {
	var cfgFile string
	defaultDBPath := defaultDataDir()

	cmd := &cobra.Command{
		Use:     "l1sender [flags]",
		Short:   "Sends aggregated rollup operations to the L1 settlement contract.",
		Version: Version,
	}

	defaultLogLevel := utils.INFO
	cmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	cmd.Flags().Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	cmd.Flags().Bool(colourF, defaultColour, colourUsage)
	cmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	cmd.Flags().String(ethNodeF, defaultEthNode, ethNodeUsage)
	cmd.Flags().String(contractAddressF, defaultContractAddress, contractUsage)
	cmd.Flags().String(operatorKeyF, defaultOperatorKey, operatorKeyUsage)
	cmd.Flags().Uint64(gasLimitF, defaultGasLimit, gasLimitUsage)
	cmd.Flags().Bool(senderEnabledF, defaultSenderEnabled, senderEnabledUsage)
	cmd.Flags().Uint64(maxTxsInFlightF, defaultMaxTxsInFlight, maxTxsInFlightUsage)
	cmd.Flags().Uint64(expectedWaitBlocksF, defaultExpectedWaitBlocks, expectedWaitBlocksUsage)
	cmd.Flags().Uint64(waitConfirmationsF, defaultWaitConfirmations, waitConfirmationsUsage)
	cmd.Flags().Duration(txPollPeriodF, defaultTxPollPeriod, txPollPeriodUsage)
	cmd.Flags().Bool(haltOnFailureF, defaultHaltOnFailure, haltOnFailureUsage)
	cmd.Flags().Uint64(gasPriceLimitF, defaultGasPriceLimit, gasPriceLimitUsage)
	cmd.Flags().Duration(gasSampleIntervalF, defaultGasSampleInterval, gasSampleIntervalUsage)
	cmd.Flags().Duration(gasUpdateIntervalF, defaultGasUpdateInterval, gasUpdateIntervalUsage)
	cmd.Flags().Float64(gasScaleFactorF, defaultGasScaleFactor, gasScaleFactorUsage)
	cmd.Flags().Bool(metricsF, defaultMetrics, metricsUsage)
	cmd.Flags().String(metricsHostF, defaultMetricsHost, metricsHostUsage)
	cmd.Flags().Uint16(metricsPortF, defaultMetricsPort, metricsPortUsage)
	cmd.Flags().Bool(pprofF, defaultPprof, pprofUsage)
	cmd.Flags().String(pprofHostF, defaultPprofHost, pprofHostUsage)
	cmd.Flags().Uint16(pprofPortF, defaultPprofPort, pprofPortUsage)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, cfgFile)
		if err != nil {
			return err
		}

		L1Sender, err = newNodeFn(cfg, Version)
		if err != nil {
			return err
		}

		L1Sender.Run(cmd.Context())
		return nil
	}

	cmd.AddCommand(StatusCmd(defaultDBPath), EnqueueCmd(defaultDBPath))
	return cmd
}

// loadConfig merges, from lowest to highest precedence, the flag defaults, the config file,
// L1SENDER_ prefixed environment variables and the flags set on the command line.
func loadConfig(cmd *cobra.Command, cfgFile string) (*node.Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("L1SENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := new(node.Config)
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		addressDecodeHook,
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// addressDecodeHook decodes an L1 address, leaving it zero when the string is empty.
func addressDecodeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(common.Address{}) {
		return data, nil
	}

	s, ok := data.(string)
	if !ok || s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return nil, fmt.Errorf("invalid L1 address %q", s)
	}
	return common.HexToAddress(s), nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "l1sender")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "l1sender"
	}
	return filepath.Join(home, ".local", "share", "l1sender")
}
