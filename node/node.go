package node

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/db/pebble"
	"github.com/NethermindEth/l1sender/gasprice"
	"github.com/NethermindEth/l1sender/l1"
	"github.com/NethermindEth/l1sender/metrics"
	"github.com/NethermindEth/l1sender/sender"
	"github.com/NethermindEth/l1sender/service"
	"github.com/NethermindEth/l1sender/storage"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/NethermindEth/l1sender/validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
)

// OperatorKeyEnv names the environment variable which, when set, takes precedence over the
// configured operator key.
const OperatorKeyEnv = "OPERATOR_PRIVATE_KEY"

const metricsNamespace = "l1sender"

var (
	ErrMissingEthNode     = errors.New("eth-node is required when the sender is enabled")
	ErrMissingContract    = errors.New("contract-address is required when the sender is enabled")
	ErrMissingOperatorKey = errors.New("operator key is required when the sender is enabled (set " +
		OperatorKeyEnv + " or operator-private-key)")
)

// Config is the top-level l1sender configuration.
type Config struct {
	LogLevel     utils.LogLevel `mapstructure:"log-level"`
	Colour       bool           `mapstructure:"colour"`
	DatabasePath string         `mapstructure:"db-path" validate:"required"`

	EthNode            string         `mapstructure:"eth-node" validate:"omitempty,url"`
	ContractAddress    common.Address `mapstructure:"contract-address"`
	OperatorPrivateKey string         `mapstructure:"operator-private-key" validate:"omitempty,private_key"`
	// GasLimit is the gas limit of every settlement transaction.
	GasLimit uint64 `mapstructure:"gas-limit" validate:"gt=0"`

	Sender   sender.Config   `mapstructure:",squash"`
	GasPrice gasprice.Config `mapstructure:",squash"`

	Metrics     bool   `mapstructure:"metrics"`
	MetricsHost string `mapstructure:"metrics-host"`
	MetricsPort uint16 `mapstructure:"metrics-port"`
	Pprof       bool   `mapstructure:"pprof"`
	PprofHost   string `mapstructure:"pprof-host"`
	PprofPort   uint16 `mapstructure:"pprof-port"`
}

type Node struct {
	cfg    *Config
	db     db.DB
	store  *storage.Storage
	sender *sender.Sender

	services []service.Service
	log      *utils.ZapLogger

	version string
}

// New validates the config, opens the database and sets up the enabled services.
func New(cfg *Config, version string) (*Node, error) { //nolint:funlen
	if err := validator.Validator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, err
	}

	dbLog, err := utils.NewZapLogger(utils.ERROR, cfg.Colour)
	if err != nil {
		return nil, fmt.Errorf("create DB logger: %w", err)
	}

	registry := metrics.PrometheusRegistry()
	factory := metrics.NoopFactory()
	if cfg.Metrics {
		factory = metrics.PrometheusFactory(registry, metricsNamespace)
	}

	database, err := pebble.New(cfg.DatabasePath, dbLog)
	if err != nil {
		return nil, fmt.Errorf("open DB: %w", err)
	}
	if cfg.Metrics {
		database = database.WithListener(makeDBMetrics(factory))
	}

	n := &Node{
		cfg:     cfg,
		db:      database,
		log:     log,
		version: version,
	}
	if err = n.setup(registry, factory); err != nil {
		return nil, utils.RunAndWrapOnError(database.Close, err)
	}
	return n, nil
}

func (n *Node) setup(registry *prometheus.Registry, factory metrics.Factory) error {
	var err error
	n.store, err = storage.New(n.db, &core.Parameters{
		GasPriceLimit: *uint256.NewInt(n.cfg.GasPrice.DefaultLimit),
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	var reader sender.Reader
	if n.cfg.Sender.Enabled {
		var chain *l1.EthClient
		chain, err = n.newL1Client(factory)
		if err != nil {
			return err
		}
		n.sender = sender.New(&n.cfg.Sender, &n.cfg.GasPrice, chain, n.store, n.log.Named("sender")).
			WithListener(makeSenderMetrics(factory))
		n.services = append(n.services, n.sender)
		reader = n.sender
	} else {
		n.log.Warnw("Sender is disabled; queued operations will not be sent to L1")
	}

	if n.cfg.Metrics {
		var listener net.Listener
		listener, err = net.Listen("tcp", net.JoinHostPort(n.cfg.MetricsHost, strconv.Itoa(int(n.cfg.MetricsPort))))
		if err != nil {
			return fmt.Errorf("listen on metrics port: %w", err)
		}
		n.services = append(n.services, makeMetrics(listener, registry, NewReadinessHandlers(reader), n.log.Named("http")))
	}
	if n.cfg.Pprof {
		var listener net.Listener
		listener, err = net.Listen("tcp", net.JoinHostPort(n.cfg.PprofHost, strconv.Itoa(int(n.cfg.PprofPort))))
		if err != nil {
			return fmt.Errorf("listen on pprof port: %w", err)
		}
		n.services = append(n.services, makePPROF(listener, n.log.Named("http")))
	}
	return nil
}

func (n *Node) newL1Client(factory metrics.Factory) (*l1.EthClient, error) {
	if n.cfg.EthNode == "" {
		return nil, ErrMissingEthNode
	}
	if err := validator.Validator().Var(n.cfg.ContractAddress, "l1_address"); err != nil {
		return nil, ErrMissingContract
	}
	key, err := operatorKey(n.cfg)
	if err != nil {
		return nil, err
	}

	client, err := l1.Dial(context.Background(), n.cfg.EthNode, n.cfg.ContractAddress, key, n.cfg.GasLimit, n.log.Named("l1"))
	if err != nil {
		return nil, fmt.Errorf("create L1 client: %w", err)
	}
	n.log.Infow("Connected to L1", "operator", client.From(), "contract", n.cfg.ContractAddress)
	return client.WithEventListener(makeL1Metrics(factory)), nil
}

func operatorKey(cfg *Config) (*ecdsa.PrivateKey, error) {
	hexKey := cfg.OperatorPrivateKey
	if envKey, ok := os.LookupEnv(OperatorKeyEnv); ok && envKey != "" {
		hexKey = envKey
	}
	if hexKey == "" {
		return nil, ErrMissingOperatorKey
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse operator key: %w", err)
	}
	return key, nil
}

// Run starts all the services and blocks until ctx is cancelled or one of them fails.
// Run will wait for all services to return before closing the DB.
func (n *Node) Run(ctx context.Context) {
	defer func() {
		if closeErr := n.db.Close(); closeErr != nil {
			n.log.Errorw("Error while closing the DB", "err", closeErr)
		}
	}()

	n.log.Infow("Starting l1sender", "version", n.version, "sender", n.sender != nil)

	ctx, cancel := context.WithCancel(ctx)
	wg := conc.NewWaitGroup()
	for _, s := range n.services {
		wg.Go(func() {
			if err := s.Run(ctx); err != nil {
				n.log.Errorw("Service error", "name", reflect.TypeOf(s), "err", err)
				cancel()
			}
		})
	}
	defer wg.Wait()

	<-ctx.Done()
	cancel()
	n.log.Infow("Shutting down l1sender...")
}

func (n *Node) Config() Config {
	return *n.cfg
}

// Sender returns the sender state, nil when the sender is disabled.
func (n *Node) Sender() sender.Reader {
	if n.sender == nil {
		return nil
	}
	return n.sender
}
