package gasprice

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/NethermindEth/l1sender/utils"
	"github.com/holiman/uint256"
)

const (
	// Resubmissions pay at least this many percent of the previous price.
	escalationPercent = 115
	samplesCapacity   = 64
)

type Config struct {
	// DefaultLimit is the lowest gas price ceiling, in wei.
	DefaultLimit   uint64        `mapstructure:"gas-price-default-limit" validate:"gt=0"`
	SampleInterval time.Duration `mapstructure:"gas-price-sample-interval" validate:"gt=0"`
	UpdateInterval time.Duration `mapstructure:"gas-price-update-interval" validate:"gtefield=SampleInterval"`
	// ScaleFactor is applied to the average sampled price to obtain the ceiling.
	ScaleFactor float64 `mapstructure:"gas-price-scale-factor" validate:"gt=0"`
}

type NetworkPricer interface {
	GasPrice(ctx context.Context) (uint256.Int, error)
}

type ParamsStore interface {
	UpdateGasPriceParams(limit, average uint256.Int) error
}

// Adjuster decides the gas price of submitted transactions and keeps the price ceiling in
// line with the prices observed on the network.
type Adjuster struct {
	mu         sync.Mutex
	cfg        Config
	limit      uint256.Int
	stats      *Statistics
	now        func() time.Time
	lastSample time.Time
	lastUpdate time.Time
	log        utils.SimpleLogger
}

// New returns an Adjuster starting with the given ceiling, raised to the configured default
// if lower.
func New(cfg *Config, limit uint256.Int, log utils.SimpleLogger) *Adjuster {
	a := &Adjuster{
		cfg:   *cfg,
		stats: NewStatistics(samplesCapacity),
		now:   time.Now,
		log:   log,
	}
	a.limit = a.atLeastDefault(limit)
	a.lastUpdate = a.now()
	return a
}

// WithClock replaces the clock used to schedule sampling and ceiling updates.
func (a *Adjuster) WithClock(now func() time.Time) *Adjuster {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = now
	a.lastUpdate = now()
	return a
}

func (a *Adjuster) Limit() uint256.Int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limit
}

// GasPrice returns the price of the next submission. Without a previous price it is the
// network price; otherwise the previous price is escalated and the network price is used if
// higher. The result never exceeds the ceiling, except that a resubmission never pays less
// than its previous attempt: a previous price above a ceiling lowered since is returned
// unchanged, so the result can exceed the current limit.
func (a *Adjuster) GasPrice(previous *uint256.Int, network uint256.Int) uint256.Int {
	a.mu.Lock()
	limit := a.limit
	a.mu.Unlock()

	if previous == nil {
		if network.Gt(&limit) {
			return limit
		}
		return network
	}

	var price uint256.Int
	price.Mul(previous, uint256.NewInt(escalationPercent))
	price.Div(&price, uint256.NewInt(100))
	if bumped := new(uint256.Int).AddUint64(previous, 1); bumped.Gt(&price) {
		price = *bumped
	}
	if network.Gt(&price) {
		price = network
	}
	if price.Gt(&limit) {
		price = limit
	}
	if previous.Gt(&price) {
		price = *previous
	}
	return price
}

// KeepUpdated samples the network price once the sample interval has elapsed and, once the
// update interval has elapsed, derives the ceiling from the average sample and persists it.
func (a *Adjuster) KeepUpdated(ctx context.Context, pricer NetworkPricer, store ParamsStore) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.lastSample.IsZero() || now.Sub(a.lastSample) >= a.cfg.SampleInterval {
		price, err := pricer.GasPrice(ctx)
		if err != nil {
			return fmt.Errorf("sample gas price: %w", err)
		}
		a.stats.Add(price)
		a.lastSample = now
	}

	if now.Sub(a.lastUpdate) < a.cfg.UpdateInterval {
		return nil
	}
	average, ok := a.stats.Average()
	if !ok {
		return nil
	}

	limit := a.atLeastDefault(a.scale(average))
	if err := store.UpdateGasPriceParams(limit, average); err != nil {
		return fmt.Errorf("update gas price limit: %w", err)
	}
	a.limit = limit
	a.lastUpdate = now
	a.log.Debugw("Updated gas price limit", "limit", limit.Dec(), "average", average.Dec())
	return nil
}

func (a *Adjuster) scale(price uint256.Int) uint256.Int {
	perMille := uint64(math.Round(a.cfg.ScaleFactor * 1000))
	var scaled uint256.Int
	if _, overflow := scaled.MulOverflow(&price, uint256.NewInt(perMille)); overflow {
		return *new(uint256.Int).SetAllOne()
	}
	return *scaled.Div(&scaled, uint256.NewInt(1000))
}

func (a *Adjuster) atLeastDefault(limit uint256.Int) uint256.Int {
	if def := uint256.NewInt(a.cfg.DefaultLimit); def.Gt(&limit) {
		return *def
	}
	return limit
}
