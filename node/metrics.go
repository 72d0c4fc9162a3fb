package node

import (
	"math"
	"time"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/l1"
	"github.com/NethermindEth/l1sender/metrics"
	"github.com/NethermindEth/l1sender/sender"
)

func makeDBMetrics(factory metrics.Factory) db.EventListener {
	latencyBuckets := []float64{
		25,
		50,
		75,
		100,
		250,
		500,
		1000, // 1ms
		2000,
		3000,
		4000,
		5000,
		10000,
		50000,
		500000,
		math.Inf(0),
	}
	readLatencyHistogram := factory.NewHistogram(metrics.Opts{
		Subsystem: "db",
		Name:      "read_latency",
		Buckets:   latencyBuckets,
	})
	writeLatencyHistogram := factory.NewHistogram(metrics.Opts{
		Subsystem: "db",
		Name:      "write_latency",
		Buckets:   latencyBuckets,
	})
	commitLatency := factory.NewHistogram(metrics.Opts{
		Subsystem: "db",
		Name:      "commit_latency",
		Buckets: []float64{
			5000,
			10000,
			20000,
			30000,
			40000,
			50000,
			100000, // 100ms
			200000,
			300000,
			500000,
			1000000,
			math.Inf(0),
		},
	})

	return &db.SelectiveListener{
		OnIOCb: func(write bool, duration time.Duration) {
			if write {
				writeLatencyHistogram.Observe(float64(duration.Microseconds()))
			} else {
				readLatencyHistogram.Observe(float64(duration.Microseconds()))
			}
		},
		OnCommitCb: func(duration time.Duration) {
			commitLatency.Observe(float64(duration.Microseconds()))
		},
	}
}

func makeSenderMetrics(factory metrics.Factory) sender.EventListener {
	tickLatency := factory.NewHistogram(metrics.Opts{
		Subsystem: "sender",
		Name:      "tick_latency",
		Help:      "Duration of a sender tick in milliseconds.",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, math.Inf(0)},
	})
	tickErrors := factory.NewCounter(metrics.Opts{
		Subsystem: "sender",
		Name:      "tick_errors",
		Help:      "Sender ticks that ended with an error.",
	})
	sent := factory.NewCounterVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "sent",
		Help:      "Transactions signed and broadcast.",
	}, []string{"action", "kind"})
	confirmed := factory.NewCounterVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "confirmed",
		Help:      "Operations confirmed on L1.",
	}, []string{"action"})
	lastBlock := factory.NewGaugeVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "last_confirmed_block",
		Help:      "Last block of the most recently confirmed operation.",
	}, []string{"action"})
	failed := factory.NewCounterVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "failed",
		Help:      "Operations whose transaction reverted on L1.",
	}, []string{"action"})
	deferred := factory.NewCounterVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "deferred",
		Help:      "Ticks on which admission of queued operations was deferred.",
	}, []string{"reason"})
	inFlight := factory.NewGauge(metrics.Opts{
		Subsystem: "sender",
		Name:      "in_flight",
		Help:      "Unconfirmed operations.",
	})

	return &sender.SelectiveListener{
		OnTickCb: func(took time.Duration, err error) {
			tickLatency.Observe(float64(took.Milliseconds()))
			if err != nil {
				tickErrors.Inc()
			}
		},
		OnSentCb: func(action core.ActionType, resubmission bool) {
			kind := "new"
			if resubmission {
				kind = "resubmission"
			}
			sent.WithLabelValues(action.String(), kind).Inc()
		},
		OnConfirmedCb: func(action core.ActionType, last uint64) {
			confirmed.WithLabelValues(action.String()).Inc()
			lastBlock.WithLabelValues(action.String()).Set(float64(last))
		},
		OnFailedCb: func(action core.ActionType) {
			failed.WithLabelValues(action.String()).Inc()
		},
		OnDeferredCb: func(reason string) {
			deferred.WithLabelValues(reason).Inc()
		},
		OnInFlightCb: func(count int) {
			inFlight.Set(float64(count))
		},
	}
}

func makeL1Metrics(factory metrics.Factory) l1.EventListener {
	requests := factory.NewCounterVec(metrics.Opts{
		Subsystem: "l1",
		Name:      "requests",
		Help:      "Requests made to the Ethereum node.",
	}, []string{"method"})
	failedRequests := factory.NewCounterVec(metrics.Opts{
		Subsystem: "l1",
		Name:      "failed_requests",
		Help:      "Requests to the Ethereum node that returned an error.",
	}, []string{"method"})
	latency := factory.NewHistogramVec(metrics.Opts{
		Subsystem: "l1",
		Name:      "request_latency",
		Help:      "Latency of requests to the Ethereum node in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, math.Inf(0)},
	}, []string{"method"})

	return l1.SelectiveListener{
		OnL1CallCb: func(method string, took time.Duration, err error) {
			requests.WithLabelValues(method).Inc()
			latency.WithLabelValues(method).Observe(float64(took.Milliseconds()))
			if err != nil {
				failedRequests.WithLabelValues(method).Inc()
			}
		},
	}
}
