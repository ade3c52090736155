package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/mezonai/powchain/logx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MiningFailureReason string

var (
	MiningCancelled         MiningFailureReason = "cancelled"
	MiningNonceExhausted    MiningFailureReason = "nonce_exhausted"
	MiningDifficultyInvalid MiningFailureReason = "difficulty_invalid"
	MiningEncodingFailed    MiningFailureReason = "encoding_failed"
	MiningFailureUnknown    MiningFailureReason = "other"
)

type ledgerPromMetrics struct {
	upUnixSeconds  prometheus.Gauge
	blockHeight    prometheus.Gauge
	mempoolSize    prometheus.Gauge
	difficulty     prometheus.Gauge
	blocksMined    prometheus.Counter
	submittedTx    prometheus.Counter
	txInBlock      prometheus.Histogram
	powAttempts    prometheus.Histogram
	miningDuration prometheus.Histogram
	miningFailures *prometheus.CounterVec
	panicCount     prometheus.Counter
}

func newLedgerPromMetrics() *ledgerPromMetrics {
	return &ledgerPromMetrics{
		upUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powchain_up_timestamp_unix_seconds",
				Help: "Unix timestamp of process start",
			},
		),
		blockHeight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powchain_block_height",
				Help: "Height of the last sealed block",
			},
		),
		mempoolSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powchain_mempool_size",
				Help: "Transactions waiting to be sealed",
			},
		),
		difficulty: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powchain_difficulty",
				Help: "Difficulty applied to the next mined block",
			},
		),
		blocksMined: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_blocks_mined_total",
				Help: "The total number of sealed blocks, genesis included",
			},
		),
		submittedTx: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_submitted_tx_total",
				Help: "The total number of submitted transactions",
			},
		),
		txInBlock: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "powchain_tx_in_block",
				Help: "Number of tx in block, reward included",
			},
		),
		powAttempts: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "powchain_pow_attempts",
				Help:    "Header hashes computed before a nonce was accepted",
				Buckets: prometheus.ExponentialBuckets(1, 16, 8),
			},
		),
		miningDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "powchain_block_mining_seconds",
				Help: "Duration in second of the proof-of-work search for one block",
			},
		),
		miningFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "powchain_mining_failures_total",
				Help: "The total number of mining calls that sealed no block",
			},
			[]string{"reason"},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powchain_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var (
	initOnce      sync.Once
	ledgerMetrics *ledgerPromMetrics
)

// InitMetrics registers the collectors with the default registry. Until it is called every
// recording function is a no-op, which keeps library users and tests free of global state.
func InitMetrics() {
	initOnce.Do(func() {
		ledgerMetrics = newLedgerPromMetrics()
		ledgerMetrics.upUnixSeconds.SetToCurrentTime()
	})
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("METRICS", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func SetBlockHeight(blockHeight uint64) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.blockHeight.Set(float64(blockHeight))
}

func SetMempoolSize(size int) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.mempoolSize.Set(float64(size))
}

func SetDifficulty(difficulty uint32) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.difficulty.Set(float64(difficulty))
}

func IncreaseSubmittedTxCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.submittedTx.Inc()
}

// RecordBlockMined records one sealed block and the search that produced it.
func RecordBlockMined(txCount int, attempts uint64, duration time.Duration) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.blocksMined.Inc()
	ledgerMetrics.txInBlock.Observe(float64(txCount))
	ledgerMetrics.powAttempts.Observe(float64(attempts))
	ledgerMetrics.miningDuration.Observe(duration.Seconds())
}

func RecordMiningFailure(reason MiningFailureReason) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.miningFailures.With(prometheus.Labels{
		"reason": string(reason),
	}).Inc()
}

func IncreasePanicCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.panicCount.Inc()
}
