package cmd

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/mezonai/powchain/config"
	"github.com/mezonai/powchain/exception"
	"github.com/mezonai/powchain/ledger"
	"github.com/mezonai/powchain/logx"
	"github.com/mezonai/powchain/monitoring"
	"github.com/spf13/cobra"
)

const (
	defaultChainConfigPath = "config/chain.yml"
	defaultConfigPath      = "config/config.ini"
)

type LedgerFlags struct {
	ChainConfigPath string
	ConfigPath      string
	MinerAddress    string
	Difficulty      uint32
	Reward          float64
	Timeout         time.Duration
	MetricsAddr     string
}

var ledgerFlags LedgerFlags

// loadLedgerConfig reads chain.yml, falling back to the built-in defaults when the file
// does not exist, then applies any flag the user set explicitly.
func loadLedgerConfig(cmd *cobra.Command, f LedgerFlags) (config.LedgerConfig, error) {
	cfg := config.DefaultLedgerConfig()
	loaded, err := config.LoadLedgerConfig(f.ChainConfigPath)
	switch {
	case err == nil:
		cfg = *loaded
	case stderrors.Is(err, fs.ErrNotExist):
		logx.Warn("CMD", "No ledger config at ", f.ChainConfigPath, ", using defaults")
	default:
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("miner") {
		cfg.MinerAddress = f.MinerAddress
	}
	if flags.Changed("difficulty") {
		cfg.Difficulty = f.Difficulty
	}
	if flags.Changed("reward") {
		cfg.Reward = f.Reward
	}
	return cfg, nil
}

// ledgerOptions maps config.ini onto ledger options. A missing file means defaults.
func ledgerOptions(f LedgerFlags) ([]ledger.Option, string, error) {
	var opts []ledger.Option
	metricsAddr := f.MetricsAddr

	mining, err := config.LoadMiningConfig(f.ConfigPath)
	switch {
	case err == nil:
		rule, _ := mining.Rule()
		opts = append(opts, ledger.WithRule(rule), ledger.WithMaxAttempts(mining.MaxAttempts))
		if mining.Timeout() > 0 {
			opts = append(opts, ledger.WithMiningTimeout(mining.Timeout()))
		}

		mk, err := config.LoadMerkleConfig(f.ConfigPath)
		if err != nil {
			return nil, "", err
		}
		pairing, _ := mk.PairingOrder()
		opts = append(opts, ledger.WithPairing(pairing))

		metrics, err := config.LoadMetricsConfig(f.ConfigPath)
		if err != nil {
			return nil, "", err
		}
		if metricsAddr == "" {
			metricsAddr = metrics.ListenAddr
		}
	case stderrors.Is(err, fs.ErrNotExist):
		logx.Warn("CMD", "No mining config at ", f.ConfigPath, ", using defaults")
	default:
		return nil, "", err
	}

	if f.Timeout > 0 {
		opts = append(opts, ledger.WithMiningTimeout(f.Timeout))
	}
	return opts, metricsAddr, nil
}

func buildLedger(cmd *cobra.Command) (*ledger.Ledger, error) {
	cfg, err := loadLedgerConfig(cmd, ledgerFlags)
	if err != nil {
		return nil, fmt.Errorf("load ledger config: %w", err)
	}
	opts, metricsAddr, err := ledgerOptions(ledgerFlags)
	if err != nil {
		return nil, fmt.Errorf("load mining config: %w", err)
	}
	if metricsAddr != "" {
		startMetricsServer(metricsAddr)
	}
	return ledger.NewLedger(cfg, opts...)
}

func startMetricsServer(addr string) {
	monitoring.InitMetrics()
	mux := http.NewServeMux()
	monitoring.RegisterMetrics(mux)
	exception.SafeGo("metrics-server", func() {
		logx.Info("METRICS", "Serving metrics on ", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logx.Error("METRICS", "Metrics server stopped: ", err)
		}
	})
}
