package config

import (
	"os"
	"time"

	"github.com/mezonai/powchain/logx"
	"github.com/mezonai/powchain/merkle"
	"github.com/mezonai/powchain/pow"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadLedgerConfig reads and parses chain.yml on top of DefaultLedgerConfig
func LoadLedgerConfig(path string) (*LedgerConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open ledger config %s", path)
	}
	defer file.Close()

	cfgFile := ConfigFile{Config: DefaultLedgerConfig()}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, errors.Wrap(err, "failed to decode ledger config")
	}
	logx.Info("CONFIG", "Loaded ledger config: miner=", cfgFile.Config.MinerAddress,
		" difficulty=", cfgFile.Config.Difficulty, " reward=", cfgFile.Config.Reward)
	return &cfgFile.Config, nil
}

func loadSection(path, name string, v interface{}) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}
	if err := cfg.Section(name).MapTo(v); err != nil {
		return errors.Wrapf(err, "failed to map section [%s]", name)
	}
	return nil
}

// LoadMiningConfig reads the [mining] section from an .ini file
func LoadMiningConfig(path string) (*MiningConfig, error) {
	miningCfg := &MiningConfig{}
	if err := loadSection(path, "mining", miningCfg); err != nil {
		return nil, err
	}
	if _, err := miningCfg.Rule(); err != nil {
		return nil, err
	}
	return miningCfg, nil
}

func LoadMerkleConfig(path string) (*MerkleConfig, error) {
	merkleCfg := &MerkleConfig{}
	if err := loadSection(path, "merkle", merkleCfg); err != nil {
		return nil, err
	}
	if _, err := merkleCfg.PairingOrder(); err != nil {
		return nil, err
	}
	return merkleCfg, nil
}

func LoadMetricsConfig(path string) (*MetricsConfig, error) {
	metricsCfg := &MetricsConfig{}
	if err := loadSection(path, "metrics", metricsCfg); err != nil {
		return nil, err
	}
	return metricsCfg, nil
}

func (c *MiningConfig) Rule() (pow.Rule, error) {
	return pow.ParseRule(c.AcceptRule)
}

// Timeout is zero when mining has no deadline.
func (c *MiningConfig) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c *MerkleConfig) PairingOrder() (merkle.Pairing, error) {
	return merkle.ParsePairing(c.Pairing)
}
