package config

// LedgerConfig holds the chain settings from chain.yml
type LedgerConfig struct {
	MinerAddress string  `yaml:"miner_address"`
	Difficulty   uint32  `yaml:"difficulty"`
	Reward       float64 `yaml:"reward"`
}

// ConfigFile is the top-level structure for chain.yml
type ConfigFile struct {
	Config LedgerConfig `yaml:"config"`
}

type MiningConfig struct {
	MaxAttempts uint64 `ini:"max_attempts"`
	TimeoutMs   int    `ini:"timeout_ms"`
	AcceptRule  string `ini:"accept_rule"`
}

type MerkleConfig struct {
	Pairing string `ini:"pairing"`
}

type MetricsConfig struct {
	ListenAddr string `ini:"listen_addr"`
}
