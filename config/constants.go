package config

const (
	DefaultMinerAddress        = "3EhLZarJUNSfV6TWMZY1Nh5mi3FMsdHa5U"
	DefaultDifficulty   uint32 = 2
	DefaultReward              = 12.5
)

// DefaultLedgerConfig is used for every field chain.yml leaves out.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		MinerAddress: DefaultMinerAddress,
		Difficulty:   DefaultDifficulty,
		Reward:       DefaultReward,
	}
}
