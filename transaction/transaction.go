package transaction

import (
	"github.com/mezonai/powchain/hasher"
)

// RewardSender is the sender of a reward transaction; rewards have no real payer.
const RewardSender = ""

// Transaction is an immutable transfer record. It is a value type and is copied freely.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

func New(sender, recipient string, amount float64) Transaction {
	return Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// NewReward credits amount to the miner.
func NewReward(minerAddress string, amount float64) Transaction {
	return New(RewardSender, minerAddress, amount)
}

func (tx Transaction) IsReward() bool {
	return tx.Sender == RewardSender
}

// Hash returns the canonical digest of tx. Non-finite amounts are encoded as null, so every
// Transaction hashes.
func (tx Transaction) Hash() (string, error) {
	return hasher.Sum(tx)
}
