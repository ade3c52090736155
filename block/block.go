package block

import (
	"time"

	"github.com/mezonai/powchain/hasher"
	"github.com/mezonai/powchain/transaction"
)

// BlockHeader is the hashed, chain-linking part of a block. Field order and JSON names
// are part of the canonical encoding.
type BlockHeader struct {
	Timestamp    int64  `json:"timestamp"`     // Unix seconds at assembly
	Nonce        uint64 `json:"nonce"`         // Set by the proof-of-work search only
	PreviousHash string `json:"previous_hash"` // Hash of the previous header, or the genesis sentinel
	MerkleRoot   string `json:"merkle_root"`   // Commitment to Transactions
	Difficulty   uint32 `json:"difficulty"`    // Length of the hash prefix examined by the search
}

type Block struct {
	Header           BlockHeader               `json:"block_header"`
	TransactionCount uint32                    `json:"transaction_count"`
	Transactions     []transaction.Transaction `json:"transactions"`
}

// Pool is the source of pending transactions for a new block.
type Pool interface {
	Drain() []transaction.Transaction
}

// NewHeader starts a header with nonce 0 and an empty merkle root.
func NewHeader(now time.Time, previousHash string, difficulty uint32) BlockHeader {
	return BlockHeader{
		Timestamp:    now.Unix(),
		Nonce:        0,
		PreviousHash: previousHash,
		MerkleRoot:   "",
		Difficulty:   difficulty,
	}
}

// Hash returns the canonical digest of the header.
func (h BlockHeader) Hash() string {
	return hasher.MustSum(h)
}

// AssembleTransactions builds the finalized transaction list of a new block: the reward
// first, then everything pending in pool in its existing order. The pool is empty afterwards.
func AssembleTransactions(pool Pool, minerAddress string, reward float64) []transaction.Transaction {
	pending := pool.Drain()
	txs := make([]transaction.Transaction, 0, len(pending)+1)
	txs = append(txs, transaction.NewReward(minerAddress, reward))
	return append(txs, pending...)
}

// Seal binds a mined header to its transactions.
func Seal(header BlockHeader, txs []transaction.Transaction) *Block {
	return &Block{
		Header:           header,
		TransactionCount: uint32(len(txs)),
		Transactions:     txs,
	}
}

func (b *Block) Hash() string {
	return b.Header.Hash()
}

// Clone returns a deep copy that shares no memory with b.
func (b *Block) Clone() *Block {
	txs := make([]transaction.Transaction, len(b.Transactions))
	copy(txs, b.Transactions)
	return &Block{
		Header:           b.Header,
		TransactionCount: b.TransactionCount,
		Transactions:     txs,
	}
}
