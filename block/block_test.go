package block

import (
	"testing"
	"time"

	"github.com/mezonai/powchain/hasher"
	"github.com/mezonai/powchain/jsonx"
	"github.com/mezonai/powchain/mempool"
	"github.com/mezonai/powchain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeader(t *testing.T) {
	now := time.Unix(1700000000, 0)
	h := NewHeader(now, hasher.GenesisSentinel, 3)

	assert.Equal(t, int64(1700000000), h.Timestamp)
	assert.Equal(t, uint64(0), h.Nonce)
	assert.Equal(t, hasher.GenesisSentinel, h.PreviousHash)
	assert.Empty(t, h.MerkleRoot)
	assert.Equal(t, uint32(3), h.Difficulty)
}

func TestHeaderEncodingFieldOrder(t *testing.T) {
	h := BlockHeader{Timestamp: 1, Nonce: 2, PreviousHash: "p", MerkleRoot: "m", Difficulty: 3}
	b, err := jsonx.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"timestamp":1,"nonce":2,"previous_hash":"p","merkle_root":"m","difficulty":3}`, string(b))
	assert.Equal(t, hasher.SumBytes(b), h.Hash())
}

func TestHeaderHashCoversNonce(t *testing.T) {
	h := BlockHeader{Timestamp: 1, PreviousHash: "p", MerkleRoot: "m", Difficulty: 1}
	before := h.Hash()
	h.Nonce++
	assert.NotEqual(t, before, h.Hash())
}

func TestAssembleTransactionsRewardFirst(t *testing.T) {
	mp := mempool.NewMempool()
	mp.Submit("A", "B", 5)
	mp.Submit("C", "D", 6)

	txs := AssembleTransactions(mp, "M", 10)

	require.Len(t, txs, 3)
	assert.Equal(t, transaction.NewReward("M", 10), txs[0])
	assert.Equal(t, transaction.New("A", "B", 5), txs[1])
	assert.Equal(t, transaction.New("C", "D", 6), txs[2])
	assert.Equal(t, 0, mp.Len())
}

func TestAssembleTransactionsEmptyPool(t *testing.T) {
	txs := AssembleTransactions(mempool.NewMempool(), "M", 12.5)
	assert.Equal(t, []transaction.Transaction{transaction.NewReward("M", 12.5)}, txs)
}

func TestSealCountsTransactions(t *testing.T) {
	txs := make([]transaction.Transaction, 7)
	b := Seal(BlockHeader{}, txs)
	// 7 has three set bits; the count must be the length, not a popcount
	assert.Equal(t, uint32(7), b.TransactionCount)
	assert.Equal(t, uint32(len(b.Transactions)), b.TransactionCount)
}

func TestCloneIsDeep(t *testing.T) {
	b := Seal(BlockHeader{Nonce: 9}, []transaction.Transaction{transaction.New("A", "B", 1)})
	c := b.Clone()
	c.Transactions[0].Amount = 50
	c.Header.Nonce = 1

	assert.Equal(t, float64(1), b.Transactions[0].Amount)
	assert.Equal(t, uint64(9), b.Header.Nonce)
	assert.Equal(t, b.Hash(), Seal(BlockHeader{Nonce: 9}, nil).Hash())
}
