package mempool

import (
	"sync"

	"github.com/mezonai/powchain/transaction"
)

// Mempool is an ordered buffer of transactions waiting to be sealed. Insertion order is
// the only order; there is no deduplication or validation.
type Mempool struct {
	mu  sync.Mutex
	txs []transaction.Transaction
}

// NewMempool creates a new, empty mempool.
func NewMempool() *Mempool {
	return &Mempool{
		txs: make([]transaction.Transaction, 0),
	}
}

// Add pushes a transaction onto the end of the mempool.
func (m *Mempool) Add(tx transaction.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
}

// Submit records a transfer. It always succeeds.
func (m *Mempool) Submit(sender, recipient string, amount float64) bool {
	m.Add(transaction.New(sender, recipient, amount))
	return true
}

// Len returns the number of transactions in the mempool.
func (m *Mempool) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs)
}

// List returns a copy of the pending transactions in insertion order.
func (m *Mempool) List() []transaction.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]transaction.Transaction, len(m.txs))
	copy(out, m.txs)
	return out
}

// Drain hands the pending transactions to the caller and leaves the mempool empty.
// The returned slice is owned by the caller; the mempool keeps no reference to it.
func (m *Mempool) Drain() []transaction.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.txs
	m.txs = make([]transaction.Transaction, 0)
	return out
}

// Restore puts txs back at the front of the mempool, ahead of anything submitted since
// they were drained.
func (m *Mempool) Restore(txs []transaction.Transaction) {
	if len(txs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	restored := make([]transaction.Transaction, 0, len(txs)+len(m.txs))
	restored = append(restored, txs...)
	m.txs = append(restored, m.txs...)
}
