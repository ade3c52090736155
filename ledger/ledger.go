package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/mezonai/powchain/block"
	"github.com/mezonai/powchain/config"
	"github.com/mezonai/powchain/errors"
	"github.com/mezonai/powchain/hasher"
	"github.com/mezonai/powchain/logx"
	"github.com/mezonai/powchain/mem_blockstore"
	"github.com/mezonai/powchain/mempool"
	"github.com/mezonai/powchain/merkle"
	"github.com/mezonai/powchain/monitoring"
	"github.com/mezonai/powchain/pow"
	"github.com/mezonai/powchain/transaction"
)

// Ledger owns an append-only chain of sealed blocks, the pool of transactions waiting for
// the next block, and the settings applied to future mining calls.
//
// A Ledger is exclusively owned by one caller and is not safe for concurrent use.
type Ledger struct {
	store *mem_blockstore.MemBlockStore
	pool  *mempool.Mempool

	minerAddress string
	difficulty   uint32
	reward       float64

	powOpts   pow.Options
	pairing   merkle.Pairing
	timeout   time.Duration
	now       func() time.Time
	totalWork *uint256.Int
}

type Option func(*Ledger)

// WithRule selects the proof-of-work acceptance rule. The default is pow.RuleDecimalZero.
func WithRule(rule pow.Rule) Option {
	return func(l *Ledger) { l.powOpts.Rule = rule }
}

// WithMaxAttempts bounds the number of hashes tried per block.
func WithMaxAttempts(n uint64) Option {
	return func(l *Ledger) { l.powOpts.MaxAttempts = n }
}

// WithMiningTimeout applies a deadline to every MineBlock call, genesis included.
func WithMiningTimeout(d time.Duration) Option {
	return func(l *Ledger) { l.timeout = d }
}

func WithPairing(p merkle.Pairing) Option {
	return func(l *Ledger) { l.pairing = p }
}

// WithClock overrides the source of block timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger stores the settings and synchronously mines the genesis block, which holds
// only the reward transaction.
func NewLedger(cfg config.LedgerConfig, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:        mem_blockstore.NewMemBlockStore(),
		pool:         mempool.NewMempool(),
		minerAddress: cfg.MinerAddress,
		difficulty:   cfg.Difficulty,
		reward:       cfg.Reward,
		pairing:      merkle.LeftToRight,
		now:          time.Now,
		totalWork:    new(uint256.Int),
	}
	for _, opt := range opts {
		opt(l)
	}
	monitoring.SetDifficulty(l.difficulty)

	genesis, err := l.MineBlock(context.Background())
	if err != nil {
		return nil, fmt.Errorf("mine genesis block: %w", err)
	}
	logx.Info("LEDGER", "Genesis block sealed: hash=", genesis.Hash(), " nonce=", genesis.Header.Nonce)
	return l, nil
}

// SubmitTransaction appends a transfer to the pending pool. There is no validation, so it
// always succeeds.
func (l *Ledger) SubmitTransaction(sender, recipient string, amount float64) bool {
	ok := l.pool.Submit(sender, recipient, amount)
	monitoring.IncreaseSubmittedTxCount()
	monitoring.SetMempoolSize(l.pool.Len())
	return ok
}

// MineBlock moves every pending transaction into a new block behind a reward transaction,
// commits them with a merkle root, searches for an accepted nonce and appends the block.
// It returns a copy of the sealed block.
//
// If the search fails (cancelled, bounded out, or an impossible difficulty) nothing is
// appended and the drained transactions go back to the front of the pool.
func (l *Ledger) MineBlock(ctx context.Context) (*block.Block, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	header := block.NewHeader(l.now(), l.LastHash(), l.difficulty)
	txs := block.AssembleTransactions(l.pool, l.minerAddress, l.reward)

	root, err := merkle.BuildWith(txs, l.pairing)
	if err != nil {
		l.abort(txs, err)
		return nil, fmt.Errorf("build merkle root: %w", err)
	}
	header.MerkleRoot = root

	res, err := pow.Search(ctx, &header, l.powOpts)
	if err != nil {
		l.abort(txs, err)
		return nil, fmt.Errorf("proof of work at difficulty %d: %w", header.Difficulty, err)
	}

	sealed := block.Seal(header, txs)
	height := l.store.AddBlock(sealed)
	l.addWork(header.Difficulty)

	monitoring.RecordBlockMined(len(txs), res.Attempts, res.Elapsed)
	monitoring.SetBlockHeight(height)
	monitoring.SetMempoolSize(l.pool.Len())
	logx.Info("LEDGER", fmt.Sprintf("Sealed block %d: txs=%d nonce=%d attempts=%d elapsed=%s hash=%s",
		height, sealed.TransactionCount, res.Nonce, res.Attempts, res.Elapsed, res.Hash))

	return sealed.Clone(), nil
}

func (l *Ledger) abort(txs []transaction.Transaction, cause error) {
	// txs[0] is the reward created for this attempt; the rest came from the pool.
	l.pool.Restore(txs[1:])
	monitoring.SetMempoolSize(l.pool.Len())
	monitoring.RecordMiningFailure(failureReason(cause))
	logx.Error("LEDGER", "Mining failed, ", len(txs)-1, " transactions returned to pool: ", cause)
}

func failureReason(err error) monitoring.MiningFailureReason {
	switch errors.CodeOf(err) {
	case errors.ErrCodeMiningCancelled:
		return monitoring.MiningCancelled
	case errors.ErrCodeNonceExhausted:
		return monitoring.MiningNonceExhausted
	case errors.ErrCodeDifficultyExceedsDigest, errors.ErrCodeUnsatisfiableDifficulty:
		return monitoring.MiningDifficultyInvalid
	case errors.ErrCodeEncodingFailed:
		return monitoring.MiningEncodingFailed
	default:
		return monitoring.MiningFailureUnknown
	}
}

func (l *Ledger) addWork(difficulty uint32) {
	if _, overflow := l.totalWork.AddOverflow(l.totalWork, pow.ExpectedAttempts(difficulty)); overflow {
		l.totalWork.SetAllOne()
	}
}

// UpdateDifficulty changes the difficulty of future blocks only.
func (l *Ledger) UpdateDifficulty(difficulty uint32) bool {
	logx.Info("LEDGER", "Difficulty changed from ", l.difficulty, " to ", difficulty)
	l.difficulty = difficulty
	monitoring.SetDifficulty(difficulty)
	return true
}

// UpdateReward changes the reward credited by future blocks only.
func (l *Ledger) UpdateReward(reward float64) bool {
	logx.Info("LEDGER", "Reward changed from ", l.reward, " to ", reward)
	l.reward = reward
	return true
}

// LastHash returns the hash of the newest block header, or the genesis sentinel when the
// chain is empty.
func (l *Ledger) LastHash() string {
	last := l.store.LastBlock()
	if last == nil {
		return hasher.GenesisSentinel
	}
	return last.Hash()
}

// Blocks returns copies of every sealed block, genesis first.
func (l *Ledger) Blocks() []*block.Block {
	stored := l.store.Blocks()
	out := make([]*block.Block, len(stored))
	for i, b := range stored {
		out[i] = b.Clone()
	}
	return out
}

// Block returns a copy of the block at height.
func (l *Ledger) Block(height uint64) (*block.Block, bool) {
	b := l.store.GetBlock(height)
	if b == nil {
		return nil, false
	}
	return b.Clone(), true
}

// BlockByHash returns a copy of the block whose header hashes to hash, with its height.
func (l *Ledger) BlockByHash(hash string) (*block.Block, uint64, bool) {
	b, height, ok := l.store.GetBlockByHash(hash)
	if !ok {
		return nil, 0, false
	}
	return b.Clone(), height, true
}

func (l *Ledger) Len() int {
	return l.store.Len()
}

// Height is the height of the newest block; the genesis block is height 0. It is also 0
// while the genesis block is still being mined.
func (l *Ledger) Height() uint64 {
	n := l.store.Len()
	if n == 0 {
		return 0
	}
	return uint64(n - 1)
}

func (l *Ledger) PendingTransactions() []transaction.Transaction {
	return l.pool.List()
}

func (l *Ledger) Difficulty() uint32 {
	return l.difficulty
}

func (l *Ledger) Reward() float64 {
	return l.reward
}

func (l *Ledger) MinerAddress() string {
	return l.minerAddress
}

// TotalWork is the sum of the expected hash count of every sealed block.
func (l *Ledger) TotalWork() *uint256.Int {
	return new(uint256.Int).Set(l.totalWork)
}
