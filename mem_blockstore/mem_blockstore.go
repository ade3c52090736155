package mem_blockstore

import (
	"fmt"

	"github.com/mezonai/powchain/block"
	"github.com/mezonai/powchain/logx"
)

// MemBlockStore keeps sealed blocks in memory, indexed by height and by header hash.
// Blocks are only ever appended; nothing is replaced, reordered or pruned.
type MemBlockStore struct {
	blocks []*block.Block
	byHash map[string]uint64 // header hash -> height
}

func NewMemBlockStore() *MemBlockStore {
	return &MemBlockStore{
		blocks: make([]*block.Block, 0),
		byHash: make(map[string]uint64),
	}
}

// AddBlock appends blk at the next height and returns that height. The store takes
// ownership of blk; callers must not modify it afterwards.
func (mbs *MemBlockStore) AddBlock(blk *block.Block) uint64 {
	height := uint64(len(mbs.blocks))
	hash := blk.Hash()
	mbs.blocks = append(mbs.blocks, blk)
	mbs.byHash[hash] = height

	logx.Debug("MEM_BLOCKSTORE", fmt.Sprintf("Added block %s at height %d", hash, height))
	return height
}

// GetBlock returns the stored block at height, or nil.
func (mbs *MemBlockStore) GetBlock(height uint64) *block.Block {
	if height >= uint64(len(mbs.blocks)) {
		return nil
	}
	return mbs.blocks[height]
}

// GetBlockByHash returns the stored block whose header hashes to hash, and its height.
func (mbs *MemBlockStore) GetBlockByHash(hash string) (*block.Block, uint64, bool) {
	height, ok := mbs.byHash[hash]
	if !ok {
		return nil, 0, false
	}
	return mbs.blocks[height], height, true
}

// LastBlock returns the newest block, or nil when the store is empty.
func (mbs *MemBlockStore) LastBlock() *block.Block {
	if len(mbs.blocks) == 0 {
		return nil
	}
	return mbs.blocks[len(mbs.blocks)-1]
}

func (mbs *MemBlockStore) Len() int {
	return len(mbs.blocks)
}

// Blocks returns the stored blocks in height order. The slice is a copy; the blocks are not.
func (mbs *MemBlockStore) Blocks() []*block.Block {
	out := make([]*block.Block, len(mbs.blocks))
	copy(out, mbs.blocks)
	return out
}
