package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/starledger/star-ledger/internal/codec"
	"github.com/starledger/star-ledger/internal/dto"
)

const (
	// CheckSelfHash marks a validation finding where the stored hash does
	// not match a recompute over the block fields.
	CheckSelfHash = "self-hash"
	// CheckLink marks a validation finding where PrevHash does not match
	// the hash of the preceding block.
	CheckLink = "link"
)

// ValidationError describes one failed check found during a chain sweep.
type ValidationError struct {
	Height int64  `json:"height"`
	Hash   string `json:"hash"`
	Check  string `json:"check"`
	Detail string `json:"detail,omitempty"`
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("block %d (%s) failed the %s check: %s", v.Height, v.Hash, v.Check, v.Detail)
}

// OwnedRecord is one result row of an owner scan. Either Star is set, or
// Err carries the decode failure for a corrupted block found mid-scan.
type OwnedRecord struct {
	Height int64     `json:"height"`
	Star   *dto.Star `json:"star,omitempty"`
	Err    string    `json:"decode-error,omitempty"`
}

// Chain is the ordered, append-only sequence of blocks. Append is the only
// mutation point. The mutex serializes appends and lets lookups run
// concurrently against a consistent view, so a reader sees the chain either
// before or fully after an append, never a half-linked block.
type Chain struct {
	mx     sync.RWMutex
	blocks []*Block
	height int64
}

// NewChain returns a chain initialized with the genesis block.
func NewChain() *Chain {
	c := &Chain{height: -1}
	c.InitGenesis()
	return c
}

// InitGenesis appends the fixed marker block when the chain is empty.
// Calling it on a non-empty chain is a no-op.
func (c *Chain) InitGenesis() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.height >= 0 {
		return
	}

	body, err := codec.Encode(&genesisMarker{Data: "Genesis Block"})
	if err != nil {
		// the marker is a fixed struct, encoding it cannot fail
		panic(err)
	}
	c.appendLocked(NewBlock(body))
}

// Append links the block to the current tail, stamps height, time and hash,
// and publishes it. The body is taken as-is; gating of what may enter the
// chain belongs to the notary, upstream of this call.
func (c *Chain) Append(block *Block) *Block {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.appendLocked(block)
}

// appendLocked must be called with the write lock held.
func (c *Chain) appendLocked(block *Block) *Block {
	block.Height = c.height + 1
	block.Time = time.Now().Unix()
	if block.Height > 0 {
		block.PrevHash = c.blocks[len(c.blocks)-1].Hash
	}
	block.Hash = block.ComputeHash()

	c.blocks = append(c.blocks, block)
	c.height++
	return block
}

// Height returns the height of the tail block, which is one less than the
// number of blocks.
func (c *Chain) Height() int64 {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.height
}

// BlockByHash returns the block with the given hash, or nil when no block
// matches. A miss is a normal lookup outcome, not an error.
func (c *Chain) BlockByHash(hash string) *Block {
	c.mx.RLock()
	defer c.mx.RUnlock()

	for _, block := range c.blocks {
		if block.Hash == hash {
			return block
		}
	}
	return nil
}

// BlockByHeight returns the block at the given height, or nil when the
// height is out of range.
func (c *Chain) BlockByHeight(height int64) *Block {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if height < 0 || height > c.height {
		return nil
	}
	return c.blocks[height]
}

// RecordsByOwner scans every non-genesis block in chain order and collects
// the star records owned by address. A block whose body no longer decodes
// is reported in place with its decode error instead of aborting the scan,
// so one corrupt block cannot hide the rest of the results.
func (c *Chain) RecordsByOwner(address string) []*OwnedRecord {
	c.mx.RLock()
	defer c.mx.RUnlock()

	records := []*OwnedRecord{}
	for _, block := range c.blocks {
		if block.IsGenesis() {
			continue
		}
		record, err := block.DecodedData()
		if err != nil {
			records = append(records, &OwnedRecord{
				Height: block.Height,
				Err:    err.Error(),
			})
			continue
		}
		if record.Address != address {
			continue
		}
		records = append(records, &OwnedRecord{
			Height: block.Height,
			Star:   record.Star,
		})
	}
	return records
}

// Validate sweeps the whole chain and runs both integrity checks on every
// block: the self hash recompute, and for non-genesis blocks the link to
// the previous block hash. The sweep never short-circuits, so one corrupt
// block does not mask failures further along the chain.
func (c *Chain) Validate() []*ValidationError {
	c.mx.RLock()
	defer c.mx.RUnlock()

	errs := []*ValidationError{}
	for i, block := range c.blocks {
		if !block.Validate() {
			errs = append(errs, &ValidationError{
				Height: block.Height,
				Hash:   block.Hash,
				Check:  CheckSelfHash,
				Detail: "stored hash does not match a recompute over the block fields",
			})
		}
		if i == 0 {
			continue
		}
		if block.PrevHash != c.blocks[i-1].Hash {
			errs = append(errs, &ValidationError{
				Height: block.Height,
				Hash:   block.Hash,
				Check:  CheckLink,
				Detail: fmt.Sprintf("prev-block-hash does not match the hash of block %d", c.blocks[i-1].Height),
			})
		}
	}
	return errs
}
