package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/starledger/star-ledger/internal/codec"
	"github.com/starledger/star-ledger/internal/dto"
)

// ErrGenesisData is returned when decoded user data is requested from the
// genesis block. The genesis body is a fixed marker, not attributable data.
var ErrGenesisData = errors.New("the genesis block holds no owner data")

// genesisMarker is the fixed record encoded into the genesis block body.
type genesisMarker struct {
	Data string `json:"data"`
}

// Block is one entry in the ledger. Height, Time, PrevHash and Hash are
// assigned by Chain.Append and never mutated afterwards.
type Block struct {
	Height   int64  `json:"height"`
	Time     int64  `json:"time"`
	PrevHash string `json:"prev-block-hash"`
	Body     string `json:"body"`
	Hash     string `json:"hash"`
}

// NewBlock constructs an unlinked block around an encoded body. Height,
// Time, PrevHash and Hash stay zero until the chain appends it.
func NewBlock(body string) *Block {
	return &Block{Body: body}
}

func int64ToBytes(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

// ComputeHash returns the hex encoded sha256 over the block fields in a
// fixed order. The stored Hash field is not an input, so the result can be
// compared against it.
func (b *Block) ComputeHash() string {
	h := sha256.New()
	h.Write(int64ToBytes(b.Height))
	h.Write(int64ToBytes(b.Time))
	h.Write([]byte(b.PrevHash))
	h.Write([]byte(b.Body))
	return hex.EncodeToString(h.Sum(nil))
}

// IsGenesis reports whether this is the height zero block.
func (b *Block) IsGenesis() bool {
	return b.Height == 0
}

// DecodedData decodes the block body back into a star record. Asking the
// genesis block for owner data fails with ErrGenesisData.
func (b *Block) DecodedData() (*dto.StarRecord, error) {
	if b.IsGenesis() {
		return nil, ErrGenesisData
	}
	record := &dto.StarRecord{}
	err := codec.Decode(b.Body, record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Validate recomputes the block hash and compares it to the stored hash.
// A mismatch means the block was tampered with after it was appended.
// Validation is advisory, so a mismatch is reported, never thrown.
func (b *Block) Validate() bool {
	return b.ComputeHash() == b.Hash
}
