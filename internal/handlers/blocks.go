package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/starledger/star-ledger/internal/ledger"
)

type blockSearcher struct {
	chain *ledger.Chain
}

// NewBlockSearcher returns an instance of the blockSearcher struct for handling the block lookup endpoints.
func NewBlockSearcher(chain *ledger.Chain) *blockSearcher {
	return &blockSearcher{
		chain: chain,
	}
}

func writeBlock(resp http.ResponseWriter, block *ledger.Block) {
	if block == nil {
		resp.WriteHeader(http.StatusNotFound)
		resp.Write([]byte(`{"message":"no block found"}`))
		return
	}

	blockBytes, err := json.Marshal(block)
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not marshal json of the block", "error":"%s"}`, err.Error())))
		return
	}

	resp.WriteHeader(http.StatusOK)
	resp.Write(blockBytes)
}

// ByHash looks up a block by its hex encoded hash.
func (s *blockSearcher) ByHash(resp http.ResponseWriter, req *http.Request) {
	searchTerms := mux.Vars(req)

	blockHash := searchTerms["block_hash"]
	if len(blockHash) == 0 {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"block hash is empty"}`))
		return
	}

	if len(blockHash) != 64 {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"block hash is not 64 characters"}`))
		return
	}

	writeBlock(resp, s.chain.BlockByHash(blockHash))
}

// ByHeight looks up a block by its height.
func (s *blockSearcher) ByHeight(resp http.ResponseWriter, req *http.Request) {
	searchTerms := mux.Vars(req)

	height, err := strconv.ParseInt(searchTerms["block_height"], 10, 64)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(fmt.Sprintf(`{"message":"block height is not an integer", "error":"%s"}`, err.Error())))
		return
	}

	writeBlock(resp, s.chain.BlockByHeight(height))
}

// Genesis returns the height zero block.
func (s *blockSearcher) Genesis(resp http.ResponseWriter, req *http.Request) {
	writeBlock(resp, s.chain.BlockByHeight(0))
}
