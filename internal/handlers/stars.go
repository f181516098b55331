package handlers

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/starledger/star-ledger/internal/ledger"
)

type ownerSearcher struct {
	chain *ledger.Chain
}

// NewOwnerSearcher returns an instance of the ownerSearcher struct for handling the stars by owner endpoint.
func NewOwnerSearcher(chain *ledger.Chain) *ownerSearcher {
	return &ownerSearcher{
		chain: chain,
	}
}

// ByOwner returns the star records owned by an address, in chain order.
// The address is a PEM string, so it rides in the url hexadecimal encoded.
func (s *ownerSearcher) ByOwner(resp http.ResponseWriter, req *http.Request) {
	searchTerms := mux.Vars(req)

	addressHex := searchTerms["address_hexencoded"]

	addressBytes, err := hex.DecodeString(addressHex)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"owner address Public PEM string should be hexadecimal encoded for the url"}`))
		return
	}

	address := string(addressBytes)

	if len(address) == 0 {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"owner address is empty"}`))
		return
	}

	if !strings.HasPrefix(address, "-----BEGIN RSA PUBLIC KEY-----") {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"owner address should be a Public RSA PEM string"}`))
		return
	}

	records := s.chain.RecordsByOwner(address)

	resultBytes, err := json.Marshal(records)
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not marshal json of the owner records", "error":"%s"}`, err.Error())))
		return
	}

	resp.WriteHeader(http.StatusOK)
	resp.Write(resultBytes)
}
