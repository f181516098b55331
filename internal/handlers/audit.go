package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/starledger/star-ledger/internal/ledger"
)

type chainAuditor struct {
	chain *ledger.Chain
}

// NewChainAuditor returns an instance of the chainAuditor struct for handling the chain height and validate endpoints.
func NewChainAuditor(chain *ledger.Chain) *chainAuditor {
	return &chainAuditor{
		chain: chain,
	}
}

// Height returns the current chain height.
func (a *chainAuditor) Height(resp http.ResponseWriter, req *http.Request) {
	resp.WriteHeader(http.StatusOK)
	resp.Write([]byte(fmt.Sprintf(`{"height":%d}`, a.chain.Height())))
}

type validateResponse struct {
	Valid  bool                      `json:"valid"`
	Errors []*ledger.ValidationError `json:"errors"`
}

// Validate runs the full integrity sweep and reports every failed check.
// Findings are advisory, the chain is never repaired or rolled back.
func (a *chainAuditor) Validate(resp http.ResponseWriter, req *http.Request) {
	errs := a.chain.Validate()

	for _, validationErr := range errs {
		log.WithFields(log.Fields{
			"height": validationErr.Height,
			"hash":   validationErr.Hash,
			"check":  validationErr.Check,
		}).Warn("chain validation finding")
	}

	resultBytes, err := json.Marshal(&validateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not marshal json of the validation findings", "error":"%s"}`, err.Error())))
		return
	}

	resp.WriteHeader(http.StatusOK)
	resp.Write(resultBytes)
}
