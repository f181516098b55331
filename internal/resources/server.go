package resources

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/starledger/star-ledger/internal/handlers"
	"github.com/starledger/star-ledger/internal/ledger"
	"github.com/starledger/star-ledger/internal/notary"
)

// Serve builds the chain, the notary, and the handlers, then listens for
// requests. The chain is owned here and passed down by reference, nothing
// holds it as a global.
func Serve(ctx *cli.Context) error {
	chain := ledger.NewChain()
	n := notary.New(
		chain,
		time.Duration(ctx.Int64("verify-window-seconds"))*time.Second,
		ctx.String("challenge-tag"),
	)

	notaryRunner := handlers.NewNotaryRunner(n)
	blockSearcher := handlers.NewBlockSearcher(chain)
	ownerSearcher := handlers.NewOwnerSearcher(chain)
	auditor := handlers.NewChainAuditor(chain)

	r := mux.NewRouter()
	r.HandleFunc("/healthcheck", func(resp http.ResponseWriter, req *http.Request) { resp.WriteHeader(http.StatusOK) }).Methods("GET")
	r.HandleFunc("/challenge", notaryRunner.Challenge).Methods("POST")
	r.HandleFunc("/submit", notaryRunner.Submit).Methods("POST")
	r.HandleFunc("/genesis", blockSearcher.Genesis).Methods("GET")
	r.HandleFunc("/block/hash/{block_hash}", blockSearcher.ByHash).Methods("GET")
	r.HandleFunc("/block/height/{block_height}", blockSearcher.ByHeight).Methods("GET")
	r.HandleFunc("/stars/owner/{address_hexencoded}", ownerSearcher.ByOwner).Methods("GET")
	r.HandleFunc("/chain/height", auditor.Height).Methods("GET")
	r.HandleFunc("/chain/validate", auditor.Validate).Methods("GET")

	host := ctx.String("host")
	if host == "" {
		host = ":8080"
	}

	log.WithFields(log.Fields{
		"host":           host,
		"window-seconds": int64(n.Window().Seconds()),
		"genesis-hash":   chain.BlockByHeight(0).Hash,
	}).Info("star ledger listening")

	return http.ListenAndServe(host, r)
}
