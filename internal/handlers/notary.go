package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/starledger/star-ledger/internal/dto"
	"github.com/starledger/star-ledger/internal/notary"
)

type notaryRunner struct {
	notary *notary.Notary
}

// NewNotaryRunner returns an instance of the notaryRunner struct for handling the challenge and submit endpoints.
func NewNotaryRunner(n *notary.Notary) *notaryRunner {
	return &notaryRunner{
		notary: n,
	}
}

// Challenge issues a challenge message for the requested address. The
// client signs the message externally and sends it back on the submit
// endpoint together with the star record.
func (r *notaryRunner) Challenge(resp http.ResponseWriter, req *http.Request) {
	reqBodyBytes, err := ioutil.ReadAll(req.Body)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not read request body", "error":"%s"}`, err.Error())))
		return
	}

	challengeReq := &dto.ChallengeRequest{}
	err = json.Unmarshal(reqBodyBytes, challengeReq)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not unmarshal json of request body", "error":"%s"}`, err.Error())))
		return
	}

	if challengeReq.Address == "" {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"address is empty"}`))
		return
	}

	challengeResp := &dto.ChallengeResponse{
		Message:       r.notary.IssueChallenge(challengeReq.Address),
		WindowSeconds: int64(r.notary.Window().Seconds()),
	}

	respBytes, err := json.Marshal(challengeResp)
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not marshal json of the challenge response", "error":"%s"}`, err.Error())))
		return
	}

	resp.WriteHeader(http.StatusOK)
	resp.Write(respBytes)
}

/*
example request:

curl --request POST \
  --url http://127.0.0.1:8080/submit \
  --header 'content-type: application/json' \
  --data '{
	"address": "-----BEGIN RSA PUBLIC KEY-----\nMIGf...\n-----END RSA PUBLIC KEY-----\n",
	"message": "-----BEGIN RSA PUBLIC KEY-----\nMIGf...\n-----END RSA PUBLIC KEY-----\n:1724572800:starRegistry",
	"signature": "8a48a...",
	"star": {
		"ra": "16h 29m 1.0s",
		"dec": "-26 29 24.9",
		"story": "Found Antares from the back porch"
	}
}'

response: the appended block as json
*/

// Submit verifies the signed challenge and appends the star record to the
// chain when the address holder proved key possession inside the window.
func (r *notaryRunner) Submit(resp http.ResponseWriter, req *http.Request) {
	reqBodyBytes, err := ioutil.ReadAll(req.Body)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not read request body", "error":"%s"}`, err.Error())))
		return
	}

	submission := &dto.SubmissionRequest{}
	err = json.Unmarshal(reqBodyBytes, submission)
	if err != nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not unmarshal json of request body", "error":"%s"}`, err.Error())))
		return
	}

	if submission.Star == nil {
		resp.WriteHeader(http.StatusBadRequest)
		resp.Write([]byte(`{"message":"star is empty"}`))
		return
	}

	block, err := r.notary.Submit(submission.Address, submission.Message, submission.Signature, submission.Star)
	if err != nil {
		log.WithField("error", err.Error()).Warn("star submission rejected")

		switch {
		case errors.Is(err, notary.ErrMalformedChallenge):
			resp.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, notary.ErrChallengeExpired), errors.Is(err, notary.ErrSignatureInvalid):
			// use status 401 to mean un verified
			resp.WriteHeader(http.StatusUnauthorized)
		default:
			resp.WriteHeader(http.StatusInternalServerError)
		}
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not verify ownership of the address", "error":"%s"}`, err.Error())))
		return
	}

	blockBytes, err := json.Marshal(block)
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(fmt.Sprintf(`{"message":"could not marshal json of the appended block", "error":"%s"}`, err.Error())))
		return
	}

	resp.WriteHeader(http.StatusOK)
	resp.Write(blockBytes)
}
