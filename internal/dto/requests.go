package dto

// ChallengeRequest is the body of the challenge endpoint.
type ChallengeRequest struct {
	Address string `json:"address"`
}

// ChallengeResponse carries the issued challenge message back to the
// client along with the window they have to sign and submit it.
type ChallengeResponse struct {
	Message       string `json:"message"`
	WindowSeconds int64  `json:"window-seconds"`
}

// SubmissionRequest is the body of the submit endpoint. Message must be
// the exact challenge message that was issued, Signature the hex encoded
// signature over it.
type SubmissionRequest struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Star      *Star  `json:"star"`
}
