package notary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/starledger/star-ledger/internal/autograph"
	"github.com/starledger/star-ledger/internal/codec"
	"github.com/starledger/star-ledger/internal/dto"
	"github.com/starledger/star-ledger/internal/ledger"
)

// DefaultWindow is how long a challenge stays valid after issuance.
const DefaultWindow = 300 * time.Second

// DefaultTag is the fixed third field of a challenge message.
const DefaultTag = "starRegistry"

var (
	// ErrMalformedChallenge means the message does not have the
	// address:time:tag shape and no issue time could be parsed from it.
	ErrMalformedChallenge = errors.New("challenge message is malformed")
	// ErrChallengeExpired means the issue time embedded in the message is
	// older than the verification window.
	ErrChallengeExpired = errors.New("challenge message has expired")
	// ErrSignatureInvalid means the signature did not verify over the
	// message with the key the address encodes.
	ErrSignatureInvalid = errors.New("signature could not be verified with the address key")
)

// Notary gates chain appends behind proof that the submitter holds the key
// for the address a record is attributed to. Challenges are stateless: the
// issue time lives in the message itself, nothing is stored between
// issuance and redemption. A captured signed message therefore stays
// replayable until the window runs out. Known trade, documented, not fixed
// without adding server side state.
type Notary struct {
	chain  *ledger.Chain
	window time.Duration
	tag    string
}

// New returns a notary appending to chain. Zero window or empty tag fall
// back to the defaults.
func New(chain *ledger.Chain, window time.Duration, tag string) *Notary {
	if window <= 0 {
		window = DefaultWindow
	}
	if tag == "" {
		tag = DefaultTag
	}
	return &Notary{
		chain:  chain,
		window: window,
		tag:    tag,
	}
}

// Window returns the verification window.
func (n *Notary) Window() time.Duration {
	return n.window
}

// IssueChallenge returns the message the address holder must sign. The
// issue time is embedded as the second field, so issuance needs no lock
// and no storage.
func (n *Notary) IssueChallenge(address string) string {
	return fmt.Sprintf("%s:%d:%s", address, time.Now().Unix(), n.tag)
}

// issueTime parses the unix issue time out of the second colon-delimited
// field of a challenge message.
func issueTime(message string) (int64, error) {
	parts := strings.Split(message, ":")
	if len(parts) < 3 {
		return 0, fmt.Errorf("%w: expected address:time:tag, got %d fields", ErrMalformedChallenge, len(parts))
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: issue time is not an integer", ErrMalformedChallenge)
	}
	return issued, nil
}

// Submit checks a signed challenge and, when the address holder proved key
// possession inside the window, encodes the star record and appends it.
// Expiry and signature failures each independently abort the attempt
// before anything touches the chain.
func (n *Notary) Submit(address, message, signature string, star *dto.Star) (*ledger.Block, error) {
	issued, err := issueTime(message)
	if err != nil {
		return nil, err
	}

	elapsed := time.Now().Unix() - issued
	if elapsed > int64(n.window.Seconds()) {
		return nil, fmt.Errorf("%w: issued %d seconds ago, window is %d seconds",
			ErrChallengeExpired, elapsed, int64(n.window.Seconds()))
	}

	publicKey, err := autograph.BytesToPublicKey([]byte(address))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignatureInvalid, err.Error())
	}
	signatureBytes, err := autograph.SignedBodyToBytes(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignatureInvalid, err.Error())
	}
	err = autograph.Verify([]byte(message), signatureBytes, publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSignatureInvalid, err.Error())
	}

	body, err := codec.Encode(&dto.StarRecord{Address: address, Star: star})
	if err != nil {
		return nil, err
	}

	return n.chain.Append(ledger.NewBlock(body)), nil
}
