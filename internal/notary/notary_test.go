package notary

import (
	"crypto/rsa"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starledger/star-ledger/internal/autograph"
	"github.com/starledger/star-ledger/internal/dto"
	"github.com/starledger/star-ledger/internal/ledger"
)

func newOwner(t *testing.T) (privateKey *rsa.PrivateKey, address string) {
	t.Helper()
	privateKey, publicKey, err := autograph.NewSig()
	require.NoError(t, err)
	addressBytes, err := autograph.PublicKeyToBytes(publicKey)
	require.NoError(t, err)
	return privateKey, string(addressBytes)
}

func signMessage(t *testing.T, privateKey *rsa.PrivateKey, message string) string {
	t.Helper()
	signedMessage, err := autograph.Sign(privateKey, []byte(message))
	require.NoError(t, err)
	return fmt.Sprintf("%x", signedMessage)
}

func testStar() *dto.Star {
	return &dto.Star{RA: "16h 29m 1.0s", Dec: "-26 29 24.9", Story: "a story"}
}

func TestChallengeRoundTrip(t *testing.T) {
	require := require.New(t)

	chain := ledger.NewChain()
	n := New(chain, 0, "")
	privateKey, address := newOwner(t)

	message := n.IssueChallenge(address)
	require.Contains(message, address+":")
	require.Contains(message, ":"+DefaultTag)

	block, err := n.Submit(address, message, signMessage(t, privateKey, message), testStar())
	require.NoError(err)
	require.Equal(int64(1), block.Height)
	require.Equal(int64(1), chain.Height())

	record, err := block.DecodedData()
	require.NoError(err)
	require.Equal(address, record.Address)
	require.Equal("a story", record.Star.Story)
}

func TestChallengeExpired(t *testing.T) {
	require := require.New(t)

	chain := ledger.NewChain()
	n := New(chain, 0, "")
	privateKey, address := newOwner(t)

	// craft a message issued just outside the window, signed correctly
	staleIssue := time.Now().Unix() - int64(DefaultWindow.Seconds()) - 1
	message := fmt.Sprintf("%s:%d:%s", address, staleIssue, DefaultTag)

	_, err := n.Submit(address, message, signMessage(t, privateKey, message), testStar())
	require.ErrorIs(err, ErrChallengeExpired)
	require.Equal(int64(0), chain.Height())
}

func TestSignatureInvalid(t *testing.T) {
	require := require.New(t)

	chain := ledger.NewChain()
	n := New(chain, 0, "")
	_, address := newOwner(t)

	message := n.IssueChallenge(address)

	t.Run("WrongKey", func(t *testing.T) {
		otherPrivateKey, _ := newOwner(t)
		_, err := n.Submit(address, message, signMessage(t, otherPrivateKey, message), testStar())
		require.ErrorIs(err, ErrSignatureInvalid)
	})

	t.Run("NotHexSignature", func(t *testing.T) {
		_, err := n.Submit(address, message, "zzzz not a signature", testStar())
		require.ErrorIs(err, ErrSignatureInvalid)
	})

	t.Run("AddressNotAKey", func(t *testing.T) {
		privateKey, _ := newOwner(t)
		badAddressMessage := n.IssueChallenge("not a pem key")
		_, err := n.Submit("not a pem key", badAddressMessage, signMessage(t, privateKey, badAddressMessage), testStar())
		require.ErrorIs(err, ErrSignatureInvalid)
	})

	require.Equal(int64(0), chain.Height())
}

func TestMalformedChallenge(t *testing.T) {
	require := require.New(t)

	chain := ledger.NewChain()
	n := New(chain, 0, "")
	privateKey, address := newOwner(t)

	t.Run("NoColons", func(t *testing.T) {
		message := "there are no fields here"
		_, err := n.Submit(address, message, signMessage(t, privateKey, message), testStar())
		require.ErrorIs(err, ErrMalformedChallenge)
	})

	t.Run("IssueTimeNotInteger", func(t *testing.T) {
		message := fmt.Sprintf("%s:%s:%s", address, "not-a-time", DefaultTag)
		_, err := n.Submit(address, message, signMessage(t, privateKey, message), testStar())
		require.ErrorIs(err, ErrMalformedChallenge)
	})

	require.Equal(int64(0), chain.Height())
}

func TestWindowAndTagOverrides(t *testing.T) {
	require := require.New(t)

	n := New(ledger.NewChain(), 10*time.Second, "customTag")
	require.Equal(10*time.Second, n.Window())
	require.Contains(n.IssueChallenge("addr"), ":customTag")
}
