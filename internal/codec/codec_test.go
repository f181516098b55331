package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starledger/star-ledger/internal/dto"
)

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	record := &dto.StarRecord{
		Address: "-----BEGIN RSA PUBLIC KEY-----\nMIGf\n-----END RSA PUBLIC KEY-----\n",
		Star: &dto.Star{
			RA:    "16h 29m 1.0s",
			Dec:   "-26 29 24.9",
			Story: "Found Antares from the back porch",
		},
	}

	body, err := Encode(record)
	require.NoError(err)
	require.NotEmpty(body)

	decoded := &dto.StarRecord{}
	require.NoError(Decode(body, decoded))
	require.Equal(record, decoded)

	// Encode is deterministic
	again, err := Encode(record)
	require.NoError(err)
	require.Equal(body, again)
}

func TestDecodeFailures(t *testing.T) {
	t.Run("NotHex", func(t *testing.T) {
		require := require.New(t)

		decoded := &dto.StarRecord{}
		err := Decode("this is not hexadecimal", decoded)
		require.Error(err)

		decodeErr, ok := err.(*DecodeError)
		require.True(ok)
		require.Contains(decodeErr.Reason, "hexadecimal")
	})

	t.Run("NotJSON", func(t *testing.T) {
		require := require.New(t)

		// valid hex, but the decoded bytes are not json
		decoded := &dto.StarRecord{}
		err := Decode("deadbeef", decoded)
		require.Error(err)

		decodeErr, ok := err.(*DecodeError)
		require.True(ok)
		require.Contains(decodeErr.Reason, "json")
	})
}
