package codec

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DecodeError reports a block body that could not be decoded back into a
// structured record. It wraps the underlying hex or json error.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not decode record body: %s", e.Reason)
	}
	return fmt.Sprintf("could not decode record body: %s: %s", e.Reason, e.Err.Error())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode serializes a structured record to the on-block representation,
// hexadecimal over UTF-8 json. Encode and Decode round-trip exactly.
func Encode(record interface{}) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("could not marshal record for encoding: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// Decode is the inverse of Encode. The decoded record is unmarshalled into
// record, which must be a pointer.
func Decode(body string, record interface{}) error {
	raw, err := hex.DecodeString(body)
	if err != nil {
		return &DecodeError{Reason: "body is not valid hexadecimal", Err: err}
	}
	err = json.Unmarshal(raw, record)
	if err != nil {
		return &DecodeError{Reason: "body is not valid json", Err: err}
	}
	return nil
}
