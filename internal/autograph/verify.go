package autograph

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// Verify verifies the result of Sign(). Errors when verifying fails.
func Verify(body, signedBody []byte, publicKey *rsa.PublicKey) error {
	hash := sha256.New()
	hash.Write(body)
	hashed := hash.Sum(nil)

	err := rsa.VerifyPSS(publicKey, crypto.SHA256, hashed, signedBody, nil)
	if err != nil {
		return err
	}

	return nil
}

// SignedBodyToBytes uses fmt Sscanf with scanning directive %x to get the signedBody as bytes
func SignedBodyToBytes(signedBody string) ([]byte, error) {
	signedBodyBytes := []byte{}
	_, err := fmt.Sscanf(signedBody, "%x", &signedBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("could not scan signed-body into bytes")
	}
	return signedBodyBytes, nil
}

// BytesToPublicKey takes a PEM key for the public key and converts to *rsa.PublicKey
func BytesToPublicKey(pub []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pub)
	if block == nil {
		return nil, fmt.Errorf("public key is not a PEM block")
	}
	ifc, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("could not parse public key: %w", err)
	}
	key, ok := ifc.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not an RSA key")
	}
	return key, nil
}
