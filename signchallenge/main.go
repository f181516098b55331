package main

import (
	"crypto/rsa"
	"flag"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/starledger/star-ledger/internal/autograph"
)

// signchallenge is a client side helper. It signs a challenge message
// issued by the star ledger so the signature can be pasted into a submit
// request. With no keys given it generates a fresh pair and prints them.
func main() {
	var err error
	var privateKeyStr string
	var publicKeyStr string
	var message string
	var privateKey *rsa.PrivateKey
	var publicKey *rsa.PublicKey

	flag.StringVar(&message, "message", "", "The challenge message to sign")
	flag.StringVar(&privateKeyStr, "private-key", "", "The private key to sign with")
	flag.StringVar(&publicKeyStr, "public-key", "", "The public key matching the private key to sign with")

	flag.Parse()

	if message == "" {
		pterm.Error.Println("message is empty, request a challenge first and pass it with -message")
		return
	}

	if privateKeyStr == "" || publicKeyStr == "" {
		privateKey, publicKey, err = autograph.NewSig()
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		publicKeyBytes, err := autograph.PublicKeyToBytes(publicKey)
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		pterm.Info.Println("generating new keys, the public key is your ledger address")
		pterm.DefaultSection.Println("private key")
		fmt.Println(string(autograph.PrivateKeyToBytes(privateKey)))
		pterm.DefaultSection.Println("public key")
		fmt.Println(string(publicKeyBytes))
	} else {
		privateKey, err = autograph.BytesToPrivateKey([]byte(privateKeyStr))
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		publicKey, err = autograph.BytesToPublicKey([]byte(publicKeyStr))
		if err != nil {
			pterm.Error.Println(err)
			return
		}
	}

	signedMessage, err := autograph.Sign(privateKey, []byte(message))
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	err = autograph.Verify([]byte(message), signedMessage, publicKey)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Println("signed and verified with the public key")
	pterm.DefaultSection.Println("signature")
	fmt.Printf("%x\n", signedMessage)
}
