package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/starledger/star-ledger/internal/notary"
	"github.com/starledger/star-ledger/internal/resources"
)

func main() {
	app := &cli.App{
		Name:  "star ledger",
		Usage: "Keep an append-only, hash-linked ledger of star records gated by address ownership proofs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "The host endpoint of the node (please include the port)",
				EnvVars: []string{"HOST"},
			},
			&cli.Int64Flag{
				Name:    "verify-window-seconds",
				Usage:   "How many seconds a challenge message stays valid after issuance",
				Value:   int64(notary.DefaultWindow.Seconds()),
				EnvVars: []string{"VERIFY_WINDOW_SECONDS"},
			},
			&cli.StringFlag{
				Name:    "challenge-tag",
				Usage:   "The fixed tag appended as the third field of challenge messages",
				Value:   notary.DefaultTag,
				EnvVars: []string{"CHALLENGE_TAG"},
			},
		},
		Action: resources.Serve,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
