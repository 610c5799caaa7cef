package main

import (
	"os"

	"github.com/paw-chain/tokenswap/cmd/swapsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
