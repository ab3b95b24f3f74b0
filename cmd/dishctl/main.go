package main

import (
	"os"

	"github.com/santhosh-ovd/indian-dishes/server/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
