package main

import (
	"os"

	"github.com/sahifabooks/orderbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
