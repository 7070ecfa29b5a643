package main

import (
	"os"

	"github.com/turanbagtur/novel-translator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
