package main

import (
	"os"

	"github.com/scan-io-git/propusage/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
