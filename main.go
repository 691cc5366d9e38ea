package main

import (
	"os"

	"github.com/enveil/enveil/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
