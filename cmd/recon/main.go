package main

import (
	"github.com/agenthands/recon/cmd/recon/cmd"
)

func main() {
	cmd.Execute()
}
