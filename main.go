package main

import (
	"github.com/winpat/vault-client/cmd"
)

func main() {
	cmd.Execute()
}
