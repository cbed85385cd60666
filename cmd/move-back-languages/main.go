package main

import (
	"os"

	"github.com/akeeba/buildfiles/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewMoveBackLanguagesCmd(), os.Args[1:]))
}
