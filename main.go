package main

import (
	"os"

	"github.com/msh-project/msh/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
