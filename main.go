package main

import (
	"github.com/RBVI/dasp3/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
