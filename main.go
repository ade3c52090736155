package main

import (
	"github.com/mezonai/powchain/cmd"
	"github.com/mezonai/powchain/exception"
)

func main() {
	defer exception.Recover("main", true)

	cmd.Execute()
}
