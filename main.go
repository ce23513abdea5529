package main

import (
	"github.com/dfir-analyzer/dfirctl/cmd"
)

func main() {
	cmd.Execute()
}
