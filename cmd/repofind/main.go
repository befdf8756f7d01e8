package main

import (
	"github.com/oneconcern/repofind/cmd/repofind/cmd"
)

func main() {
	cmd.Execute()
}
