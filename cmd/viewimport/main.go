package main

import (
	"github.com/neuronlabs/viewimport/cmd/viewimport/cmd"
)

func main() {
	cmd.Execute()
}
