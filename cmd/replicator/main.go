package main

import (
	"github.com/NVIDIA/deploy-replicator/pkg/cli"
)

func main() {
	cli.Execute()
}
