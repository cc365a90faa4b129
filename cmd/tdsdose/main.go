// Command tdsdose computes RO plant chemical dosing figures.
package main

import (
	"context"
	"os"

	"github.com/rshade/tdsdose/internal/cli"
	"github.com/rshade/tdsdose/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}

// exitCode maps the error returned by run to the process exit status. Cobra
// has already printed the error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func main() {
	os.Exit(exitCode(run()))
}
