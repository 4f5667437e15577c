// Command gridlayout lays out the CSS grid containers of HTML documents
// or YAML snapshots, and prints the resulting geometry.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benoitkugler/gridlayout/logger"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
