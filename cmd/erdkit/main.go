// Command erdkit converts schema files (DSL, SQL DDL, JSON) into a canonical
// entity-relationship model for downstream diagramming tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "erdkit",
		Usage: "Normalize database schema files into a canonical ER model",
		Commands: []*cli.Command{
			convertCommand(),
			formatsCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "erdkit:", err)
		os.Exit(1)
	}
}
