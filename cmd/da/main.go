// Command da analyzes disk space usage below a directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/da/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.New(version).Execute(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
