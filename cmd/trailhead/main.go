// Command trailhead serves the instructional handlers of package basic.
//
// Usage:
//
//	trailhead serve [--env ENVIRONMENT] [--port PORT]
//	trailhead routes
//
// serve stops on the signals the ranger handles for it.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
