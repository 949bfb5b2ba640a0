// Command pathless finds routes on grid maps and serves an interactive
// websocket session for editing them.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
