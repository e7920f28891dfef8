package main

import (
	"os"

	"golang.design/x/hotkey/mainthread"

	"github.com/pathakanu/dailychime/cmd"
)

// Global hotkeys on macOS need the main thread, so the command runs inside
// mainthread.Init.
func main() {
	mainthread.Init(func() {
		if err := cmd.Execute(); err != nil {
			os.Exit(1)
		}
	})
}
