package main

import (
	"log/slog"
	"os"

	"f1calendar/cmd"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		slog.Error("f1calendar failed", "error", err)
		os.Exit(1)
	}
}
