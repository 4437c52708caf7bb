package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wahactl: %v\n", err)
		var apiErr *waha.APIError
		if errors.As(err, &apiErr) {
			payload, _ := json.MarshalIndent(apiErr.Payload, "", "  ")
			fmt.Fprintf(os.Stderr, "%s\n", payload)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newCLI(os.Stdout)
	defer c.teardown()
	return c.rootCmd().ExecuteContext(ctx)
}
