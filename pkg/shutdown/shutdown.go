// Package shutdown centralizes signal handling so the app can stop its
// HTTP server, background jobs and store in order.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
)

// SetupSignalHandler returns a context cancelled on SIGINT or SIGTERM.
// A second signal exits immediately.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-ch
		logger.Info("shutdown_signal", "signal", sig.String())
		cancel()
		sig = <-ch
		logger.Error("forced_exit", "signal", sig.String())
		os.Exit(1)
	}()
	return ctx
}
