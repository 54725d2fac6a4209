// Command worker runs the background processes: the notification dispatcher
// that drains the outbound mail queue and the periodic overdue-loan sweep.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/library-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx); err != nil {
		log.Printf("worker exited with error: %v", err)
		os.Exit(1)
	}
}
