// Command server serves the tiny win API and list page until it receives
// SIGINT or SIGTERM. Configuration comes from CONFIG_PATH and the
// environment; run with -h to list the variables.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/tinywin-backend/internal/app"
	"github.com/heartmarshall/tinywin-backend/internal/config"
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s\n\nVersion %s\n\n", os.Args[0], app.BuildVersion())
		fmt.Fprintln(out, config.Usage())
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		stop()
		os.Exit(1)
	}
}
