// Package main is the entry point for the PantryPlan API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/pantryplan/api/internal/infrastructure/container"
)

func main() {
	configPath := flag.String("config", os.Getenv("PANTRYPLAN_CONFIG"), "path to the config file")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		container.Module(*configPath),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// SIGINT, SIGTERM or a fatal server error
	sig := <-app.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Fatalf("Failed to stop application gracefully: %v", err)
	}

	os.Exit(sig.ExitCode)
}
