package main

import (
	"context"
	"log"

	"faq-management-be/internal/bootstrap"
	"faq-management-be/internal/config"
	"faq-management-be/internal/server"
	"faq-management-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration — fail closed before any remote call is possible
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Start Background Services
	if err := container.AuditConsumer.Consume(context.Background()); err != nil {
		log.Printf("Background: audit consumer failed to start: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
