package main

import (
	"context"
	"log"

	"reflect360-be/internal/bootstrap"
	"reflect360-be/internal/config"
	"reflect360-be/internal/server"
	"reflect360-be/internal/tracer"
	"reflect360-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database. A failed connection is survivable: the server
	// starts in cloud-disabled mode and the reflection tool keeps working.
	var gormDB *gorm.DB
	if cfg.Database.Connection == "" {
		color.Yellow("⚠ No DB_CONNECTION_STRING set, starting in cloud-disabled mode")
	} else {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			color.Yellow("⚠ Unable to connect to Postgres (%v), starting in cloud-disabled mode", err)
		} else {
			gormDB = db
			color.Green("✔ Connected to Postgres")
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	color.Cyan("Reflect360 backend starting on port %s", cfg.App.Port)
	log.Fatal(srv.Run())
}
