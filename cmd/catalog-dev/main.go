package main

import (
	"context"
	"log"
	"os"

	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"go.uber.org/zap"

	"bookcatalog/internal/app"
	"bookcatalog/internal/config"
	"bookcatalog/internal/storage/ch"
)

func main() {
	ctx := context.Background()

	log.Println("Starting ClickHouse testcontainer...")

	// Start ClickHouse container
	clickhouseContainer, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:latest",
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword("devpassword"),
		clickhouse.WithDatabase("default"),
	)
	if err != nil {
		log.Fatalf("Failed to start ClickHouse container: %v", err)
	}

	// Ensure container cleanup on exit
	defer func() {
		log.Println("Stopping ClickHouse container...")
		if err := clickhouseContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v", err)
		}
	}()

	// Get connection details
	host, err := clickhouseContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}

	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	if err != nil {
		log.Fatalf("Failed to get container port: %v", err)
	}

	log.Printf("ClickHouse started at %s:%s", host, port.Port())

	cfg := &config.Config{
		Backend:            config.BackendClickHouse,
		ClickHouseHost:     host,
		ClickHousePort:     port.Int(),
		ClickHouseDatabase: "default",
		ClickHouseUser:     "default",
		ClickHousePassword: "devpassword",
		LogLevel:           zap.InfoLevel,
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	err = ch.Migrate(ctx, cfg.ClickHouseHost, cfg.ClickHousePort, cfg.ClickHouseDatabase,
		cfg.ClickHouseUser, cfg.ClickHousePassword, cfg.ClickHouseUseTLS, "up", logger)
	if err != nil {
		log.Printf("Failed to run migrations: %v", err)
		return
	}

	log.Println("Starting book catalog with ClickHouse backend...")

	application, err := app.NewWithConfig(cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Printf("Failed to create application: %v", err)
		return
	}

	if err := application.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}
}
