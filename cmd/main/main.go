package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finnhub-bridge/src/config"
	"finnhub-bridge/src/datasource"
	"finnhub-bridge/src/finnhub"
	"finnhub-bridge/src/interfaces"
	"finnhub-bridge/src/logger"
	"finnhub-bridge/src/network"
	"finnhub-bridge/src/server"
	"finnhub-bridge/src/stream"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Setup components
	var netMgr interfaces.INetworkManager = network.NewNetworkManager(cfg.MConfig, appLogger)
	client := finnhub.NewClient(cfg.MConfig, netMgr, appLogger)
	sessions := stream.NewManager(cfg.MConfig, appLogger)

	var engine interfaces.IQueryEngine = datasource.NewFinnhubDataSource(cfg.MConfig, client, sessions, appLogger)
	var srv interfaces.IDataExchanger = server.NewServer(cfg.MConfig, appLogger, engine)

	// Pump the merged streaming feed into the caller-facing hub
	go func() {
		for update := range sessions.Updates() {
			srv.Broadcast(update)
		}
	}()

	// Start server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("Bridge ready (provider: %s)", cfg.Provider.BaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	sessions.CloseAll()
	srv.Stop()
}
