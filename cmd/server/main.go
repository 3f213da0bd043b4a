package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"distill/internal/config"
	"distill/internal/db"
	"distill/internal/handler"
	transport "distill/internal/http"
	"distill/internal/logger"
	"distill/internal/network"
	"distill/internal/repository"
	"distill/internal/scheduler"
	"distill/internal/service"
	"distill/internal/snowflake"
)

// @title Distill API
// @version 1.0
// @description AI-assisted content processing service
// @BasePath /api
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init id generator: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	sourceRepo := repository.NewSourceRepository(dbConn)
	documentRepo := repository.NewDocumentRepository(dbConn)
	runRepo := repository.NewRunRepository(dbConn)
	duplicateRepo := repository.NewDuplicateRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)

	clientFactory := network.NewClientFactory(network.StaticProxy(cfg.ProxyURL))

	gatewayService, err := service.NewGatewayService(cfg.AIAPIKey, settingsRepo, nil)
	if err != nil {
		log.Fatalf("configure AI gateway: %v", err)
	}

	documentService := service.NewDocumentService(documentRepo)
	readabilityService := service.NewReadabilityService(documentRepo, clientFactory)
	ingestService := service.NewIngestService(sourceRepo, documentRepo, clientFactory)
	settingsService := service.NewSettingsService(settingsRepo)
	processService := service.NewProcessService(
		documentRepo,
		runRepo,
		duplicateRepo,
		gatewayService,
		service.NewBatchService(),
		service.NewDuplicateService(),
		service.NewProcessTaskService(),
	)

	documentHandler := handler.NewDocumentHandler(documentService, readabilityService)
	sourceHandler := handler.NewSourceHandler(ingestService)
	processHandler := handler.NewProcessHandler(gatewayService, processService)
	duplicateHandler := handler.NewDuplicateHandler(processService)
	settingsHandler := handler.NewSettingsHandler(settingsService, gatewayService, clientFactory)

	router := transport.NewRouter(documentHandler, sourceHandler, processHandler, duplicateHandler, settingsHandler)

	// Start background scheduler (15 minutes interval)
	sched := scheduler.New(ingestService, processService, 15*time.Minute)
	sched.Start()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		sched.Stop()
		os.Exit(0)
	}()

	if err := router.Start(cfg.Addr); err != nil {
		log.Fatalf("start server: %v", err)
	}
}
