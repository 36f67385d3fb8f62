package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/config"
	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/infrastructure/database"
	"github.com/sangkips/invoice-desk/internal/infrastructure/endpoint"
	"github.com/sangkips/invoice-desk/internal/infrastructure/repository"
	"github.com/sangkips/invoice-desk/internal/presentation/http/handler"
	"github.com/sangkips/invoice-desk/internal/presentation/http/routes"
	"github.com/sangkips/invoice-desk/pkg/logger"
	"github.com/sangkips/invoice-desk/pkg/printer"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// Seed the catalog and staff directory
	ctx := context.Background()
	seed := database.DefaultSeed()
	if cfg.Catalog.SeedFile != "" {
		if seed, err = database.LoadSeedFile(cfg.Catalog.SeedFile); err != nil {
			log.Fatal("failed to load seed file", zap.String("path", cfg.Catalog.SeedFile), zap.Error(err))
		}
	}
	if err := database.SeedReferenceData(ctx, catalogRepo, staffRepo, seed, log); err != nil {
		log.Warn("failed to seed reference data", zap.Error(err))
	}

	// Invoice endpoint
	invoiceEndpoint, err := endpoint.NewEndpointFromConfig(
		cfg.Endpoint.Type,
		cfg.Endpoint.URL,
		cfg.Endpoint.Timeout,
		cfg.Endpoint.WorkbookPath,
	)
	if err != nil {
		log.Fatal("failed to initialize invoice endpoint", zap.Error(err))
	}

	// Initialize printer
	receiptPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
		cfg.Printer.SpoolDir,
	)
	if err != nil {
		log.Warn("failed to initialize printer", zap.Error(err))
		receiptPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	header := entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
		Footer:   cfg.Shop.Footer,
	}
	printerService := service.NewPrinterService(receiptPrinter, header, cfg.Printer.Type, cfg.Printer.Format, cfg.Printer.CharWidth, log)
	catalogService := service.NewCatalogService(catalogRepo, staffRepo)
	draftService := service.NewDraftService(catalogRepo, staffRepo, service.DraftOptions{
		BillPrefix: cfg.Shop.BillPrefix,
	}, log)
	submissionService := service.NewSubmissionService(draftService, invoiceEndpoint, printerService, cfg.Endpoint.Timeout, log)

	if cfg.Session.StaffID != "" {
		if _, err := draftService.StartSession(ctx, cfg.Session.StaffID); err != nil {
			log.Warn("failed to lock session staff", zap.String("staff_id", cfg.Session.StaffID), zap.Error(err))
		}
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogService),
		Draft:      handler.NewDraftHandler(draftService),
		Submission: handler.NewSubmissionHandler(submissionService),
		Printer:    handler.NewPrinterHandler(printerService, draftService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:    cfg,
		Logger: log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
		zap.String("endpoint", cfg.Endpoint.Type),
		zap.String("printer", cfg.Printer.Type))

	if err := router.Run(":" + port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
