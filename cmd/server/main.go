package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/config"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/db"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/finance"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/handler"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/httpserver"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/redis"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/service"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/util"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/circuitbreaker"
)

func main() {
	cfg := config.Load()

	logger := util.NewLogger()
	defer logger.Sync()

	logger.Info("Starting finance API...")

	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		// Reports and milestone updates work without the broker; only the
		// release events go unannounced.
		logger.Warn("MQ publisher init failed, release events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Repositories
	workerRepo := repository.NewWorkerRepository(dbConn)
	clientRepo := repository.NewClientRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)
	timeEntryRepo := repository.NewTimeEntryRepository(dbConn)
	milestoneRepo := repository.NewMilestoneRepository(dbConn, logger)
	ledgerRepo := repository.NewLedgerRepository(dbConn)

	// Finance engine
	rates := finance.NewStaticRates(cfg.Finance.Rates)
	conv := finance.NewConverter(rates, cfg.Finance.FallbackRate)
	comp := finance.NewCompensation(cfg.Finance.MonthlyWorkingHours)

	cache := service.NewReportCache(rdb, time.Duration(cfg.Finance.ReportCacheTTLSecs)*time.Second, logger)

	stores := service.Stores{
		Projects:    projectRepo,
		Clients:     clientRepo,
		Workers:     workerRepo,
		Tasks:       taskRepo,
		TimeEntries: timeEntryRepo,
		Milestones:  milestoneRepo,
	}

	// Services
	financeService := service.NewFinanceService(stores, conv, comp, cfg.Finance.TrendMonths, cache, logger)
	breaker := circuitbreaker.New(circuitbreaker.DefaultConfig())
	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	milestoneService := service.NewMilestoneService(
		milestoneRepo, projectRepo, clientRepo,
		ledgerRepo, eventPublisher, breaker, cache, logger,
	)
	projectService := service.NewProjectService(projectRepo, cache, logger)
	authService := service.NewAuthService(workerRepo, cfg.JWT.Secret, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	reportHandler := handler.NewReportHandler(financeService, logger)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	router := httpserver.NewRouter(
		authHandler, reportHandler, milestoneHandler, projectHandler,
		cfg.JWT.Secret, dbConn, logger,
	)

	logger.Info("Finance API listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
