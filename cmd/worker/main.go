package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/config"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/db"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mq"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/mqhandler"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/redis"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/util"
)

func main() {
	cfg := config.Load()

	logger := util.NewLogger()
	defer logger.Sync()

	logger.Info("Starting finance worker...")

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("DB ready")

	notiLogRepo := repository.NewNotificationLogRepository(dbConn)
	releasedHandler := mqhandler.NewMilestoneReleasedHandler(notiLogRepo, deduper, logger)

	logger.Info("Init consumer: milestone.released.q")
	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		"milestone.released.q",
		mq.RoutingKeyMilestoneReleased,
		logger,
	)
	if err != nil {
		logger.Fatal("Consumer init failed", zap.Error(err))
	}
	defer consumer.Close()
	consumer.SetHandler(releasedHandler.HandleMilestoneReleased)

	go func() {
		if err := consumer.StartConsuming(); err != nil {
			logger.Fatal("Consumer crashed", zap.Error(err))
		}
	}()

	logger.Info("Finance worker running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down finance worker")
}
