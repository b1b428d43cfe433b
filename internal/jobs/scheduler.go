package jobs

import (
	"fmt"
	"log"

	"PraxisPlan/internal/logger"
	"PraxisPlan/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	rolloverCfg := NewDefaultRolloverConfig()

	// Override from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["rollover_schedule"].(string); ok && schedule != "" {
			rolloverCfg.Schedule = schedule
		}
		if batchSize, ok := s.config["rollover_batch_size"].(int); ok && batchSize > 0 {
			rolloverCfg.BatchSize = batchSize
		}
	}

	if err := RunPlanRollover(rolloverCfg, s.db); err != nil {
		return fmt.Errorf("failed to start plan rollover scheduler: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with plan rollover scheduler")
	}
	log.Println("Cron service started — Plan Rollover scheduled")
	return nil
}

func (s *CronService) Stop() error {
	return nil
}
