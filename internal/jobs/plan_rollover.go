package jobs

import (
	"context"
	"fmt"
	"time"

	"PraxisPlan/internal/config"
	"PraxisPlan/internal/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type RolloverConfig struct {
	Schedule  string
	TimeZone  string
	BatchSize int
}

func NewDefaultRolloverConfig() RolloverConfig {
	return RolloverConfig{
		Schedule:  config.DefaultRolloverSchedule,
		TimeZone:  config.DefaultTimeZone,
		BatchSize: config.RolloverBatchSize,
	}
}

// RunPlanRollover schedules the month-start job that seeds the new month's
// plan rows from the previous month's planned_sessions. Actuals start NULL
// and are filled by imports or manual edits.
func RunPlanRollover(cfg RolloverConfig, db *pgxpool.Pool) error {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for plan rollover: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		now := time.Now().In(loc)
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Running plan rollover at %s", now))
		}
		if err := rolloverMonth(context.Background(), db, now, cfg.BatchSize); err != nil {
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("Plan rollover failed: %v", err))
			}
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Plan rollover completed for " + now.Format("2006-01"))
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

// rolloverMonth copies planned_sessions from the previous month for every
// (user, therapy) that has no row for the current month yet. Inserts go out
// in batches of batchSize to keep round trips down.
func rolloverMonth(ctx context.Context, db *pgxpool.Pool, now time.Time, batchSize int) error {
	currMonth := now.Format("2006-01")
	prevMonth := now.AddDate(0, -1, 0).Format("2006-01")

	rows, err := db.Query(ctx, `
		SELECT p.user_id, p.therapy_id, p.planned_sessions
		FROM monthly_plans p
		WHERE p.month = $1
		  AND p.planned_sessions > 0
		  AND NOT EXISTS (
			SELECT 1 FROM monthly_plans q
			WHERE q.user_id = p.user_id AND q.therapy_id = p.therapy_id AND q.month = $2
		  )`, prevMonth, currMonth)
	if err != nil {
		return err
	}
	type seed struct {
		userID    string
		therapyID string
		planned   int
	}
	seeds := []seed{}
	for rows.Next() {
		var s seed
		if err := rows.Scan(&s.userID, &s.therapyID, &s.planned); err != nil {
			rows.Close()
			return err
		}
		seeds = append(seeds, s)
	}
	rows.Close()
	if rows.Err() != nil {
		return rows.Err()
	}

	if batchSize <= 0 {
		batchSize = config.RolloverBatchSize
	}
	for start := 0; start < len(seeds); start += batchSize {
		end := start + batchSize
		if end > len(seeds) {
			end = len(seeds)
		}
		batch := &pgx.Batch{}
		for _, s := range seeds[start:end] {
			batch.Queue(`
				INSERT INTO monthly_plans (plan_id, user_id, therapy_id, month, planned_sessions, actual_sessions)
				VALUES ($1, $2, $3, $4, $5, NULL)
				ON CONFLICT (user_id, therapy_id, month) DO NOTHING`,
				uuid.New().String(), s.userID, s.therapyID, currMonth, s.planned)
		}
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("seed plans for %s: %w", currMonth, err)
		}
	}
	return nil
}
