package reports

import (
	"PraxisPlan/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportsService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewReportsService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &ReportsService{config: cfg, db: db}
}

func (s *ReportsService) Name() string {
	return "reports"
}

func (s *ReportsService) Start() error {
	go StartReportsService(s.db)
	return nil
}

func (s *ReportsService) Stop() error {
	return nil
}
