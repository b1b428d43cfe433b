package planning

import (
	"PraxisPlan/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanningService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewPlanningService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &PlanningService{config: cfg, db: db}
}

func (s *PlanningService) Name() string {
	return "planning"
}

func (s *PlanningService) Start() error {
	go StartPlanningService(s.db)
	return nil
}

func (s *PlanningService) Stop() error {
	return nil
}
