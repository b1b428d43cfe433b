package catalog

import (
	"PraxisPlan/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCatalogService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CatalogService{config: cfg, db: db}
}

func (s *CatalogService) Name() string {
	return "catalog"
}

func (s *CatalogService) Start() error {
	go StartCatalogService(s.db)
	return nil
}

func (s *CatalogService) Stop() error {
	return nil
}
