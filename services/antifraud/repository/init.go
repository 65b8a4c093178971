package repository

import (
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/jmoiron/sqlx"
)

// AntifraudRepo implements the antifraud repository interface on PostgreSQL
type AntifraudRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAntifraudRepository creates a new antifraud repository
func NewAntifraudRepository(cfg *models.Config, db *sqlx.DB) *AntifraudRepo {
	return &AntifraudRepo{
		cfg: cfg,
		db:  db,
	}
}
