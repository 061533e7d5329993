package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB

	// stations.is_active does not exist in older tenant schemas; probed once
	// on first use instead of retrying every query
	probeActiveOnce  sync.Once
	hasStationActive bool
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// queryContext derives the per-query deadline from config, like every
// repository method shares.
func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}
