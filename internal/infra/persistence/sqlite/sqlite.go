// Package sqlite implements the durable local blob store on an embedded
// sqlite database.
package sqlite

import (
	"context"
	"log/slog"

	"grocery/config"
	"grocery/internal/domain/lifecycle"
	"grocery/internal/errors"
	"grocery/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the embedded sqlite database and migrates the blobs table.
func New(params Params) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(params.Config.Storage.Path), &gorm.Config{
		// Single-row upserts only; GORM's implicit per-statement transaction
		// is unnecessary overhead here.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}
	// sqlite tolerates exactly one writer; serialize access at the pool.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.BlobModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate blobs table")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping sqlite")
		},
		OnStop: func(_ context.Context) error {
			return errors.Wrap(sqlDB.Close(), "failed to close sqlite")
		},
	})

	return db, nil
}
