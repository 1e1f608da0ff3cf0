package database

import (
	"fmt"
	"time"

	"corporate-site/config"
	"corporate-site/internal/domain/admins"
	"corporate-site/internal/domain/media"
	"corporate-site/internal/domain/pages"
	"corporate-site/internal/domain/snippets"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the configured backend. sqlite is meant for local runs
// and tests; production uses postgres.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger(zap.L()),
	})
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

// newLogger writes gorm warnings, errors and slow queries to l. Missing rows
// are an expected outcome of lookups and are not logged.
func newLogger(l *zap.Logger) logger.Interface {
	std, err := zap.NewStdLogAt(l.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		std = zap.NewStdLog(l.Named("gorm"))
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	models := []any{
		// media
		&media.Image{},
		&media.Document{},

		// page tree
		&pages.Page{},
		&pages.Site{},
	}
	models = append(models, pages.SpecificModels()...)
	return append(models,
		// snippets
		&snippets.ProductType{},
		&snippets.CarouselItem{},
		&snippets.HeadImage{},
		&snippets.Advert{},
		&snippets.AdvertPlacement{},

		// admin accounts
		&admins.Admin{},
	)
}

// Migrate creates or updates the schema and makes sure the tree root exists.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if _, err := pages.EnsureRoot(db); err != nil {
		return fmt.Errorf("ensure tree root: %w", err)
	}
	return nil
}

func InitDB() {
	db, err := Open(config.DB_DRIVER, config.DB_URL)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.String("driver", config.DB_DRIVER), zap.Error(err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		zap.L().Fatal("auto-migrate failed", zap.Error(err))
	}

	zap.L().Info("database connected and migrated", zap.String("driver", config.DB_DRIVER))
}
