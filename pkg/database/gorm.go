package database

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPool = PoolConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
}

// sqlLogger routes GORM output through zap when one is given, and to stdout
// otherwise (the migrate command).
func sqlLogger(zl *zap.Logger, level logger.LogLevel) logger.Interface {
	var w logger.Writer = log.New(os.Stdout, "\r\n", log.LstdFlags)
	colorful := true
	if zl != nil {
		w = zap.NewStdLog(zl.Named("gorm"))
		colorful = false
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  colorful,
	})
}

func configurePool(db *gorm.DB, pool PoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	return nil
}

// NewGormDBFromDSN opens a pooled Postgres connection. SQL is logged at Info
// level outside production and only warnings otherwise. zl may be nil.
func NewGormDBFromDSN(dsn string, isProd bool, zl *zap.Logger) (*gorm.DB, error) {
	level := logger.Info
	if isProd {
		level = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: sqlLogger(zl, level),
	})
	if err != nil {
		return nil, err
	}
	if err := configurePool(db, DefaultPool); err != nil {
		return nil, err
	}
	return db, nil
}
