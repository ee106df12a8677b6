package database

import (
	"fmt"
	"time"

	"github.com/IDS-Mandujano/electronica-back/config"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is an interface for database operations
type DB interface {
	DB() (*gorm.DB, error)
	Close() error
}

// GormDatabase implements the DB interface for GORM
type GormDatabase struct {
	db *gorm.DB
}

// NewGormDatabase wraps an already opened gorm handle
func NewGormDatabase(db *gorm.DB) *GormDatabase {
	return &GormDatabase{db: db}
}

// DSN builds the postgres connection string
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
}

// Connect establishes a connection to the database
func Connect(cfg config.DatabaseConfig, log *logrus.Logger) (DB, error) {
	// Configure GORM logger
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	gormLogger := logger.New(
		&logAdapter{log: log},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// Open connection
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get DB instance")
	}

	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxLife > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MaxLife)
	}

	return &GormDatabase{db: db}, nil
}

// ConnectWithRetry retries Connect with exponential backoff
func ConnectWithRetry(cfg config.DatabaseConfig, log *logrus.Logger, maxRetries int) (DB, error) {
	var (
		db  DB
		err error
	)
	retryInterval := time.Second

	for i := 0; i < maxRetries; i++ {
		log.WithField("attempt", i+1).Info("Connecting to database...")
		db, err = Connect(cfg, log)
		if err == nil {
			return db, nil
		}

		log.WithFields(logrus.Fields{
			"error":         err.Error(),
			"retry_attempt": i + 1,
			"max_retries":   maxRetries,
		}).Error("Failed to connect to database, retrying...")

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, errors.Wrapf(err, "failed to connect to database after %d attempts", maxRetries)
}

// DB returns the underlying gorm.DB instance
func (d *GormDatabase) DB() (*gorm.DB, error) {
	return d.db, nil
}

// Close closes the database connection
func (d *GormDatabase) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the tables the service owns, plus the
// catalog tables the ticket listing joins against.
func AutoMigrate(db DB) error {
	gormDB, err := db.DB()
	if err != nil {
		return err
	}

	err = gormDB.AutoMigrate(
		&models.Customer{},
		&models.Brand{},
		&models.Equipment{},
		&models.User{},
		&models.Ticket{},
		&models.Part{},
		&models.MaterialUsage{},
		&models.SaleCard{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to migrate table structures")
	}

	return nil
}

// logAdapter routes gorm's logger output through logrus
type logAdapter struct {
	log *logrus.Logger
}

func (l *logAdapter) Printf(format string, args ...interface{}) {
	if l.log == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.log.WithField("component", "gorm").Infof(format, args...)
}
