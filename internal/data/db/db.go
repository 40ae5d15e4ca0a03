package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Service struct {
	db      *gorm.DB
	dialect string
	log     *logger.Logger
}

// NewService opens the database named by databaseURL. postgres:// and
// postgresql:// URLs use the postgres driver; sqlite://<path> or a bare
// path uses sqlite.
func NewService(databaseURL string, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DatabaseService")

	dialect, dsn := ParseURL(databaseURL)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
		NowFunc:                                 func() time.Time { return time.Now().UTC() },
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch dialect {
	case DialectPostgres:
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// sqlite allows a single writer.
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	serviceLog.Info("Database connected", "dialect", dialect)
	return &Service{db: conn, dialect: dialect, log: serviceLog}, nil
}

// ParseURL maps a DATABASE_URL to a gorm dialect and driver DSN.
func ParseURL(databaseURL string) (string, string) {
	raw := strings.TrimSpace(databaseURL)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres, raw
	case strings.HasPrefix(lower, "sqlite:///"):
		return DialectSQLite, raw[len("sqlite:///"):]
	case strings.HasPrefix(lower, "sqlite://"):
		return DialectSQLite, raw[len("sqlite://"):]
	case raw == "":
		return DialectSQLite, "mindmate.db"
	default:
		return DialectSQLite, raw
	}
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Dialect() string { return s.dialect }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
