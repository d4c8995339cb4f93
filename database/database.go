package database

import (
	"embed"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rpupo63/contractor-marketplace-backend/config"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Database struct {
	projectRepo           *ProjectRepo
	bidRepo               *BidRepo
	jobRequestRepo        *JobRequestRepo
	userRepo              *UserRepo
	contractorProfileRepo *ContractorProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:           NewProjectRepo(db),
		bidRepo:               NewBidRepo(db),
		jobRequestRepo:        NewJobRequestRepo(db),
		userRepo:              NewUserRepo(db),
		contractorProfileRepo: NewContractorProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BidRepo() *BidRepo {
	return d.bidRepo
}

func (d Database) JobRequestRepo() *JobRequestRepo {
	return d.jobRequestRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ContractorProfileRepo() *ContractorProfileRepo {
	return d.contractorProfileRepo
}

// Stores exposes the repositories through the core's store interfaces.
func (d Database) Stores() marketplace.Stores {
	return marketplace.Stores{
		Projects:    d.projectRepo,
		Bids:        d.bidRepo,
		JobRequests: d.jobRequestRepo,
		Users:       d.userRepo,
		Profiles:    d.contractorProfileRepo,
	}
}

// DSN builds the primary connection string from DATABASE_URL or the
// SUPABASE_DB_* keys when DB_TYPE is "supa".
func DSN(cfg map[string]string) (string, error) {
	if url := config.GetString(cfg, "DATABASE_URL", ""); url != "" {
		return url, nil
	}
	switch dbType := config.GetString(cfg, "DB_TYPE", "postgres"); dbType {
	case "supa":
		host := config.GetString(cfg, "SUPABASE_DB_HOST", "")
		if host == "" {
			return "", errs.NewConfigError("SUPABASE_DB_HOST", nil)
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			host,
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		), nil
	default:
		return "", errs.NewConfigError("DATABASE_URL", fmt.Errorf("no connection settings for DB_TYPE %q", dbType))
	}
}

// Open connects to Postgres. When DB_REPLICA_URL is set, reads are routed to
// the replica through dbresolver and writes stay on the primary.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newLogger,
	})
	if err != nil {
		return nil, errs.NewServiceUnavailableError("database", err)
	}

	if replica := config.GetString(cfg, "DB_REPLICA_URL", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: replica, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		zlog.Info().Msg("read replica registered")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewServiceUnavailableError("database", err)
	}
	return db, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
