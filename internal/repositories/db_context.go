package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/entities"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(cfg config.DBConfig) (*DbContext, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func openDialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(cfg.ConnectionString), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.ConnectionString), nil
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}
}

// Reset drops the jobs table. Everything stored is lost.
func (c *DbContext) Reset() error {
	log.Warn("dropping jobs table on startup")
	if err := c.DB.Migrator().DropTable(&entities.Job{}); err != nil {
		return fmt.Errorf("failed to drop Job entity: %w", err)
	}
	return nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(&entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
