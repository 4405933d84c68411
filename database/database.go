package database

import (
	"fmt"

	"educa/config"
	"educa/logger"
	"educa/models"
	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, sets up pooling and runs migrations
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatal("Failed to get database instance", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	Database = DbInstance{Db: db}
}

// DSN builds the connection string for the configured driver unless DB_DSN overrides it
func DSN(cfg *config.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}

	switch cfg.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "sqlite":
		return cfg.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}
}

// Open returns a gorm handle for postgres, mysql or sqlite
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	return db, nil
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	logger.Log.Info("Running migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.LoginTracking{},
		&courseModels.Subject{},
		&courseModels.Course{},
		&courseModels.CourseStudent{},
		&courseModels.Module{},
		&courseModels.Content{},
		&courseModels.Text{},
		&courseModels.File{},
		&courseModels.Image{},
		&courseModels.Video{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	logger.Log.Info("Migrations completed successfully")
	return nil
}
