package database

import (
	"fmt"
	"time"

	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the process-wide connection opened by Initialize
var DB *gorm.DB

// Open connects to the database with the given driver ("postgres" or "sqlite")
func Open(driver, dsn string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormLogger := gormlogger.Default.LogMode(gormlogger.Warn)
	if verbose {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Use(telemetry.GORMPlugin()); err != nil {
		return nil, fmt.Errorf("failed to register database telemetry: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// SQLite serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Initialize opens the process-wide connection
func Initialize(driver, dsn string, verbose bool) error {
	db, err := Open(driver, dsn, verbose)
	if err != nil {
		return err
	}
	DB = db
	logger.Log.Info("Database connected", zap.String("driver", driver))
	return nil
}

// Migrate runs auto-migration for all models and creates secondary indexes
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// createIndexes creates the indexes the list queries rely on.
// The statements are portable between PostgreSQL and SQLite.
func createIndexes(db *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_events_starts_at_created ON events (starts_at, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_events_attendees ON events (attendee_count)",
		"CREATE INDEX IF NOT EXISTS idx_groups_members ON \"groups\" (member_count)",
		"CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts (author_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_comments_post_parent ON comments (post_id, parent_id)",
		"CREATE INDEX IF NOT EXISTS idx_comments_parent_position ON comments (parent_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_event_attendees_user ON event_attendees (user_id)",
		"CREATE INDEX IF NOT EXISTS idx_group_members_user ON group_members (user_id)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the process-wide connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
