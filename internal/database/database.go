// Package database handles database connections and migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scriptum/internal/config"
	"scriptum/internal/middleware"
	"scriptum/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database connection instance.
var DB *gorm.DB

// slogGormLogger integrates GORM with slog.
type slogGormLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// LogMode sets the logging level and returns a new interface instance.
func (l *slogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newlogger := *l
	newlogger.Config.LogLevel = level
	return &newlogger
}

// Info logs an informational message with context.
func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Warn logs a warning message with context.
func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs trace-level information including SQL queries and execution time.
func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "GORM query error",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case elapsed > l.Config.SlowThreshold && l.Config.SlowThreshold != 0 && l.Config.LogLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "GORM slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	case l.Config.LogLevel >= logger.Info:
		l.logger.InfoContext(ctx, "GORM query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// Connect opens a database connection using the provided configuration and returns the gorm DB instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	gormLogger := &slogGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	dbInstance, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	middleware.Logger.Info("Database connected successfully")

	isProduction := cfg.Env == "production" || cfg.Env == "prod"
	if !isProduction {
		// Keep AutoMigrate in non-production for developer/test ergonomics.
		if err := Migrate(dbInstance); err != nil {
			return nil, err
		}
		middleware.Logger.Info("Database migration completed")
	}

	// Set connection pooling parameters
	sqlDB, err := dbInstance.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	DB = dbInstance
	return DB, nil
}

// Migrate applies the schema, including the storage-level backstops for the
// saga and review-score invariants that validation alone cannot guarantee on
// partial-update paths.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Theme{},
		&models.Book{},
		&models.Chapter{},
		&models.ChapterComment{},
		&models.Character{},
		&models.Place{},
		&models.Creature{},
		&models.Review{},
		&models.Favorite{},
		&models.FollowedAuthor{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	constraints := []struct {
		name string
		sql  string
	}{
		{
			"chk_books_saga_tome",
			`ALTER TABLE books ADD CONSTRAINT chk_books_saga_tome CHECK (
				(is_saga AND tome_name IS NOT NULL AND tome_number IS NOT NULL)
				OR (NOT is_saga AND tome_name IS NULL AND tome_number IS NULL)
			)`,
		},
		{
			"chk_reviews_score_range",
			`ALTER TABLE reviews ADD CONSTRAINT chk_reviews_score_range CHECK (score >= 0 AND score <= 5)`,
		},
		{
			"chk_follows_not_self",
			`ALTER TABLE followed_authors ADD CONSTRAINT chk_follows_not_self CHECK (user_id <> author_id)`,
		},
		{
			"chk_chapters_type_number",
			`ALTER TABLE chapters ADD CONSTRAINT chk_chapters_type_number CHECK (
				(type = 'chapter' AND chapter_number IS NOT NULL)
				OR (type <> 'chapter' AND chapter_number IS NULL)
			)`,
		},
		{
			"idx_chapters_book_type_number",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_chapters_book_type_number
				ON chapters (book_id, type, chapter_number)
				WHERE chapter_number IS NOT NULL AND deleted_at IS NULL`,
		},
		{
			"idx_chapters_book_singleton_type",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_chapters_book_singleton_type
				ON chapters (book_id, type)
				WHERE chapter_number IS NULL AND deleted_at IS NULL`,
		},
	}
	for _, c := range constraints {
		if err := db.Exec(c.sql).Error; err != nil {
			// Re-running against an existing schema is fine.
			middleware.Logger.Warn("constraint migration skipped",
				slog.String("constraint", c.name), slog.String("error", err.Error()))
		}
	}

	return nil
}
