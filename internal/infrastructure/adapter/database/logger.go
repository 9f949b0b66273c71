package database

import (
	"context"
	"time"

	coreport "github.com/faspay-hq/ledger/internal/domain/port/core"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM's log output through the application logger
type GormLogger struct {
	logger coreport.Logger
}

// NewGormLogger creates a GORM logger adapter
func NewGormLogger(logger coreport.Logger) gormlogger.Interface {
	return &GormLogger{logger: logger}
}

// LogMode implements gormlogger.Interface; level filtering is handled by the
// application logger, so the adapter is returned unchanged
func (l *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

// Info logs informational messages from GORM
func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.logger.Info(msg, map[string]any{"args": args})
}

// Warn logs warnings from GORM
func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.logger.Warn(msg, map[string]any{"args": args})
}

// Error logs errors from GORM
func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.logger.Error(msg, map[string]any{"args": args})
}

// Trace logs SQL statements at debug level, slow queries at warn
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"sql":        sql,
		"rows":       rows,
		"elapsed_ms": elapsed.Milliseconds(),
	}

	switch {
	case err != nil:
		fields["error"] = err.Error()
		l.logger.Debug("Query failed", fields)
	case elapsed > slowQueryThreshold:
		l.logger.Warn("Slow query", fields)
	default:
		l.logger.Debug("Query", fields)
	}
}
