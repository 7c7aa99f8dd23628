package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/o6b7/travelbond/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	dbSystemKey    = "db.system"
	dbTableKey     = "db.table"
	dbOperationKey = "db.operation"
	dbStatementKey = "db.statement"

	spanKey  = "telemetry:span"
	startKey = "telemetry:start"
)

// GORMPlugin returns a GORM plugin that traces every statement and records
// its latency in the database metrics
func GORMPlugin() gorm.Plugin {
	return &databasePlugin{tracer: otel.Tracer("gorm")}
}

type databasePlugin struct {
	tracer trace.Tracer
}

func (p *databasePlugin) Name() string {
	return "telemetry:database"
}

func (p *databasePlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		name      string
		operation string
		before    func(string, func(*gorm.DB)) error
		after     func(string, func(*gorm.DB)) error
	}{
		{"query", "SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"create", "INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"update", "UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", "DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", "ROW", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", "RAW", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		operation := h.operation
		if err := h.before("telemetry:before_"+h.name, func(tx *gorm.DB) { p.start(tx, operation) }); err != nil {
			return fmt.Errorf("failed to register before_%s callback: %w", h.name, err)
		}
		if err := h.after("telemetry:after_"+h.name, func(tx *gorm.DB) { p.finish(tx, operation) }); err != nil {
			return fmt.Errorf("failed to register after_%s callback: %w", h.name, err)
		}
	}
	return nil
}

func (p *databasePlugin) start(db *gorm.DB, operation string) {
	db.InstanceSet(startKey, time.Now())

	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	_, span := p.tracer.Start(ctx, "db."+strings.ToLower(operation),
		trace.WithAttributes(
			attribute.String(dbSystemKey, db.Dialector.Name()),
			attribute.String(dbTableKey, tableName(db)),
			attribute.String(dbOperationKey, operation),
		),
	)
	db.InstanceSet(spanKey, span)
}

func (p *databasePlugin) finish(db *gorm.DB, operation string) {
	if startRaw, ok := db.InstanceGet(startKey); ok {
		if start, ok := startRaw.(time.Time); ok {
			metrics.RecordDatabaseQuery(strings.ToLower(operation), tableName(db), start, db.Error)
		}
	}

	spanRaw, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := spanRaw.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	// Truncated to keep span attributes bounded
	if sql := db.Statement.SQL.String(); sql != "" {
		if len(sql) > 500 {
			sql = sql[:500] + "... (truncated)"
		}
		span.SetAttributes(attribute.String(dbStatementKey, sql))
	}
	if db.RowsAffected > 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
	}
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}

func tableName(db *gorm.DB) string {
	if db.Statement.Table != "" {
		return db.Statement.Table
	}
	return "unknown"
}
