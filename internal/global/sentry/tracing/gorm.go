package tracing

import (
	"errors"
	"time"

	"recruiting-portal/config"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormPlugin opens a span around every gorm operation whose statement
// context carries a Sentry span.
type GormPlugin struct {
	slowThreshold time.Duration
}

func NewGormPlugin() *GormPlugin {
	ms := config.Get().Sentry.Tracing.DBSlowThresholdMs
	return &GormPlugin{slowThreshold: time.Duration(ms) * time.Millisecond}
}

func (p *GormPlugin) Name() string {
	return "SentryTracingPlugin"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register(callbackPrefix+":before_create", p.before("db.sql.create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register(callbackPrefix+":before_query", p.before("db.sql.query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register(callbackPrefix+":before_update", p.before("db.sql.update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register(callbackPrefix+":before_delete", p.before("db.sql.delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register(callbackPrefix+":before_row", p.before("db.sql.row")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register(callbackPrefix+":before_raw", p.before("db.sql.raw")); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register(callbackPrefix+":after_create", p.after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register(callbackPrefix+":after_query", p.after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(callbackPrefix+":after_update", p.after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register(callbackPrefix+":after_delete", p.after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register(callbackPrefix+":after_row", p.after); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register(callbackPrefix+":after_raw", p.after)
}

func (p *GormPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		span := StartSpan(db.Statement.Context, operation, table)
		if span == nil {
			return
		}
		span.SetData("db.system", "mysql")
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	start, _ := startVal.(time.Time)
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, _ := spanVal.(*sentry.Span)
	if span != nil {
		span.SetData("db.rows_affected", db.RowsAffected)
	}
	err := db.Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	Finish(span, err, time.Since(start), p.slowThreshold)
}
