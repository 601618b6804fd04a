package database

import (
	"fmt"

	"recruiting-portal/config"
	"recruiting-portal/internal/global/sentry/tracing"
	"recruiting-portal/internal/model"
	"recruiting-portal/tools"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

func Init() {
	db, err := Open(mysql.Open(DSN(config.Get().Mysql)))
	tools.PanicOnErr(err)
	tools.PanicOnErr(Migrate(db))
	DB = db
}

// Open connects with the naming and logging conventions shared by the
// server and the tests.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	}
	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if tracing.IsEnabled() {
		if err := db.Use(tracing.NewGormPlugin()); err != nil {
			return nil, fmt.Errorf("register tracing plugin: %w", err)
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}

// DSN prefers DATABASE_URL and otherwise assembles one from the split
// settings.
func DSN(c config.Mysql) string {
	if c.DSN != "" {
		return c.DSN
	}
	cfg := mysqldriver.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host + ":" + c.Port
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
