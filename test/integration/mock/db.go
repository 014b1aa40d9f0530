// Package mock provides test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db wraps a shared in-memory sqlite database for integration scenarios.
type Db struct {
	conn   *gorm.DB
	models []any
}

// NewDb opens the shared in-memory database and migrates the given models.
// The connection is created once per test process; scenarios isolate
// themselves with Reset.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every scenario on the same in-memory schema.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	return &Db{conn: conn, models: models}
}

// Conn returns the gorm connection.
func (d *Db) Conn() *gorm.DB {
	return d.conn
}

// Reset removes all rows so the next scenario starts clean.
func (d *Db) Reset() error {
	for _, model := range d.models {
		if err := d.conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", model, err)
		}
	}
	return nil
}
