// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"clinic-backoffice/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema migrated.
// The pool is capped at one connection so every query sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, ":memory:", 1)
}

// NewFileDB opens a SQLite file in a temp dir with a pool of several
// connections, so concurrent transactions really contend for the write lock.
func NewFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "clinic.db") + "?_pragma=busy_timeout(10000)"
	return open(t, dsn, 4)
}

func open(t *testing.T, dsn string, maxConns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.Patient{},
		&entity.Service{},
		&entity.Category{},
		&entity.OperatorChat{},
		&entity.ChatMessage{},
		&entity.Feedback{},
		&entity.Letter{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// NewLogger returns a logger that discards everything below panic level.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// CreatePatient inserts an account with the given role.
func CreatePatient(t *testing.T, db *gorm.DB, login string, role entity.Role) *entity.Patient {
	t.Helper()

	p := &entity.Patient{
		Login:    login,
		Email:    login + "@clinic.test",
		Password: "x",
		Name:     login,
		Role:     role,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create patient %s: %v", login, err)
	}
	return p
}
