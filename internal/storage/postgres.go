package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvRecord is one persisted collection. The table holds a handful of rows
// (one per storage key), each value a whole JSON document.
type kvRecord struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvRecord) TableName() string {
	return "kv_records"
}

// Postgres is a Store backed by a single-table key-value schema.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres connects to the database named in dsn, creating it and the
// backing table when absent.
func NewPostgres(dsn string) (*Postgres, error) {
	if err := ensureDatabase(dsn); err != nil {
		return nil, err
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := conn.AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}

	return &Postgres{db: conn}, nil
}

func (p *Postgres) Get(key string) ([]byte, error) {
	var record kvRecord
	if err := p.db.Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record.Value, nil
}

func (p *Postgres) Set(key string, value []byte) error {
	record := kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&record).Error
}

// ensureDatabase creates the target database if the DSN points at a
// postgres URL whose database does not exist yet.
func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
