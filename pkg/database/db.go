package database

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed cache slots. There is no versioning: a new upload overwrites the
// previous table.
const (
	ScheduleTable = "schedule"
	NameMapTable  = "name_map"
)

// CachedTable persists the last-ingested table for a fixed slot name so the
// schedule and name mapping survive restarts.
type CachedTable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Payload   []byte    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "statsbot.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&CachedTable{})

	return db
}

// SaveTable overwrites the cached table for the given slot using a
// single-query upsert (supported by both Postgres and SQLite).
func SaveTable(db *gorm.DB, name string, t *models.Table) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"payload":    payload,
			"updated_at": time.Now(),
		}),
	}).Create(&CachedTable{
		Name:    name,
		Payload: payload,
	}).Error
}

// LoadTable returns the last cached table for the slot, or an empty table
// when nothing was ever uploaded.
func LoadTable(db *gorm.DB, name string) (*models.Table, error) {
	var cached CachedTable
	if err := db.Where("name = ?", name).First(&cached).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewTable(nil), nil
		}
		return nil, err
	}
	var t models.Table
	if err := json.Unmarshal(cached.Payload, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
