package savestore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/example/game-save-demo/domain/gamesave"
)

// SaveBlob is one stored blob row.
type SaveBlob struct {
	PlayerID    string `gorm:"primaryKey;size:64"`
	Container   string `gorm:"primaryKey;size:256"`
	Name        string `gorm:"primaryKey;size:64"`
	Data        []byte `gorm:"not null"`
	DisplayName string `gorm:"size:256"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (SaveBlob) TableName() string {
	return "save_blobs"
}

// GormBackend stores blobs in the save_blobs table through GORM.
type GormBackend struct {
	db *gorm.DB
}

var _ Backend = (*GormBackend)(nil)

// OpenSQLite opens the SQLite database at path with warnings-only logging.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps a :memory: database shared across calls.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// NewGormBackend migrates the schema and returns the backend.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&SaveBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Kind() string { return BackendSQLite }

func (b *GormBackend) Submit(ctx context.Context, playerID, container, displayName string, blobs gamesave.Blobs) error {
	if len(blobs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]SaveBlob, 0, len(blobs))
	for _, name := range sortedKeys(blobs) {
		rows = append(rows, SaveBlob{
			PlayerID:    playerID,
			Container:   container,
			Name:        name,
			Data:        blobs[name],
			DisplayName: displayName,
			UpdatedAt:   now,
		})
	}

	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "container"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "display_name", "updated_at"}),
		}).Create(&rows)
		if result.Error != nil {
			return fmt.Errorf("failed to upsert blobs: %w", result.Error)
		}
		return nil
	})
}

func (b *GormBackend) Get(ctx context.Context, playerID, container string, keys []string) (gamesave.Blobs, error) {
	blobs := make(gamesave.Blobs, len(keys))
	if len(keys) == 0 {
		return blobs, nil
	}
	var rows []SaveBlob
	result := b.db.WithContext(ctx).
		Where("player_id = ? AND container = ? AND name IN ?", playerID, container, keys).
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get blobs: %w", result.Error)
	}
	for _, row := range rows {
		blobs[row.Name] = row.Data
	}
	return blobs, nil
}

func (b *GormBackend) Delete(ctx context.Context, playerID, container string) error {
	result := b.db.WithContext(ctx).
		Where("player_id = ? AND container = ?", playerID, container).
		Delete(&SaveBlob{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete container: %w", result.Error)
	}
	return nil
}

func (b *GormBackend) Usage(ctx context.Context, playerID string) (int64, error) {
	var total int64
	result := b.db.WithContext(ctx).Model(&SaveBlob{}).
		Where("player_id = ?", playerID).
		Select("COALESCE(SUM(LENGTH(data)), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to compute usage: %w", result.Error)
	}
	return total, nil
}

func (b *GormBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
