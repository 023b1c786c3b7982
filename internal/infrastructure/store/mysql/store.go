package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Inxects1/omeggabucks/internal/core/ports"
	mysqlpkg "github.com/Inxects1/omeggabucks/pkg/mysql"
)

// kvEntry 鍵值資料的資料表結構 (值以 JSON 存放)
type kvEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string    `gorm:"column:entry_value;type:longtext"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// ensure interface compliance
var _ ports.Store = (*Store)(nil)

// Store 以 MySQL 實作 ports.Store (單表鍵值，JSON 欄位)。
// 給沒有 Redis 可用的部署環境當替代後端。
type Store struct {
	client *mysqlpkg.Client
}

// NewStore 建立 MySQL 持久化層並確保資料表存在
func NewStore(client *mysqlpkg.Client) (*Store, error) {
	if err := client.DB().AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return &Store{client: client}, nil
}

// Get implements ports.Store.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	var entry kvEntry
	err := s.client.DB().WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrKeyNotFound
		}
		return err
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value for key %q: %w", key, err)
	}
	return nil
}

// Set implements ports.Store.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}
	entry := kvEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&entry).Error
}
