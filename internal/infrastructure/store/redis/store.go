package redis

import (
	"context"
	"fmt"

	"github.com/Inxects1/omeggabucks/internal/core/ports"
	"github.com/Inxects1/omeggabucks/pkg/redis"
)

// 插件資料統一放在同一個 namespace 下，避免與其他系統共用 Redis 時撞鍵
const keyPrefix = "omeggabucks:%s"

// Store 以 Redis 實作 ports.Store
type Store struct {
	rds *redis.Client
}

var _ ports.Store = (*Store)(nil)

// NewStore 建立 Redis 持久化層
func NewStore(client *redis.Client) *Store {
	return &Store{rds: client}
}

// Get implements ports.Store.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	err := s.rds.GetStruct(ctx, fmt.Sprintf(keyPrefix, key), dest)
	if err != nil {
		if redis.IsNil(err) {
			return ports.ErrKeyNotFound
		}
		return err
	}
	return nil
}

// Set implements ports.Store.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.rds.SetStruct(ctx, fmt.Sprintf(keyPrefix, key), value)
}
