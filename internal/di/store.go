package di

import (
	"fmt"

	"github.com/Inxects1/omeggabucks/internal/config"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
	mysqlStore "github.com/Inxects1/omeggabucks/internal/infrastructure/store/mysql"
	redisStore "github.com/Inxects1/omeggabucks/internal/infrastructure/store/redis"
	mysqlpkg "github.com/Inxects1/omeggabucks/pkg/mysql"
	redispkg "github.com/Inxects1/omeggabucks/pkg/redis"
)

// ProvideStore 依設定選擇持久化後端 (redis 預設 | mysql)
//
// 回傳值:
//
//	ports.Store: 持久化層實例
//	func(): 釋放底層連線的清理函式
//	error: 連線或初始化失敗時回傳錯誤
func ProvideStore(cfg *config.Config) (ports.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMySQL:
		client, err := mysqlpkg.NewClient(mysqlpkg.Config{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			DBName:   cfg.MySQL.DBName,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("mysql init failed: %w", err)
		}
		store, err := mysqlStore.NewStore(client)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("mysql store init failed: %w", err)
		}
		return store, func() { client.Close() }, nil

	default: // config 驗證過，只剩 redis
		client, err := redispkg.NewClient(redispkg.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis init failed: %w", err)
		}
		return redisStore.NewStore(client), func() { client.Close() }, nil
	}
}
