package ports

import "context"

// Store 定義字串鍵值持久化的介面。
// 帳本與磚塊註冊表各以一個固定鍵存放整張 map (write-through 全量覆寫)。
//
//go:generate mockgen -destination=../../../test/mocks/core/ports/mock_store.go -package=mock_ports github.com/Inxects1/omeggabucks/internal/core/ports Store
type Store interface {
	// Get 讀取指定鍵並反序列化至 dest (必須是指標)
	// 鍵不存在時回傳 ErrKeyNotFound
	Get(ctx context.Context, key string, dest any) error

	// Set 序列化 value 並覆寫指定鍵
	Set(ctx context.Context, key string, value any) error
}

// 持久化用的固定鍵
const (
	// KeyPlayerBalances 玩家餘額 map 的存放鍵
	KeyPlayerBalances = "player_balances"

	// KeyInteractiveBricks 互動磚塊 map 的存放鍵
	KeyInteractiveBricks = "interactive_bricks"
)
