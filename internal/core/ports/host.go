package ports

import (
	"context"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// Host 定義經濟核心對遊戲伺服器主機的需求。
// 核心層只定義介面，具體實作 (websocket bridge, in-memory fake) 由基礎設施層負責。
//
//go:generate mockgen -destination=../../../test/mocks/core/ports/mock_host.go -package=mock_ports github.com/Inxects1/omeggabucks/internal/core/ports Host
type Host interface {
	// GetPlayer 依名稱或穩定 ID 查詢線上玩家
	// 查無玩家時回傳 domain.ErrPlayerNotFound
	GetPlayer(ctx context.Context, identifier string) (*domain.Player, error)

	// GetPlayerPosition 查詢玩家目前的世界座標
	GetPlayerPosition(ctx context.Context, playerID string) (domain.Position, error)

	// Whisper 發送私訊給指定玩家
	Whisper(ctx context.Context, playerID string, text string) error

	// Broadcast 對全伺服器廣播訊息
	Broadcast(ctx context.Context, text string) error
}
