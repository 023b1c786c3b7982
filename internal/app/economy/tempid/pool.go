package tempid

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// 暫時 ID 的固定全集為 "01".."99"。
const poolSize = 99

var tokenPattern = regexp.MustCompile(`^\d{1,2}$`)

// Pool 管理玩家的暫時 2 位數 ID。
// 不變量：free 佇列與雙向 map 恰好劃分 {"01",...,"99"}——
// 每個 ID 要嘛在 free 裡，要嘛恰好綁定一位玩家。
// 純記憶體狀態，不持久化，行程重啟即重置。
type Pool struct {
	host   ports.Host
	logger *slog.Logger

	free     []string          // 未指派的 ID，隊首優先 (釋放的 ID 附加到隊尾)
	byPlayer map[string]string // playerID -> tempID
	byTempID map[string]string // tempID -> playerID
}

// NewPool 建立暫時 ID 池，初始 free 佇列為 "01".."99" 遞增
func NewPool(host ports.Host, logger *slog.Logger) *Pool {
	free := make([]string, 0, poolSize)
	for i := 1; i <= poolSize; i++ {
		free = append(free, fmt.Sprintf("%02d", i))
	}
	return &Pool{
		host:     host,
		logger:   logger,
		free:     free,
		byPlayer: make(map[string]string),
		byTempID: make(map[string]string),
	}
}

// AssignIfMissing 為玩家指派暫時 ID (若尚未持有)。
// 指派成功或池已耗盡都會私訊通知玩家；此操作永遠不讓呼叫方失敗。
func (p *Pool) AssignIfMissing(ctx context.Context, player *domain.Player) {
	if player == nil || player.ID == "" {
		p.logger.Warn("AssignIfMissing received invalid player")
		return
	}
	if _, ok := p.byPlayer[player.ID]; ok {
		return
	}

	if len(p.free) == 0 {
		p.logger.Warn("No temporary IDs available", "player", player.Name, "player_id", player.ID)
		p.whisper(ctx, player.ID, "Warning: No temporary IDs available. You can still use player names for commands.")
		return
	}

	tempID := p.free[0]
	p.free = p.free[1:]
	p.byPlayer[player.ID] = tempID
	p.byTempID[tempID] = player.ID

	p.logger.Info("Assigned temporary ID", "temp_id", tempID, "player", player.Name, "player_id", player.ID)
	p.whisper(ctx, player.ID,
		fmt.Sprintf("Your temporary in-game ID is: %s. You can use this with !pay %s <amount>.", tempID, tempID))
}

// Release 歸還玩家的暫時 ID；玩家沒有 ID 時為 no-op。
func (p *Pool) Release(playerID string) {
	tempID, ok := p.byPlayer[playerID]
	if !ok {
		return
	}
	delete(p.byPlayer, playerID)
	delete(p.byTempID, tempID)
	p.free = append(p.free, tempID)
	p.logger.Info("Released temporary ID", "temp_id", tempID, "player_id", playerID)
}

// Resolve 將 1~2 位數字 token 解析為玩家 ID。
// token 會先補零到 2 位；未綁定或格式不符回傳 false。
func (p *Pool) Resolve(token string) (string, bool) {
	if !tokenPattern.MatchString(token) {
		return "", false
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return "", false
	}
	playerID, ok := p.byTempID[fmt.Sprintf("%02d", n)]
	return playerID, ok
}

// IDOf 查詢玩家目前持有的暫時 ID
func (p *Pool) IDOf(playerID string) (string, bool) {
	tempID, ok := p.byPlayer[playerID]
	return tempID, ok
}

func (p *Pool) whisper(ctx context.Context, playerID string, text string) {
	if err := p.host.Whisper(ctx, playerID, text); err != nil {
		p.logger.Warn("Failed to whisper temp ID notice", "player_id", playerID, "error", err)
	}
}
