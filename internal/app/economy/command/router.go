package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Inxects1/omeggabucks/internal/app/economy/bricks"
	"github.com/Inxects1/omeggabucks/internal/app/economy/ledger"
	"github.com/Inxects1/omeggabucks/internal/app/economy/tempid"
	"github.com/Inxects1/omeggabucks/internal/core/domain"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// Options 指令層的行為參數
type Options struct {
	CurrencyName           string
	DefaultStartingBalance decimal.Decimal
	InteractRadius         float64
}

// Router 把聊天指令事件分派給帳本、暫時 ID 池與磚塊註冊表。
// 它只暴露具名的 handler 方法，不直接呼叫 Host 的事件訂閱 API——
// 由基礎設施層 (host bridge) 負責把實際事件綁定到這些方法，
// 測試時可以直接呼叫。每個 handler 回傳 "已處理" 訊號且從不把
// 錯誤往 Host 傳遞：所有失敗都以私訊回報並記錄於 log。
type Router struct {
	host     ports.Host
	ledger   *ledger.BalanceLedger
	pool     *tempid.Pool
	registry *bricks.Registry
	logger   *slog.Logger
	opts     Options
}

// NewRouter 建立指令路由器
func NewRouter(host ports.Host, lgr *ledger.BalanceLedger, pool *tempid.Pool, registry *bricks.Registry, logger *slog.Logger, opts Options) *Router {
	if opts.CurrencyName == "" {
		opts.CurrencyName = "Bucks"
	}
	if opts.InteractRadius <= 0 {
		opts.InteractRadius = 3
	}
	return &Router{
		host:     host,
		ledger:   lgr,
		pool:     pool,
		registry: registry,
		logger:   logger,
		opts:     opts,
	}
}

// HandleJoin 玩家加入：指派暫時 ID，首次加入則初始化餘額並歡迎
func (r *Router) HandleJoin(ctx context.Context, player *domain.Player) {
	if player == nil || player.ID == "" {
		r.logger.Warn("HandleJoin received invalid player")
		return
	}

	r.pool.AssignIfMissing(ctx, player)

	if r.ledger.HasAccount(player.ID) {
		return
	}
	if err := r.ledger.Set(ctx, player.ID, r.opts.DefaultStartingBalance); err != nil {
		r.logger.Error("Failed to initialize balance", "player_id", player.ID, "error", err)
		return
	}
	r.whisper(ctx, player.ID, fmt.Sprintf("Welcome! You received %s %ss.",
		r.opts.DefaultStartingBalance, r.opts.CurrencyName))
	r.logger.Info("New player initialized",
		"player", player.Name, "player_id", player.ID, "balance", r.opts.DefaultStartingBalance)
}

// HandleLeave 玩家離開：釋放暫時 ID
func (r *Router) HandleLeave(ctx context.Context, player *domain.Player) {
	if player == nil || player.ID == "" {
		r.logger.Warn("HandleLeave received invalid player")
		return
	}
	r.pool.Release(player.ID)
}

// HandleBalance 處理 !balance：查詢自己的餘額
func (r *Router) HandleBalance(ctx context.Context, speakerName string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}

	balance, err := r.ledger.Get(ctx, speaker.ID)
	if err != nil {
		r.whisper(ctx, speaker.ID, "Error: Could not retrieve your balance.")
		r.logger.Error("Could not retrieve balance", "player", speaker.Name, "error", err)
		return true
	}
	r.whisper(ctx, speaker.ID, fmt.Sprintf("You have %s %ss.", balance, r.opts.CurrencyName))
	return true
}

// HandleID 處理 !id：顯示自己的暫時 ID
func (r *Router) HandleID(ctx context.Context, speakerName string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}

	tempID, ok := r.pool.IDOf(speaker.ID)
	if !ok {
		r.whisper(ctx, speaker.ID, "Error: Could not assign a temporary ID at this time. All IDs may be in use.")
		return true
	}
	r.whisper(ctx, speaker.ID, fmt.Sprintf("Your temporary in-game ID is: %s.", tempID))
	r.whisper(ctx, speaker.ID, fmt.Sprintf("You can use this with commands like !pay %s <amount>.", tempID))
	return true
}

// HandleHelp 處理 !help：玩家指令說明
func (r *Router) HandleHelp(ctx context.Context, speakerName string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}

	lines := []string{
		"OmeggaBucks Player Commands:",
		"  !balance: Check your current balance.",
		"  !id: Show your temporary in-game ID.",
		`  !pay <"player name"/id> <amount> [reason]: Send money to another player.`,
		`  !request <"player name"/id> <amount> [reason]: Request money from another player.`,
		"  Use quotes for player names with spaces, or their 2-digit ID.",
		"  For admin commands, type !bucks.",
	}
	for _, line := range lines {
		r.whisper(ctx, speaker.ID, line)
	}
	return true
}

// speaker 解析發話者並指派暫時 ID；解析失敗時記錄並回傳 nil (指令直接忽略)
func (r *Router) speaker(ctx context.Context, speakerName string) *domain.Player {
	player, err := r.host.GetPlayer(ctx, speakerName)
	if err != nil || player == nil || player.ID == "" {
		r.logger.Warn("Could not find player object for speaker, ignoring command",
			"speaker", speakerName, "error", err)
		return nil
	}
	r.pool.AssignIfMissing(ctx, player)
	return player
}

func (r *Router) whisper(ctx context.Context, playerID string, text string) {
	if err := r.host.Whisper(ctx, playerID, text); err != nil {
		r.logger.Warn("Failed to whisper", "player_id", playerID, "error", err)
	}
}

func (r *Router) broadcast(ctx context.Context, text string) {
	if err := r.host.Broadcast(ctx, text); err != nil {
		r.logger.Warn("Failed to broadcast", "error", err)
	}
}
