package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// BalanceLedger 獨佔玩家餘額 map，維護「餘額永不為負」的不變量。
// 每次成功變更都會把整張 map 全量寫回 Store (write-through)。
// Host 在這裡只用來把識別符解析成穩定的玩家 ID。
type BalanceLedger struct {
	host   ports.Host
	store  ports.Store
	logger *slog.Logger

	balances map[string]decimal.Decimal
}

// NewBalanceLedger 建立帳本實例 (尚未載入資料，請先呼叫 Load)
func NewBalanceLedger(host ports.Host, store ports.Store, logger *slog.Logger) *BalanceLedger {
	return &BalanceLedger{
		host:     host,
		store:    store,
		logger:   logger,
		balances: make(map[string]decimal.Decimal),
	}
}

// Load 從 Store 載入餘額 map，啟動時呼叫一次。
// 鍵不存在視為全新伺服器，使用空 map。
func (l *BalanceLedger) Load(ctx context.Context) error {
	balances := make(map[string]decimal.Decimal)
	err := l.store.Get(ctx, ports.KeyPlayerBalances, &balances)
	if err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		return fmt.Errorf("failed to load balances: %w", err)
	}
	l.balances = balances
	l.logger.Info("Loaded player balances", "count", len(balances))
	return nil
}

// Get 取得指定玩家的餘額
// 識別符無法解析時回傳 domain.ErrPlayerNotFound；沒有記錄的玩家視為 0。
func (l *BalanceLedger) Get(ctx context.Context, identifier string) (decimal.Decimal, error) {
	player, err := l.resolve(ctx, identifier)
	if err != nil {
		return decimal.Zero, err
	}
	return l.balances[player.ID], nil
}

// Set 直接覆寫玩家餘額並同步持久化
// amount 為負時回傳 domain.ErrInvalidAmount。
// 持久化失敗時還原記憶體中的值：失敗的變更必須是完整的 no-op，
// 否則帳本會與 Store 分歧 (補償邏輯也會因此留下幽靈餘額)。
func (l *BalanceLedger) Set(ctx context.Context, identifier string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("set balance to %s: %w", amount, domain.ErrInvalidAmount)
	}
	player, err := l.resolve(ctx, identifier)
	if err != nil {
		return err
	}

	prev, existed := l.balances[player.ID]
	l.balances[player.ID] = amount
	if err := l.persist(ctx); err != nil {
		if existed {
			l.balances[player.ID] = prev
		} else {
			delete(l.balances, player.ID)
		}
		return err
	}
	l.logger.Info("Balance set", "player_id", player.ID, "balance", amount)
	return nil
}

// Add 增加玩家餘額 (amount 必須為正)
func (l *BalanceLedger) Add(ctx context.Context, identifier string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("add %s: %w", amount, domain.ErrInvalidAmount)
	}
	current, err := l.Get(ctx, identifier)
	if err != nil {
		return err
	}
	return l.Set(ctx, identifier, current.Add(amount))
}

// Remove 扣除玩家餘額 (amount 必須為正)，結果以 0 為下限。
// 扣款不會因餘額不足而失敗；需要拒絕透支的呼叫方 (例如轉帳) 必須先自行檢查餘額。
func (l *BalanceLedger) Remove(ctx context.Context, identifier string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("remove %s: %w", amount, domain.ErrInvalidAmount)
	}
	current, err := l.Get(ctx, identifier)
	if err != nil {
		return err
	}
	next := current.Sub(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	return l.Set(ctx, identifier, next)
}

// HasAccount 檢查玩家是否已有餘額記錄 (加入時的初始化判斷用)
func (l *BalanceLedger) HasAccount(playerID string) bool {
	_, ok := l.balances[playerID]
	return ok
}

func (l *BalanceLedger) resolve(ctx context.Context, identifier string) (*domain.Player, error) {
	player, err := l.host.GetPlayer(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to resolve player %q: %w", identifier, err)
	}
	return player, nil
}

func (l *BalanceLedger) persist(ctx context.Context) error {
	if err := l.store.Set(ctx, ports.KeyPlayerBalances, l.balances); err != nil {
		l.logger.Error("Failed to persist balances", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}
