package command

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// transferArgs 是 <target> <amount> [reason] 文法的解析結果
type transferArgs struct {
	Target string
	Amount decimal.Decimal
	Reason string
}

// parseTransferArgs 解析 <target> <amount> [reason]。
// 金額是由右往左第一個可解析為數字的 token；它左邊的 token 以空白
// 接回成目標識別符 (斷詞層已處理引號)，右邊的 token 成為原因字串。
func parseTransferArgs(args []string) (transferArgs, bool) {
	amountIdx := -1
	for i := len(args) - 1; i >= 0; i-- {
		if _, err := decimal.NewFromString(args[i]); err == nil {
			amountIdx = i
			break
		}
	}
	if amountIdx == -1 {
		return transferArgs{}, false
	}

	amount, _ := decimal.NewFromString(args[amountIdx])
	target := strings.TrimSpace(strings.Join(args[:amountIdx], " "))
	if target == "" {
		return transferArgs{}, false
	}
	reason := strings.TrimSpace(strings.Join(args[amountIdx+1:], " "))
	if reason == "" {
		reason = "No reason provided"
	}
	return transferArgs{Target: target, Amount: amount, Reason: reason}, true
}

// resolveTarget 把目標識別符解析成玩家：先問 Host (名稱或穩定 ID)，
// 查不到再嘗試 1~2 位數的暫時 ID。
func (r *Router) resolveTarget(ctx context.Context, identifier string) (*domain.Player, error) {
	player, err := r.host.GetPlayer(ctx, identifier)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, err
	}

	if playerID, ok := r.pool.Resolve(identifier); ok {
		return r.host.GetPlayer(ctx, playerID)
	}
	return nil, domain.ErrPlayerNotFound
}
