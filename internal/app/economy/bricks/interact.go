package bricks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// Interact 對玩家執行磚塊效果。
// 餘額不足回傳 domain.ErrInsufficientFunds (扣款前檢查)，
// 帳本操作失敗回傳 domain.ErrTransactionFailed；兩者都已私訊玩家，
// 呼叫方不需再對玩家回報。
func (r *Registry) Interact(ctx context.Context, player *domain.Player, key string, brick domain.Brick) error {
	switch brick.Type {
	case domain.BrickShop:
		return r.interactShop(ctx, player, key, brick)
	case domain.BrickATMGive:
		return r.interactATMGive(ctx, player, key, brick)
	case domain.BrickATMTake:
		return r.interactATMTake(ctx, player, key, brick)
	default:
		r.whisper(ctx, player.ID, "Error: This interactive brick has an unknown configuration.")
		return fmt.Errorf("brick %s has unknown type %q", key, brick.Type)
	}
}

// interactShop 商店購買：先檢查餘額，扣買家、入帳給磚塊擁有者。
// 擁有者入帳失敗時回補買家 (best-effort 補償)。
func (r *Registry) interactShop(ctx context.Context, player *domain.Player, key string, brick domain.Brick) error {
	cost := brick.Price
	currency := r.opts.CurrencyName

	balance, err := r.ledger.Get(ctx, player.ID)
	if err != nil {
		r.whisper(ctx, player.ID, "Error: Could not retrieve your balance.")
		return err
	}
	if balance.LessThan(cost) {
		r.whisper(ctx, player.ID, fmt.Sprintf(
			"Error: You need %s %ss to buy %s. You have %s %ss.",
			cost, currency, brick.ItemID, balance, currency))
		return domain.ErrInsufficientFunds
	}

	if err := r.ledger.Remove(ctx, player.ID, cost); err != nil {
		r.whisper(ctx, player.ID, "Error: Transaction failed. Please try again.")
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	// TODO: 實際發放商品 (需要 Host 提供 giveItem API)
	newBalance, _ := r.ledger.Get(ctx, player.ID)
	r.whisper(ctx, player.ID, fmt.Sprintf(
		"Success: You bought %s for %s %ss. Your new balance: %s.",
		brick.ItemID, cost, currency, newBalance))
	r.broadcast(ctx, fmt.Sprintf("%s bought %s from a shop brick.", player.Name, brick.ItemID))
	r.logger.Info("Shop purchase", "player", player.Name, "item", brick.ItemID, "cost", cost, "brick", key)

	// 入帳給磚塊擁有者 (自己買自己的磚塊則跳過)
	if brick.OwnerID == "" || brick.OwnerID == player.ID {
		return nil
	}
	if err := r.ledger.Add(ctx, brick.OwnerID, cost); err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			// 擁有者不在線上，跳過入帳 (買家仍已付款)
			r.logger.Warn("Shop owner not online, skipping credit", "owner_id", brick.OwnerID, "brick", key)
			return nil
		}
		// 入帳失敗，回補買家
		r.logger.Error("Failed to credit shop owner, compensating buyer", "owner_id", brick.OwnerID, "error", err)
		if compErr := r.ledger.Add(ctx, player.ID, cost); compErr != nil {
			r.logger.Error("Compensation failed", "player_id", player.ID, "error", compErr)
		}
		r.whisper(ctx, player.ID, "Error: Transaction failed. Please try again.")
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	ownerBalance, _ := r.ledger.Get(ctx, brick.OwnerID)
	r.whisper(ctx, brick.OwnerID, fmt.Sprintf(
		"Your shop brick sold %s to %s for %s %ss. New balance: %s.",
		brick.ItemID, player.Name, cost, currency, ownerBalance))
	return nil
}

// interactATMGive 提款磚塊：無條件給玩家設定的金額
func (r *Registry) interactATMGive(ctx context.Context, player *domain.Player, key string, brick domain.Brick) error {
	currency := r.opts.CurrencyName

	if err := r.ledger.Add(ctx, player.ID, brick.Amount); err != nil {
		r.whisper(ctx, player.ID, "Error: Transaction failed. Please try again.")
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	newBalance, _ := r.ledger.Get(ctx, player.ID)
	r.whisper(ctx, player.ID, fmt.Sprintf(
		"Success: You received %s %ss from the ATM. Your new balance: %s.",
		brick.Amount, currency, newBalance))
	r.broadcast(ctx, fmt.Sprintf("%s used an ATM to get %s %ss.", player.Name, brick.Amount, currency))
	r.logger.Info("ATM give", "player", player.Name, "amount", brick.Amount, "brick", key)
	return nil
}

// interactATMTake 存款磚塊：先檢查餘額再扣款
func (r *Registry) interactATMTake(ctx context.Context, player *domain.Player, key string, brick domain.Brick) error {
	amount := brick.Amount
	currency := r.opts.CurrencyName

	balance, err := r.ledger.Get(ctx, player.ID)
	if err != nil {
		r.whisper(ctx, player.ID, "Error: Could not retrieve your balance.")
		return err
	}
	if balance.LessThan(amount) {
		r.whisper(ctx, player.ID, fmt.Sprintf(
			"Error: You need %s %ss to use this ATM. You only have %s %ss.",
			amount, currency, balance, currency))
		return domain.ErrInsufficientFunds
	}

	if err := r.ledger.Remove(ctx, player.ID, amount); err != nil {
		r.whisper(ctx, player.ID, "Error: Transaction failed. Please try again.")
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}

	newBalance, _ := r.ledger.Get(ctx, player.ID)
	r.whisper(ctx, player.ID, fmt.Sprintf(
		"Success: You paid %s %ss to the ATM. Your new balance: %s.",
		amount, currency, newBalance))
	r.broadcast(ctx, fmt.Sprintf("%s used an ATM to deposit %s %ss.", player.Name, amount, currency))
	r.logger.Info("ATM take", "player", player.Name, "amount", amount, "brick", key)
	return nil
}

func (r *Registry) whisper(ctx context.Context, playerID string, text string) {
	if err := r.host.Whisper(ctx, playerID, text); err != nil {
		r.logger.Warn("Failed to whisper", "player_id", playerID, "error", err)
	}
}

func (r *Registry) broadcast(ctx context.Context, text string) {
	if err := r.host.Broadcast(ctx, text); err != nil {
		r.logger.Warn("Failed to broadcast", "error", err)
	}
}
