package command

import (
	"context"
	"fmt"
)

// HandlePay 處理 !pay <target> <amount> [reason]：玩家間轉帳。
// 轉帳協定：先檢查付款方餘額，再 Remove 付款方、Add 收款方；
// 後半段失敗時回補付款方 (best-effort 補償，兩步不具交易性是已知限制)。
func (r *Router) HandlePay(ctx context.Context, speakerName string, args []string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}
	currency := r.opts.CurrencyName

	parsed, ok := parseTransferArgs(args)
	if !ok || !parsed.Amount.IsPositive() {
		r.whisper(ctx, speaker.ID, `Usage: !pay <"player name"/id> <amount> [reason]`)
		r.whisper(ctx, speaker.ID, `  Example: !pay "Target Player" 50 For a job well done or !pay 42 25 For stuff`)
		r.whisper(ctx, speaker.ID, "  Use quotes for player names with spaces, or their 2-digit ID.")
		return true
	}

	senderBalance, err := r.ledger.Get(ctx, speaker.ID)
	if err != nil {
		r.whisper(ctx, speaker.ID, "Error: Could not retrieve your balance.")
		return true
	}
	if senderBalance.LessThan(parsed.Amount) {
		r.whisper(ctx, speaker.ID, fmt.Sprintf(
			"Error: You do not have enough %ss to send %s.", currency, parsed.Amount))
		r.whisper(ctx, speaker.ID, fmt.Sprintf(
			"  You currently have %s %ss.", senderBalance, currency))
		return true
	}

	target, err := r.resolveTarget(ctx, parsed.Target)
	if err != nil {
		r.whisperTargetNotFound(ctx, speaker.ID, parsed.Target)
		return true
	}
	if target.ID == speaker.ID {
		r.whisper(ctx, speaker.ID, "Error: You cannot pay yourself.")
		return true
	}

	if err := r.ledger.Remove(ctx, speaker.ID, parsed.Amount); err != nil {
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Failed to complete payment to %s.", target.Name))
		r.logger.Error("Payment debit failed", "sender", speaker.Name, "error", err)
		return true
	}
	if err := r.ledger.Add(ctx, target.ID, parsed.Amount); err != nil {
		// 收款失敗，回補付款方
		if compErr := r.ledger.Add(ctx, speaker.ID, parsed.Amount); compErr != nil {
			r.logger.Error("Payment compensation failed", "sender", speaker.Name, "error", compErr)
		} else {
			r.logger.Error("Payment credit failed, reverted sender's balance",
				"sender", speaker.Name, "target", target.Name, "error", err)
		}
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Failed to complete payment to %s.", target.Name))
		return true
	}

	senderNew, _ := r.ledger.Get(ctx, speaker.ID)
	targetNew, _ := r.ledger.Get(ctx, target.ID)
	r.whisper(ctx, speaker.ID, fmt.Sprintf("You sent %s %ss to %s. Your new balance: %s.",
		parsed.Amount, currency, target.Name, senderNew))
	r.whisper(ctx, target.ID, fmt.Sprintf("%s sent you %s %ss. Your new balance: %s.",
		speaker.Name, parsed.Amount, currency, targetNew))
	r.broadcast(ctx, fmt.Sprintf("%s paid %s %s %ss. Reason: %q",
		speaker.Name, target.Name, parsed.Amount, currency, parsed.Reason))
	r.logger.Info("Payment completed",
		"sender", speaker.Name, "target", target.Name, "amount", parsed.Amount, "reason", parsed.Reason)
	return true
}

// HandleRequest 處理 !request <target> <amount> [reason]：向對方請款。
// 只發送通知與 !pay 提示，不動帳本。
func (r *Router) HandleRequest(ctx context.Context, speakerName string, args []string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}
	currency := r.opts.CurrencyName

	parsed, ok := parseTransferArgs(args)
	if !ok || !parsed.Amount.IsPositive() {
		r.whisper(ctx, speaker.ID, `Usage: !request <"player name"/id> <amount> [reason]`)
		r.whisper(ctx, speaker.ID, `  Example: !request "Other Player" 25 For building materials or !request 05 10 For a brick`)
		r.whisper(ctx, speaker.ID, "  Use quotes for player names with spaces, or their 2-digit ID.")
		return true
	}

	target, err := r.resolveTarget(ctx, parsed.Target)
	if err != nil {
		r.whisperTargetNotFound(ctx, speaker.ID, parsed.Target)
		return true
	}
	if target.ID == speaker.ID {
		r.whisper(ctx, speaker.ID, "Error: You cannot request from yourself.")
		return true
	}

	r.whisper(ctx, speaker.ID, fmt.Sprintf("You requested %s %ss from %s.",
		parsed.Amount, currency, target.Name))
	r.whisper(ctx, target.ID, fmt.Sprintf("%s is requesting %s %ss from you. Reason: %q",
		speaker.Name, parsed.Amount, currency, parsed.Reason))

	payHint := fmt.Sprintf("To send the money, use: !pay %q %s %s", speaker.Name, parsed.Amount, parsed.Reason)
	if tempID, ok := r.pool.IDOf(speaker.ID); ok {
		payHint += fmt.Sprintf(" or !pay %s %s %s", tempID, parsed.Amount, parsed.Reason)
	}
	r.whisper(ctx, target.ID, payHint)
	r.logger.Info("Payment requested",
		"requester", speaker.Name, "target", target.Name, "amount", parsed.Amount, "reason", parsed.Reason)
	return true
}
