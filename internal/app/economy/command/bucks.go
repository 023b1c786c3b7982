package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// HandleBucks 處理 !bucks 管理指令：
//
//	!bucks                       管理指令說明
//	!bucks check [target]        查餘額 (無 target 查自己)
//	!bucks add <target> <amount> [reason]
//	!bucks remove <target> <amount> [reason]
//	!bucks set <target> <amount> [reason]
//	!bucks setupbrick <x> <y> <z> <type> [args...]
func (r *Router) HandleBucks(ctx context.Context, speakerName string, args []string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}

	if len(args) == 0 {
		r.whisperAdminHelp(ctx, speaker.ID)
		return true
	}

	sub := strings.ToLower(args[0])
	rest := args[1:]

	switch sub {
	case "check":
		return r.bucksCheck(ctx, speaker, rest)
	case "setupbrick":
		return r.bucksSetupBrick(ctx, speaker, rest)
	case "add", "remove", "set":
		return r.bucksAdjust(ctx, speaker, sub, rest)
	default:
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Unknown !bucks subcommand: %q.", sub))
		r.whisper(ctx, speaker.ID, "  Use !bucks for a list of subcommands.")
		return true
	}
}

func (r *Router) bucksCheck(ctx context.Context, speaker *domain.Player, args []string) bool {
	target := speaker
	identifier := strings.TrimSpace(strings.Join(args, " "))
	if identifier != "" {
		resolved, err := r.resolveTarget(ctx, identifier)
		if err != nil {
			r.whisperTargetNotFound(ctx, speaker.ID, identifier)
			return true
		}
		target = resolved
	}

	balance, err := r.ledger.Get(ctx, target.ID)
	if err != nil {
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Could not retrieve balance for %s.", target.Name))
		r.logger.Error("Could not retrieve balance", "target", target.Name, "error", err)
		return true
	}
	r.whisper(ctx, speaker.ID, fmt.Sprintf("%s has %s %ss.", target.Name, balance, r.opts.CurrencyName))
	r.logger.Info("Balance checked", "by", speaker.Name, "target", target.Name, "balance", balance)
	return true
}

func (r *Router) bucksAdjust(ctx context.Context, speaker *domain.Player, sub string, args []string) bool {
	currency := r.opts.CurrencyName

	parsed, ok := parseTransferArgs(args)
	if !ok {
		r.whisperAdjustUsage(ctx, speaker.ID, sub)
		return true
	}
	// set 允許 0 (歸零)，add/remove 必須為正
	if (sub == "set" && parsed.Amount.IsNegative()) || (sub != "set" && !parsed.Amount.IsPositive()) {
		r.whisperAdjustUsage(ctx, speaker.ID, sub)
		return true
	}

	target, err := r.resolveTarget(ctx, parsed.Target)
	if err != nil {
		r.whisperTargetNotFound(ctx, speaker.ID, parsed.Target)
		return true
	}

	var actionMessage string
	switch sub {
	case "add":
		err = r.ledger.Add(ctx, target.ID, parsed.Amount)
		actionMessage = fmt.Sprintf("added %s %ss to", parsed.Amount, currency)
	case "remove":
		err = r.ledger.Remove(ctx, target.ID, parsed.Amount)
		actionMessage = fmt.Sprintf("removed %s %ss from", parsed.Amount, currency)
	case "set":
		err = r.ledger.Set(ctx, target.ID, parsed.Amount)
		actionMessage = fmt.Sprintf("set %s's balance to %s %ss", target.Name, parsed.Amount, currency)
	}
	if err != nil {
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Failed to %s %s %ss for %s.",
			sub, parsed.Amount, currency, target.Name))
		r.logger.Error("Admin balance adjustment failed",
			"admin", speaker.Name, "sub", sub, "target", target.Name, "error", err)
		return true
	}

	newBalance, _ := r.ledger.Get(ctx, target.ID)
	if sub == "set" {
		r.whisper(ctx, speaker.ID, fmt.Sprintf("You %s. New balance: %s", actionMessage, newBalance))
		r.broadcast(ctx, fmt.Sprintf("%s %s. Reason: %q", speaker.Name, actionMessage, parsed.Reason))
	} else {
		r.whisper(ctx, speaker.ID, fmt.Sprintf("You %s %s's balance. New balance: %s",
			actionMessage, target.Name, newBalance))
		r.broadcast(ctx, fmt.Sprintf("%s %s %s's balance. Reason: %q",
			speaker.Name, actionMessage, target.Name, parsed.Reason))
	}
	r.logger.Info("Admin balance adjustment",
		"admin", speaker.Name, "sub", sub, "amount", parsed.Amount,
		"target", target.Name, "target_id", target.ID, "reason", parsed.Reason)
	return true
}

// bucksSetupBrick 處理 !bucks setupbrick <x> <y> <z> <type> [args...] (僅限主持人)
func (r *Router) bucksSetupBrick(ctx context.Context, speaker *domain.Player, args []string) bool {
	if !speaker.IsHost {
		r.whisper(ctx, speaker.ID, "Error: You do not have permission to set up interactive bricks.")
		return true
	}

	if len(args) < 4 {
		r.whisperSetupUsage(ctx, speaker.ID)
		return true
	}

	x, errX := strconv.ParseFloat(args[0], 64)
	y, errY := strconv.ParseFloat(args[1], 64)
	z, errZ := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil || errZ != nil {
		r.whisperSetupUsage(ctx, speaker.ID)
		return true
	}
	brickType := strings.ToLower(args[3])
	rest := args[4:]

	var brick domain.Brick
	var message string

	switch brickType {
	case "shop":
		if len(rest) < 2 {
			r.whisper(ctx, speaker.ID, fmt.Sprintf(
				"Usage: !bucks setupbrick %v %v %v shop <item_id> <price>", args[0], args[1], args[2]))
			return true
		}
		price, err := decimal.NewFromString(rest[1])
		if err != nil || !price.IsPositive() {
			r.whisper(ctx, speaker.ID, fmt.Sprintf(
				"Usage: !bucks setupbrick %v %v %v shop <item_id> <price>", args[0], args[1], args[2]))
			return true
		}
		brick = domain.Brick{Type: domain.BrickShop, ItemID: rest[0], Price: price, OwnerID: speaker.ID}
		message = fmt.Sprintf("Set up a shop brick at (%v, %v, %v) selling %s for %s %ss.",
			args[0], args[1], args[2], rest[0], price, r.opts.CurrencyName)

	case "atm-give", "atm-take":
		if len(rest) < 1 {
			r.whisper(ctx, speaker.ID, fmt.Sprintf(
				"Usage: !bucks setupbrick %v %v %v %s <amount>", args[0], args[1], args[2], brickType))
			return true
		}
		amount, err := decimal.NewFromString(rest[0])
		if err != nil || !amount.IsPositive() {
			r.whisper(ctx, speaker.ID, fmt.Sprintf(
				"Usage: !bucks setupbrick %v %v %v %s <amount>", args[0], args[1], args[2], brickType))
			return true
		}
		verb := "giving"
		kind := domain.BrickATMGive
		if brickType == "atm-take" {
			verb = "taking"
			kind = domain.BrickATMTake
		}
		brick = domain.Brick{Type: kind, Amount: amount, OwnerID: speaker.ID}
		message = fmt.Sprintf("Set up an ATM brick at (%v, %v, %v) %s %s %ss.",
			args[0], args[1], args[2], verb, amount, r.opts.CurrencyName)

	case "remove":
		if err := r.registry.Remove(ctx, x, y, z); err != nil {
			if errors.Is(err, domain.ErrBrickNotFound) {
				r.whisper(ctx, speaker.ID, fmt.Sprintf(
					"Error: No interactive currency brick found at (%v, %v, %v).", args[0], args[1], args[2]))
			} else {
				r.whisper(ctx, speaker.ID, "Error: Failed to remove the interactive brick.")
				r.logger.Error("Brick removal failed", "admin", speaker.Name, "error", err)
			}
			return true
		}
		r.whisper(ctx, speaker.ID, fmt.Sprintf(
			"Success: Removed interactive functionality from brick at (%v, %v, %v).", args[0], args[1], args[2]))
		r.logger.Info("Interactive brick removed by admin", "admin", speaker.Name)
		return true

	default:
		r.whisper(ctx, speaker.ID, fmt.Sprintf("Error: Unknown setup type %q.", brickType))
		r.whisper(ctx, speaker.ID, "  Available types: shop, atm-give, atm-take, remove.")
		return true
	}

	key, err := r.registry.Setup(ctx, x, y, z, brick)
	if err != nil {
		r.whisper(ctx, speaker.ID, "Error: Failed to set up the interactive brick.")
		r.logger.Error("Brick setup failed", "admin", speaker.Name, "error", err)
		return true
	}

	r.whisper(ctx, speaker.ID, "Success: "+message)
	r.whisper(ctx, speaker.ID, fmt.Sprintf("  Remember to add a Touch Component to the brick at (%v, %v, %v):", args[0], args[1], args[2]))
	r.whisper(ctx, speaker.ID, "  On Touched -> Execute Command -> !interact")
	r.logger.Info("Interactive brick set up by admin", "admin", speaker.Name, "key", key, "type", brick.Type)
	return true
}

func (r *Router) whisperAdminHelp(ctx context.Context, playerID string) {
	lines := []string{
		"OmeggaBucks Admin Commands:",
		"  !bucks check [player/id]: Check your or another player's balance.",
		`  !bucks add <"player name"/id> <amount> [reason]: Give money to a player (Admin Only).`,
		`  !bucks remove <"player name"/id> <amount> [reason]: Take money from a player (Admin Only).`,
		`  !bucks set <"player name"/id> <amount> [reason]: Set a player's balance (Admin Only).`,
		"  !bucks setupbrick <x> <y> <z> <type> ...: Create interactive shop/ATM bricks (Admin Only).",
		"  Use quotes for player names with spaces, or their 2-digit ID.",
		"  For player commands, use !help.",
	}
	for _, line := range lines {
		r.whisper(ctx, playerID, line)
	}
}

func (r *Router) whisperAdjustUsage(ctx context.Context, playerID string, sub string) {
	r.whisper(ctx, playerID, fmt.Sprintf(`Usage: !bucks %s <"player name"/id> <amount> [reason]`, sub))
	r.whisper(ctx, playerID, fmt.Sprintf(
		`  Example: !bucks %s "Player Name" 100 For reason or !bucks %s 42 50 For reason`, sub, sub))
}

func (r *Router) whisperSetupUsage(ctx context.Context, playerID string) {
	r.whisper(ctx, playerID, "Usage: !bucks setupbrick <x> <y> <z> <type> [item_id] [price/amount]")
	r.whisper(ctx, playerID, "  Example: !bucks setupbrick 0 0 0 shop sword 100 or !bucks setupbrick 50 20 10 atm-give 50")
	r.whisper(ctx, playerID, "  Use the coordinates of the center of the brick you want to make interactive.")
}

func (r *Router) whisperTargetNotFound(ctx context.Context, playerID string, identifier string) {
	r.whisper(ctx, playerID, fmt.Sprintf("Error: Player %q or ID %q not found.", identifier, identifier))
	r.whisper(ctx, playerID, "  Remember to use quotes for player names with spaces, or their 2-digit ID.")
}
