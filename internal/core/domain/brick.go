package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BrickType 定義互動磚塊的種類
type BrickType string

const (
	// BrickShop 商店磚塊：扣買家 Price，入帳給 OwnerID
	BrickShop BrickType = "shop"
	// BrickATMGive 提款磚塊：無條件給玩家 Amount
	BrickATMGive BrickType = "atm-give"
	// BrickATMTake 存款磚塊：由玩家扣除 Amount (餘額不足則拒絕)
	BrickATMTake BrickType = "atm-take"
)

// Brick 代表一個綁定在世界座標上的互動磚塊設定。
// 以標準鍵 "x,y,z" 存放於 BrickRegistry，每個座標至多一筆。
type Brick struct {
	Type    BrickType       `json:"type"`
	ItemID  string          `json:"itemId,omitempty"` // 僅 shop 使用
	Price   decimal.Decimal `json:"price"`            // 僅 shop 使用，必為正
	Amount  decimal.Decimal `json:"amount"`           // atm-give / atm-take 使用，必為正
	OwnerID string          `json:"brickOwnerId"`     // 建立磚塊的管理員，商店收入入此帳
}

// Validate 檢查磚塊設定是否合法
//
// 回傳值:
//
//	error: 設定不合法時回傳 ErrInvalidAmount 的包裝錯誤
func (b Brick) Validate() error {
	switch b.Type {
	case BrickShop:
		if b.ItemID == "" {
			return fmt.Errorf("shop brick requires an item id: %w", ErrInvalidAmount)
		}
		if !b.Price.IsPositive() {
			return fmt.Errorf("shop price must be positive: %w", ErrInvalidAmount)
		}
	case BrickATMGive, BrickATMTake:
		if !b.Amount.IsPositive() {
			return fmt.Errorf("atm amount must be positive: %w", ErrInvalidAmount)
		}
	default:
		return fmt.Errorf("unknown brick type %q", b.Type)
	}
	return nil
}
