package domain

import "errors"

// 定義經濟核心通用的錯誤
var (
	// ErrInvalidAmount 金額非法 (非數字、零或負數，視操作而定)
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPlayerNotFound 識別符無法解析為任何玩家 (包含未綁定的暫時 ID)
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInsufficientFunds 餘額不足 (業務規則，於扣款前檢查)
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBrickNotFound 指定座標沒有互動磚塊
	ErrBrickNotFound = errors.New("interactive brick not found")

	// ErrTransactionFailed 帳本操作本身失敗的後備錯誤
	ErrTransactionFailed = errors.New("transaction failed")
)
