package domain

// Player 代表連線中的一位玩家。
// 這是最基礎的資料結構，用於在各個服務層之間傳遞玩家資訊。
// 注意：此處不包含 Balance (餘額)，餘額操作請透過 ledger.BalanceLedger。
type Player struct {
	ID     string // 玩家唯一標識符 (由 Host 指派的穩定 ID)
	Name   string // 玩家顯示名稱
	IsHost bool   // 是否為伺服器主持人 (setupbrick 等管理指令的權限依據)
}
