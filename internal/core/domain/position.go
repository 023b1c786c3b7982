package domain

import (
	"fmt"
	"math"
)

// Position 代表世界座標 (由 Host 回報，單位與 Host 相同)。
type Position struct {
	X float64
	Y float64
	Z float64
}

// DistSq 計算與另一座標的歐氏距離平方。
// 近接判定只需要比大小，省去開根號。
func (p Position) DistSq(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// BrickKey 將座標轉換為磚塊註冊表的標準鍵。
// 各軸四捨五入到最接近的整數 (0.5 遠離零方向)，格式為 "x,y,z"。
func BrickKey(x, y, z float64) string {
	return fmt.Sprintf("%d,%d,%d", roundCoord(x), roundCoord(y), roundCoord(z))
}

// ParseBrickKey 將標準鍵還原為座標，供近接掃描使用。
//
// 回傳值:
//
//	Position: 磚塊中心座標
//	error: 鍵格式不合法時回傳錯誤
func ParseBrickKey(key string) (Position, error) {
	var x, y, z int64
	if _, err := fmt.Sscanf(key, "%d,%d,%d", &x, &y, &z); err != nil {
		return Position{}, fmt.Errorf("invalid brick key %q: %w", key, err)
	}
	return Position{X: float64(x), Y: float64(y), Z: float64(z)}, nil
}

func roundCoord(v float64) int64 {
	// math.Round 即為 half-away-from-zero
	return int64(math.Round(v))
}
