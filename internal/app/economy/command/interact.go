package command

import (
	"context"
)

// HandleInteract 處理 !interact：以玩家當前座標解析最近的互動磚塊並執行效果。
// 磚塊的 Touch Component 設定為 On Touched -> Execute Command -> !interact，
// 近接判定是真實碰撞事件的替代品。
func (r *Router) HandleInteract(ctx context.Context, speakerName string) bool {
	speaker := r.speaker(ctx, speakerName)
	if speaker == nil {
		return true
	}

	pos, err := r.host.GetPlayerPosition(ctx, speaker.ID)
	if err != nil {
		r.whisper(ctx, speaker.ID, "Error: Could not determine your position.")
		r.logger.Warn("Could not determine player position", "player", speaker.Name, "error", err)
		return true
	}

	key, brick, found := r.registry.FindNearest(pos, r.opts.InteractRadius)
	if !found {
		r.whisper(ctx, speaker.ID, "Error: You are not near an interactive currency brick.")
		return true
	}

	// Interact 內部已對玩家回報成功與失敗，這裡只記錄
	if err := r.registry.Interact(ctx, speaker, key, brick); err != nil {
		r.logger.Warn("Brick interaction failed",
			"player", speaker.Name, "brick", key, "type", brick.Type, "error", err)
	}
	return true
}
