package bridge

import (
	"encoding/json"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// 主機推送的事件名稱 (與 Omegga 插件介面一致)
const (
	eventJoin  = "join"
	eventLeave = "leave"

	eventCmdBucks    = "chatcmd:bucks"
	eventCmdBalance  = "chatcmd:balance"
	eventCmdPay      = "chatcmd:pay"
	eventCmdRequest  = "chatcmd:request"
	eventCmdHelp     = "chatcmd:help"
	eventCmdID       = "chatcmd:id"
	eventCmdInteract = "chatcmd:interact"
)

// request 是 bridge 送往主機的 RPC 請求
type request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// envelope 是主機送來的訊息：帶 ID 的是 RPC 回應，帶 Event 的是推送事件
type envelope struct {
	// RPC 回應欄位
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`

	// 事件欄位
	Event   string      `json:"event,omitempty"`
	Player  *wirePlayer `json:"player,omitempty"`  // join / leave
	Speaker string      `json:"speaker,omitempty"` // chatcmd:*
	Args    []string    `json:"args,omitempty"`    // chatcmd:*，斷詞層已處理引號
}

// wirePlayer 是主機回傳的玩家資料
type wirePlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

func (p *wirePlayer) toDomain() *domain.Player {
	if p == nil {
		return nil
	}
	return &domain.Player{ID: p.ID, Name: p.Name, IsHost: p.IsHost}
}
