package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Inxects1/omeggabucks/internal/config"
	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

const defaultCallTimeout = 10 * time.Second

// EventHandler 是經濟核心暴露的具名 handler 集合。
// Bridge 把主機事件綁定到這些方法；核心不需要知道訂閱機制的存在。
type EventHandler interface {
	HandleJoin(ctx context.Context, player *domain.Player)
	HandleLeave(ctx context.Context, player *domain.Player)
	HandleBucks(ctx context.Context, speakerName string, args []string) bool
	HandleBalance(ctx context.Context, speakerName string) bool
	HandlePay(ctx context.Context, speakerName string, args []string) bool
	HandleRequest(ctx context.Context, speakerName string, args []string) bool
	HandleHelp(ctx context.Context, speakerName string) bool
	HandleID(ctx context.Context, speakerName string) bool
	HandleInteract(ctx context.Context, speakerName string) bool
}

// Bridge 透過 websocket 連上遊戲主機的插件介面：
// 對外送 RPC 請求 (getPlayer, whisper, broadcast...)，
// 對內接收主機推送的事件 (join, leave, chatcmd:*)。
//
// 事件由單一 dispatcher goroutine 依序處理——一次一個事件、
// handler 跑完才取下一個，核心元件因此不需要鎖。
// 讀取迴圈獨立於 dispatcher，handler 執行中發出的 RPC 回應
// 才不會被卡住。
type Bridge struct {
	conn    *websocket.Conn
	logger  *slog.Logger
	handler EventHandler

	callTimeout time.Duration

	writeMu sync.Mutex // websocket 單工寫入

	pendingMu sync.Mutex
	pending   map[string]chan envelope
}

// Dial 連線到主機 bridge 端點
//
// 參數:
//
//	cfg: config.HostConfig - bridge URL 與驗證 token
//	logger: *slog.Logger - 日誌實例
//
// 回傳值:
//
//	*Bridge: 已連線的 bridge (請接著呼叫 Bind 與 Run)
//	error: 連線失敗時回傳錯誤
func Dial(cfg config.HostConfig, logger *slog.Logger) (*Bridge, error) {
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host bridge at %s: %w", cfg.URL, err)
	}

	return &Bridge{
		conn:        conn,
		logger:      logger.With("component", "host_bridge"),
		callTimeout: defaultCallTimeout,
		pending:     make(map[string]chan envelope),
	}, nil
}

// Bind 綁定事件處理器，必須在 Run 之前呼叫
func (b *Bridge) Bind(handler EventHandler) {
	b.handler = handler
}

// Run 啟動事件迴圈 (blocking)。連線中斷時回傳錯誤。
func (b *Bridge) Run(ctx context.Context) error {
	if b.handler == nil {
		return fmt.Errorf("bridge has no event handler bound")
	}

	events := make(chan envelope, 64)

	// dispatcher：依序執行 handler
	done := make(chan struct{})
	go func() {
		defer close(done)
		for env := range events {
			b.dispatch(ctx, env)
		}
	}()

	// 讀取迴圈：回應交給等待者，事件排入佇列
	var readErr error
	for {
		var env envelope
		if err := b.conn.ReadJSON(&env); err != nil {
			readErr = fmt.Errorf("host bridge connection lost: %w", err)
			break
		}
		if env.ID != "" {
			b.deliver(env)
			continue
		}
		if env.Event != "" {
			events <- env
		}
	}

	close(events)
	<-done
	return readErr
}

// Close 關閉與主機的連線
func (b *Bridge) Close() error {
	return b.conn.Close()
}

func (b *Bridge) dispatch(ctx context.Context, env envelope) {
	switch env.Event {
	case eventJoin:
		b.handler.HandleJoin(ctx, env.Player.toDomain())
	case eventLeave:
		b.handler.HandleLeave(ctx, env.Player.toDomain())
	case eventCmdBucks:
		b.handler.HandleBucks(ctx, env.Speaker, env.Args)
	case eventCmdBalance:
		b.handler.HandleBalance(ctx, env.Speaker)
	case eventCmdPay:
		b.handler.HandlePay(ctx, env.Speaker, env.Args)
	case eventCmdRequest:
		b.handler.HandleRequest(ctx, env.Speaker, env.Args)
	case eventCmdHelp:
		b.handler.HandleHelp(ctx, env.Speaker)
	case eventCmdID:
		b.handler.HandleID(ctx, env.Speaker)
	case eventCmdInteract:
		b.handler.HandleInteract(ctx, env.Speaker)
	default:
		b.logger.Debug("Ignoring unknown host event", "event", env.Event)
	}
}

func (b *Bridge) deliver(env envelope) {
	b.pendingMu.Lock()
	ch, ok := b.pending[env.ID]
	b.pendingMu.Unlock()
	if !ok {
		b.logger.Warn("Received response for unknown request", "id", env.ID)
		return
	}
	ch <- env
}

// call 發送 RPC 請求並等待回應
func (b *Bridge) call(ctx context.Context, method string, params any) (result []byte, err error) {
	id := uuid.New().String()
	ch := make(chan envelope, 1)

	b.pendingMu.Lock()
	b.pending[id] = ch
	b.pendingMu.Unlock()
	defer func() {
		b.pendingMu.Lock()
		delete(b.pending, id)
		b.pendingMu.Unlock()
	}()

	b.writeMu.Lock()
	err = b.conn.WriteJSON(request{ID: id, Method: method, Params: params})
	b.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	select {
	case env := <-ch:
		if env.Error != "" {
			return nil, fmt.Errorf("host %s failed: %s", method, env.Error)
		}
		return env.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(b.callTimeout):
		return nil, fmt.Errorf("host %s timed out", method)
	}
}
