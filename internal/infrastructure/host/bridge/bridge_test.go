package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inxects1/omeggabucks/internal/config"
	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

// recordingHandler 把收到的事件依序寫進 channel，供測試斷言
type recordingHandler struct {
	events chan string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan string, 16)}
}

func (h *recordingHandler) HandleJoin(_ context.Context, p *domain.Player) {
	h.events <- "join:" + p.ID
}
func (h *recordingHandler) HandleLeave(_ context.Context, p *domain.Player) {
	h.events <- "leave:" + p.ID
}
func (h *recordingHandler) HandleBucks(_ context.Context, speaker string, args []string) bool {
	h.events <- "bucks:" + speaker + ":" + strings.Join(args, ",")
	return true
}
func (h *recordingHandler) HandleBalance(_ context.Context, speaker string) bool {
	h.events <- "balance:" + speaker
	return true
}
func (h *recordingHandler) HandlePay(_ context.Context, speaker string, args []string) bool {
	h.events <- "pay:" + speaker + ":" + strings.Join(args, ",")
	return true
}
func (h *recordingHandler) HandleRequest(_ context.Context, speaker string, args []string) bool {
	h.events <- "request:" + speaker + ":" + strings.Join(args, ",")
	return true
}
func (h *recordingHandler) HandleHelp(_ context.Context, speaker string) bool {
	h.events <- "help:" + speaker
	return true
}
func (h *recordingHandler) HandleID(_ context.Context, speaker string) bool {
	h.events <- "id:" + speaker
	return true
}
func (h *recordingHandler) HandleInteract(_ context.Context, speaker string) bool {
	h.events <- "interact:" + speaker
	return true
}

func (h *recordingHandler) next(t *testing.T) string {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

// fakeHost 包一層 httptest.Server 並自行追蹤升級後的 websocket 連線：
// httptest 在連線被 hijack 後就不再追蹤，CloseClientConnections
// 碰不到 websocket 連線，必須自己記錄、自己關。
type fakeHost struct {
	*httptest.Server
	mu    sync.Mutex
	conns []*websocket.Conn
}

func (f *fakeHost) CloseClientConnections() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		c.Close()
	}
	f.Server.CloseClientConnections()
}

// fakeHostServer 模擬主機插件端點：回應 RPC 請求並可推送事件
func fakeHostServer(t *testing.T, wantToken string, push []envelope) *fakeHost {
	t.Helper()
	upgrader := websocket.Upgrader{}

	f := &fakeHost{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantToken != "" {
			got := r.Header.Get("Authorization")
			if got != "Bearer "+wantToken {
				t.Errorf("unexpected Authorization header: %q", got)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()

		for _, env := range push {
			if err := conn.WriteJSON(env); err != nil {
				return
			}
		}

		for {
			var req request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			resp := envelope{ID: req.ID}
			params, _ := req.Params.(map[string]any)

			switch req.Method {
			case "getPlayer":
				identifier, _ := params["identifier"].(string)
				if identifier == "Alice" || identifier == "alice1" {
					resp.Result = json.RawMessage(`{"id":"alice1","name":"Alice","isHost":false}`)
				} else {
					resp.Result = json.RawMessage(`null`)
				}
			case "getPlayerWorldPos":
				resp.Result = json.RawMessage(`[1.5,2.5,3.5]`)
			case "whisper", "broadcast":
				resp.Result = json.RawMessage(`true`)
			default:
				resp.Error = fmt.Sprintf("unknown method %q", req.Method)
			}
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	return f
}

func dialTestBridge(t *testing.T, server *fakeHost, token string, handler EventHandler) *Bridge {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	b, err := Dial(config.HostConfig{URL: url, Token: token}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	b.Bind(handler)
	return b
}

func TestBridge_Calls(t *testing.T) {
	server := fakeHostServer(t, "sekrit", nil)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := dialTestBridge(t, server, "sekrit", newRecordingHandler())
	go b.Run(ctx)

	t.Run("GetPlayer Known", func(t *testing.T) {
		player, err := b.GetPlayer(ctx, "Alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice1", player.ID)
		assert.Equal(t, "Alice", player.Name)
	})

	t.Run("GetPlayer Unknown", func(t *testing.T) {
		_, err := b.GetPlayer(ctx, "Stranger")
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("GetPlayerPosition", func(t *testing.T) {
		pos, err := b.GetPlayerPosition(ctx, "alice1")
		assert.NoError(t, err)
		assert.Equal(t, domain.Position{X: 1.5, Y: 2.5, Z: 3.5}, pos)
	})

	t.Run("Whisper And Broadcast", func(t *testing.T) {
		assert.NoError(t, b.Whisper(ctx, "alice1", "hello"))
		assert.NoError(t, b.Broadcast(ctx, "hello everyone"))
	})

	t.Run("Unknown Method Surfaces Host Error", func(t *testing.T) {
		_, err := b.call(ctx, "noSuchMethod", nil)
		assert.Error(t, err)
	})
}

func TestBridge_EventDispatch(t *testing.T) {
	push := []envelope{
		{Event: eventJoin, Player: &wirePlayer{ID: "p1", Name: "One"}},
		{Event: eventCmdPay, Speaker: "One", Args: []string{"Two", "50"}},
		{Event: eventCmdBalance, Speaker: "One"},
		{Event: eventLeave, Player: &wirePlayer{ID: "p1", Name: "One"}},
		{Event: "unknown:event"},
		{Event: eventCmdInteract, Speaker: "One"},
	}
	server := fakeHostServer(t, "", push)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := newRecordingHandler()
	b := dialTestBridge(t, server, "", handler)
	go b.Run(ctx)

	// 事件必須依推送順序逐一送達 (單一 dispatcher)
	assert.Equal(t, "join:p1", handler.next(t))
	assert.Equal(t, "pay:One:Two,50", handler.next(t))
	assert.Equal(t, "balance:One", handler.next(t))
	assert.Equal(t, "leave:p1", handler.next(t))
	assert.Equal(t, "interact:One", handler.next(t))
}

func TestBridge_RunRequiresHandler(t *testing.T) {
	server := fakeHostServer(t, "", nil)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	b, err := Dial(config.HostConfig{URL: url}, slog.Default())
	require.NoError(t, err)
	defer b.Close()

	assert.Error(t, b.Run(context.Background()))
}

func TestBridge_RunReturnsOnDisconnect(t *testing.T) {
	server := fakeHostServer(t, "", nil)
	defer server.Close()

	b := dialTestBridge(t, server, "", newRecordingHandler())

	errCh := make(chan error, 1)
	go func() { errCh <- b.Run(context.Background()) }()

	server.CloseClientConnections()
	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after disconnect")
	}
}
