package sim

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Player 是模擬器名冊中的玩家
type Player struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	IsHost bool       `json:"isHost"`
	Pos    [3]float64 `json:"-"`
}

// Config 模擬器的設定參數
type Config struct {
	Token          string   // 非空時要求 Authorization: Bearer <token>
	AllowedOrigins []string // 允許的跨域來源，"*" 表示全部
}

// Server 模擬遊戲主機的插件端點，是本地開發用的對接工具：
// 回應插件發出的 RPC 請求 (getPlayer, whisper, broadcast...)，
// 並把名冊異動與聊天指令以事件推送給插件。
// 同一時間只服務一條插件連線，後到的連線會取代先前的。
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	players map[string]*Player // playerID -> Player
}

// 確保 Server 實現了 http.Handler 介面
var _ http.Handler = (*Server)(nil)

// NewServer 建立主機模擬器
func NewServer(cfg Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger.With("component", "host_sim"),
		players: make(map[string]*Player),
	}
}

// rpcRequest 是插件送來的 RPC 請求
type rpcRequest struct {
	ID     string            `json:"id"`
	Method string            `json:"method"`
	Params map[string]string `json:"params"`
}

// message 是模擬器送往插件的訊息：帶 ID 的是 RPC 回應，帶 Event 的是推送事件
type message struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`

	Event   string   `json:"event,omitempty"`
	Player  *Player  `json:"player,omitempty"`
	Speaker string   `json:"speaker,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// ServeHTTP 實現 http.Handler 介面，處理插件的 websocket 升級請求
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Token != "" {
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			s.logger.Warn("Rejected connection with bad token", "remote", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// 沒有 Origin 標頭的通常是非瀏覽器請求，允許
			if origin == "" {
				return true
			}
			for _, allowed := range s.cfg.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()
	s.logger.Info("Plugin connected", "remote", r.RemoteAddr)

	for {
		var req rpcRequest
		if err := conn.ReadJSON(&req); err != nil {
			s.logger.Info("Plugin disconnected", "error", err)
			break
		}
		s.respond(req)
	}

	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
}

func (s *Server) respond(req rpcRequest) {
	resp := message{ID: req.ID}

	switch req.Method {
	case "getPlayer":
		if player, ok := s.Lookup(req.Params["identifier"]); ok {
			resp.Result = player
		} else {
			resp.Result = json.RawMessage("null")
		}
	case "getPlayerWorldPos":
		if player, ok := s.Lookup(req.Params["id"]); ok {
			resp.Result = player.Pos
		} else {
			resp.Result = json.RawMessage("null")
		}
	case "whisper":
		fmt.Printf("[whisper -> %s] %s\n", req.Params["target"], req.Params["text"])
		resp.Result = true
	case "broadcast":
		fmt.Printf("[broadcast] %s\n", req.Params["text"])
		resp.Result = true
	default:
		resp.Error = fmt.Sprintf("unknown method %q", req.Method)
	}

	s.write(resp)
}

// Lookup 以玩家 ID 或名稱 (不分大小寫) 查詢名冊。
// 回傳的是快照副本：Pos 由 stdin goroutine 在鎖內更新，
// 共享指標會讓讀取端在鎖外觸發 data race。
func (s *Server) Lookup(identifier string) (Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.lookupLocked(identifier); ok {
		return *p, true
	}
	return Player{}, false
}

// lookupLocked 在持有 s.mu 的前提下查詢名冊
func (s *Server) lookupLocked(identifier string) (*Player, bool) {
	if p, ok := s.players[identifier]; ok {
		return p, true
	}
	for _, p := range s.players {
		if strings.EqualFold(p.Name, identifier) {
			return p, true
		}
	}
	return nil, false
}

// Join 把玩家加入名冊並向插件推送 join 事件
func (s *Server) Join(player Player) {
	s.mu.Lock()
	s.players[player.ID] = &player
	s.mu.Unlock()

	s.push(message{Event: "join", Player: &player})
	s.logger.Info("Player joined", "player", player.Name, "player_id", player.ID)
}

// Leave 把玩家移出名冊並向插件推送 leave 事件
func (s *Server) Leave(identifier string) error {
	s.mu.Lock()
	p, ok := s.lookupLocked(identifier)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no such player %q", identifier)
	}
	player := *p
	delete(s.players, player.ID)
	s.mu.Unlock()

	s.push(message{Event: "leave", Player: &player})
	s.logger.Info("Player left", "player", player.Name, "player_id", player.ID)
	return nil
}

// Move 更新玩家座標 (供 getPlayerWorldPos 查詢)
func (s *Server) Move(identifier string, x, y, z float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.lookupLocked(identifier)
	if !ok {
		return fmt.Errorf("no such player %q", identifier)
	}
	p.Pos = [3]float64{x, y, z}
	return nil
}

// Say 以玩家身分送出聊天指令，向插件推送對應的 chatcmd 事件。
// command 不含前導 "!"，args 的引號已由呼叫方斷詞完成。
func (s *Server) Say(speaker string, command string, args []string) error {
	player, ok := s.Lookup(speaker)
	if !ok {
		return fmt.Errorf("no such player %q", speaker)
	}
	s.push(message{Event: "chatcmd:" + command, Speaker: player.Name, Args: args})
	return nil
}

func (s *Server) push(msg message) {
	if !s.write(msg) {
		s.logger.Warn("No plugin connected, event dropped", "event", msg.Event)
	}
}

func (s *Server) write(msg message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return false
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("Failed to write to plugin", "error", err)
		return false
	}
	return true
}
