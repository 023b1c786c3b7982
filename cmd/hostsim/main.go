// hostsim 是本地開發用的主機模擬器：在 websocket 端點上扮演遊戲主機，
// 回應插件的 RPC 並把 stdin 輸入轉成玩家事件。
//
// 用法:
//
//	go run ./cmd/hostsim -addr :7777 -token sekrit
//
// 互動指令:
//
//	join <id> <name> [host]      玩家加入 (host 表示主持人)
//	leave <id/name>              玩家離開
//	move <id/name> <x> <y> <z>   移動玩家
//	say <id/name> !<cmd> [args]  以玩家身分送出聊天指令
//	quit                         結束
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/Inxects1/omeggabucks/internal/infrastructure/host/sim"
)

func main() {
	addr := flag.String("addr", ":7777", "listen address")
	token := flag.String("token", "", "bearer token required from the plugin (optional)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	server := sim.NewServer(sim.Config{Token: *token, AllowedOrigins: []string{"*"}}, logger)

	mux := http.NewServeMux()
	mux.Handle("/plugin", server)

	go func() {
		logger.Info("Host simulator listening", "addr", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			logger.Error("Simulator server stopped", "error", err)
			os.Exit(1)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := handleLine(server, scanner.Text()); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func handleLine(server *sim.Server, line string) error {
	tokens := sim.SplitArgs(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case "join":
		if len(tokens) < 3 {
			return fmt.Errorf("usage: join <id> <name> [host]")
		}
		server.Join(sim.Player{
			ID:     tokens[1],
			Name:   tokens[2],
			IsHost: len(tokens) > 3 && tokens[3] == "host",
		})
		return nil

	case "leave":
		if len(tokens) < 2 {
			return fmt.Errorf("usage: leave <id/name>")
		}
		return server.Leave(tokens[1])

	case "move":
		if len(tokens) < 5 {
			return fmt.Errorf("usage: move <id/name> <x> <y> <z>")
		}
		x, errX := strconv.ParseFloat(tokens[2], 64)
		y, errY := strconv.ParseFloat(tokens[3], 64)
		z, errZ := strconv.ParseFloat(tokens[4], 64)
		if errX != nil || errY != nil || errZ != nil {
			return fmt.Errorf("coordinates must be numbers")
		}
		return server.Move(tokens[1], x, y, z)

	case "say":
		if len(tokens) < 3 || !strings.HasPrefix(tokens[2], "!") {
			return fmt.Errorf(`usage: say <id/name> !<cmd> [args], e.g. say p1 !pay "Big Bob" 50`)
		}
		command := strings.TrimPrefix(tokens[2], "!")
		return server.Say(tokens[1], command, tokens[3:])

	case "quit", "exit":
		os.Exit(0)
		return nil

	default:
		return fmt.Errorf("unknown command %q (join, leave, move, say, quit)", tokens[0])
	}
}
