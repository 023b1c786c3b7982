package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Inxects1/omeggabucks/internal/di"
	"github.com/Inxects1/omeggabucks/internal/infrastructure/host/bridge"
	"github.com/Inxects1/omeggabucks/internal/kit/bootstrap"
)

func main() {
	// 1. 初始化 App (載入 Config, Logger)
	app := bootstrap.NewApp("omeggabucks")
	ctx := context.Background()

	// 2. 初始化持久化層
	store, cleanup, err := di.ProvideStore(app.Config)
	if err != nil {
		slog.Error("Store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("Store initialized", "backend", app.Config.Store.Backend)

	// 3. 連線遊戲主機 bridge
	hostBridge, err := bridge.Dial(app.Config.Host, app.Logger)
	if err != nil {
		slog.Error("Host bridge connection failed", "error", err)
		os.Exit(1)
	}
	defer hostBridge.Close()
	slog.Info("Host bridge connected", "url", app.Config.Host.URL)

	// 4. 組裝經濟核心並載入持久化狀態
	router, lgr, registry := di.ProvideRouter(app.Config, hostBridge, store, app.Logger)
	if err := lgr.Load(ctx); err != nil {
		slog.Error("Failed to load balances", "error", err)
		os.Exit(1)
	}
	if err := registry.Load(ctx); err != nil {
		slog.Error("Failed to load interactive bricks", "error", err)
		os.Exit(1)
	}

	// 5. 綁定事件並啟動
	hostBridge.Bind(router)

	app.Run(func() error {
		return hostBridge.Run(ctx)
	}, func() {
		hostBridge.Close()
	})
}
