package bootstrap

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Inxects1/omeggabucks/internal/config"
)

// App 封裝應用程式的基礎組件
type App struct {
	Name   string
	Config *config.Config
	Logger *slog.Logger
}

// NewApp 建立一個新的應用程式實例：載入 Config 後依環境配置 Logger。
// Production -> JSON (Structured Logging)，其他環境 -> Text (Readable)。
func NewApp(appName string) *App {
	// 設定載入前先用基礎 Text Logger，錯誤才有地方去
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	switch cfg.App.Env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, nil)
	default:
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &App{
		Name:   appName,
		Config: cfg,
		Logger: logger,
	}
}

// Run 啟動服務並等待結束，兩種結束路徑：
// 收到 SIGINT/SIGTERM，或 startFunc 自行返回 (例如主機連線中斷使事件迴圈結束)。
// 返回前執行 cleanupFunc；呼叫方的 defer 會在 Run 返回後照常執行。
func (a *App) Run(startFunc func() error, cleanupFunc func()) {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting service", "app", a.Name, "env", a.Config.App.Env)
		errCh <- startFunc()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		a.Logger.Info("Received shutdown signal", "app", a.Name, "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			a.Logger.Error("Service stopped with error", "app", a.Name, "error", err)
		} else {
			a.Logger.Info("Service stopped", "app", a.Name)
		}
	}

	if cleanupFunc != nil {
		cleanupFunc()
	}
	a.Logger.Info("Service exited", "app", a.Name)
}
