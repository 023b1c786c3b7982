package di

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Inxects1/omeggabucks/internal/app/economy/bricks"
	"github.com/Inxects1/omeggabucks/internal/app/economy/command"
	"github.com/Inxects1/omeggabucks/internal/app/economy/ledger"
	"github.com/Inxects1/omeggabucks/internal/app/economy/tempid"
	"github.com/Inxects1/omeggabucks/internal/config"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// ProvideRouter 組裝經濟核心：帳本、暫時 ID 池、磚塊註冊表與指令路由器。
// 回傳的元件尚未載入持久化資料，啟動時請先呼叫各自的 Load。
func ProvideRouter(cfg *config.Config, host ports.Host, store ports.Store, logger *slog.Logger) (*command.Router, *ledger.BalanceLedger, *bricks.Registry) {
	lgr := ledger.NewBalanceLedger(host, store, logger.With("component", "ledger"))
	pool := tempid.NewPool(host, logger.With("component", "tempid"))
	registry := bricks.NewRegistry(lgr, host, store, logger.With("component", "bricks"), bricks.Options{
		CurrencyName: cfg.Economy.CurrencyName,
		Policy:       nearestPolicy(cfg.Economy.NearestPolicy),
	})
	router := command.NewRouter(host, lgr, pool, registry, logger.With("component", "command"), command.Options{
		CurrencyName:           cfg.Economy.CurrencyName,
		DefaultStartingBalance: decimal.NewFromInt(cfg.Economy.DefaultStartingBalance),
		InteractRadius:         cfg.Economy.InteractRadius,
	})
	return router, lgr, registry
}

func nearestPolicy(name string) bricks.NearestPolicy {
	if name == config.NearestPolicyClosest {
		return bricks.NearestClosest
	}
	return bricks.NearestFirst
}
