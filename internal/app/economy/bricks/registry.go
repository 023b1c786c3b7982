package bricks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Inxects1/omeggabucks/internal/app/economy/ledger"
	"github.com/Inxects1/omeggabucks/internal/core/domain"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// NearestPolicy 決定 FindNearest 在半徑內有多個磚塊時的取捨
type NearestPolicy string

const (
	// NearestFirst 依登錄順序回傳第一個落在半徑內的磚塊。
	// 這是原始行為：主機沒有真正的碰撞事件，近接只是替代品，
	// 先到先贏的結果與順序相關、不保證最近。
	NearestFirst NearestPolicy = "first"
	// NearestClosest 回傳半徑內距離最近的磚塊 (較嚴格的替代策略)
	NearestClosest NearestPolicy = "closest"
)

// Options 註冊表的行為參數 (啟動時由設定檔解析完成)
type Options struct {
	CurrencyName string
	Policy       NearestPolicy
}

// Registry 獨佔互動磚塊 map (標準鍵 "x,y,z" -> 磚塊設定)。
// 每次變更都全量寫回 Store；近接解析與磚塊交易也在這裡。
type Registry struct {
	ledger *ledger.BalanceLedger
	host   ports.Host
	store  ports.Store
	logger *slog.Logger
	opts   Options

	bricks map[string]domain.Brick
	order  []string // 掃描順序。行程內等於登錄順序；載入時以鍵排序求確定性
}

// NewRegistry 建立磚塊註冊表 (尚未載入資料，請先呼叫 Load)
func NewRegistry(lgr *ledger.BalanceLedger, host ports.Host, store ports.Store, logger *slog.Logger, opts Options) *Registry {
	if opts.Policy == "" {
		opts.Policy = NearestFirst
	}
	return &Registry{
		ledger: lgr,
		host:   host,
		store:  store,
		logger: logger,
		opts:   opts,
		bricks: make(map[string]domain.Brick),
	}
}

// Load 從 Store 載入磚塊 map，啟動時呼叫一次
func (r *Registry) Load(ctx context.Context) error {
	bricks := make(map[string]domain.Brick)
	err := r.store.Get(ctx, ports.KeyInteractiveBricks, &bricks)
	if err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		return fmt.Errorf("failed to load interactive bricks: %w", err)
	}
	r.bricks = bricks
	r.order = make([]string, 0, len(bricks))
	for key := range bricks {
		r.order = append(r.order, key)
	}
	sort.Strings(r.order)
	r.logger.Info("Loaded interactive bricks", "count", len(bricks))
	return nil
}

// Setup 在座標上建立 (或覆寫) 一個互動磚塊並持久化
// 持久化失敗時還原記憶體狀態，失敗的變更必須是完整的 no-op。
func (r *Registry) Setup(ctx context.Context, x, y, z float64, brick domain.Brick) (string, error) {
	if err := brick.Validate(); err != nil {
		return "", err
	}
	key := domain.BrickKey(x, y, z)
	prev, existed := r.bricks[key]
	if !existed {
		r.order = append(r.order, key)
	}
	r.bricks[key] = brick
	if err := r.persist(ctx); err != nil {
		if existed {
			r.bricks[key] = prev
		} else {
			delete(r.bricks, key)
			r.order = r.order[:len(r.order)-1]
		}
		return "", err
	}
	r.logger.Info("Interactive brick set up", "key", key, "type", brick.Type, "owner_id", brick.OwnerID)
	return key, nil
}

// Remove 移除座標上的互動磚塊
// 座標上沒有磚塊時回傳 domain.ErrBrickNotFound，且不寫入 Store。
// 持久化失敗時還原記憶體狀態 (含掃描順序)。
func (r *Registry) Remove(ctx context.Context, x, y, z float64) error {
	key := domain.BrickKey(x, y, z)
	prev, ok := r.bricks[key]
	if !ok {
		return domain.ErrBrickNotFound
	}
	idx := -1
	for i, k := range r.order {
		if k == key {
			idx = i
			break
		}
	}
	delete(r.bricks, key)
	if idx >= 0 {
		r.order = append(r.order[:idx], r.order[idx+1:]...)
	}
	if err := r.persist(ctx); err != nil {
		r.bricks[key] = prev
		if idx >= 0 {
			r.order = append(r.order[:idx], append([]string{key}, r.order[idx:]...)...)
		}
		return err
	}
	r.logger.Info("Interactive brick removed", "key", key)
	return nil
}

// FindNearest 掃描所有磚塊，回傳半徑內的命中結果。
// 取捨策略由 Options.Policy 決定；沒有命中回傳 false。
func (r *Registry) FindNearest(pos domain.Position, radius float64) (string, domain.Brick, bool) {
	radiusSq := radius * radius

	var (
		bestKey  string
		bestDist float64
		found    bool
	)
	for _, key := range r.order {
		center, err := domain.ParseBrickKey(key)
		if err != nil {
			r.logger.Warn("Skipping malformed brick key", "key", key)
			continue
		}
		distSq := pos.DistSq(center)
		if distSq > radiusSq {
			continue
		}
		if r.opts.Policy == NearestFirst {
			return key, r.bricks[key], true
		}
		if !found || distSq < bestDist {
			bestKey, bestDist, found = key, distSq, true
		}
	}
	if !found {
		return "", domain.Brick{}, false
	}
	return bestKey, r.bricks[bestKey], true
}

// Count 目前登錄的磚塊數
func (r *Registry) Count() int {
	return len(r.bricks)
}

func (r *Registry) persist(ctx context.Context) error {
	if err := r.store.Set(ctx, ports.KeyInteractiveBricks, r.bricks); err != nil {
		r.logger.Error("Failed to persist interactive bricks", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}
