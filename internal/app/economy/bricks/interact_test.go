package bricks_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Inxects1/omeggabucks/internal/app/economy/bricks"
	"github.com/Inxects1/omeggabucks/internal/app/economy/ledger"
	"github.com/Inxects1/omeggabucks/internal/core/domain"
	mock_ports "github.com/Inxects1/omeggabucks/test/mocks/core/ports"
)

func TestRegistry_InteractShop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	buyer := &domain.Player{ID: "buyer1", Name: "Buyer"}
	owner := &domain.Player{ID: "admin1", Name: "Admin"}

	t.Run("Purchase Debits Buyer And Credits Owner", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{
			"buyer1": buyer,
			"admin1": owner,
		}, bricks.Options{})

		assert.NoError(t, lgr.Set(ctx, "buyer1", decimal.NewFromInt(150)))
		assert.NoError(t, lgr.Set(ctx, "admin1", decimal.Zero))

		err := registry.Interact(ctx, buyer, "0,0,0", shopBrick("sword", 100, "admin1"))
		assert.NoError(t, err)

		buyerBalance, err := lgr.Get(ctx, "buyer1")
		assert.NoError(t, err)
		assert.True(t, buyerBalance.Equal(decimal.NewFromInt(50)), "buyer should have 50, got %s", buyerBalance)

		ownerBalance, err := lgr.Get(ctx, "admin1")
		assert.NoError(t, err)
		assert.True(t, ownerBalance.Equal(decimal.NewFromInt(100)), "owner should have 100, got %s", ownerBalance)
	})

	t.Run("Insufficient Funds Leaves Balances Untouched", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{
			"buyer1": buyer,
			"admin1": owner,
		}, bricks.Options{})

		assert.NoError(t, lgr.Set(ctx, "buyer1", decimal.NewFromInt(30)))
		assert.NoError(t, lgr.Set(ctx, "admin1", decimal.Zero))

		err := registry.Interact(ctx, buyer, "0,0,0", shopBrick("sword", 100, "admin1"))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		buyerBalance, _ := lgr.Get(ctx, "buyer1")
		assert.True(t, buyerBalance.Equal(decimal.NewFromInt(30)))
		ownerBalance, _ := lgr.Get(ctx, "admin1")
		assert.True(t, ownerBalance.IsZero())
	})

	t.Run("Self Purchase Skips Owner Credit", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{
			"buyer1": buyer,
		}, bricks.Options{})

		assert.NoError(t, lgr.Set(ctx, "buyer1", decimal.NewFromInt(150)))

		err := registry.Interact(ctx, buyer, "0,0,0", shopBrick("sword", 100, "buyer1"))
		assert.NoError(t, err)

		balance, _ := lgr.Get(ctx, "buyer1")
		assert.True(t, balance.Equal(decimal.NewFromInt(50)), "self purchase should only debit once, got %s", balance)
	})

	t.Run("Failed Owner Credit Refunds Buyer", func(t *testing.T) {
		// 擁有者入帳寫入失敗：擁有者不得留下幽靈餘額，買家要被回補
		mockHost := mock_ports.NewMockHost(ctrl)
		mockHost.EXPECT().GetPlayer(gomock.Any(), "buyer1").Return(buyer, nil).AnyTimes()
		mockHost.EXPECT().GetPlayer(gomock.Any(), "admin1").Return(owner, nil).AnyTimes()
		mockHost.EXPECT().Whisper(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockHost.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		mockStore := mock_ports.NewMockStore(ctrl)
		gomock.InOrder(
			// 兩筆初始餘額與買家扣款成功，擁有者入帳失敗，回補成功
			mockStore.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3),
			mockStore.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("store offline")),
			mockStore.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		lgr := ledger.NewBalanceLedger(mockHost, mockStore, slog.Default())
		registry := bricks.NewRegistry(lgr, mockHost, mockStore, slog.Default(),
			bricks.Options{CurrencyName: "buck"})

		assert.NoError(t, lgr.Set(ctx, "buyer1", decimal.NewFromInt(150)))
		assert.NoError(t, lgr.Set(ctx, "admin1", decimal.Zero))

		err := registry.Interact(ctx, buyer, "0,0,0", shopBrick("sword", 100, "admin1"))
		assert.ErrorIs(t, err, domain.ErrTransactionFailed)

		buyerBalance, _ := lgr.Get(ctx, "buyer1")
		ownerBalance, _ := lgr.Get(ctx, "admin1")
		assert.True(t, buyerBalance.Equal(decimal.NewFromInt(150)),
			"buyer should be refunded, got %s", buyerBalance)
		assert.True(t, ownerBalance.IsZero(),
			"owner should not keep a phantom credit, got %s", ownerBalance)
	})

	t.Run("Offline Owner Skips Credit", func(t *testing.T) {
		// host 不認得 admin1：擁有者不在線上，買家仍完成付款
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{
			"buyer1": buyer,
		}, bricks.Options{})

		assert.NoError(t, lgr.Set(ctx, "buyer1", decimal.NewFromInt(150)))

		err := registry.Interact(ctx, buyer, "0,0,0", shopBrick("sword", 100, "admin1"))
		assert.NoError(t, err)

		balance, _ := lgr.Get(ctx, "buyer1")
		assert.True(t, balance.Equal(decimal.NewFromInt(50)))
	})
}

func TestRegistry_InteractATM(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	player := &domain.Player{ID: "p1", Name: "Player"}

	t.Run("Give Credits Player", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{"p1": player}, bricks.Options{})
		assert.NoError(t, lgr.Set(ctx, "p1", decimal.NewFromInt(10)))

		err := registry.Interact(ctx, player, "0,0,0", atmBrick(domain.BrickATMGive, 25))
		assert.NoError(t, err)

		balance, _ := lgr.Get(ctx, "p1")
		assert.True(t, balance.Equal(decimal.NewFromInt(35)))
	})

	t.Run("Take Debits Player", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{"p1": player}, bricks.Options{})
		assert.NoError(t, lgr.Set(ctx, "p1", decimal.NewFromInt(40)))

		err := registry.Interact(ctx, player, "0,0,0", atmBrick(domain.BrickATMTake, 25))
		assert.NoError(t, err)

		balance, _ := lgr.Get(ctx, "p1")
		assert.True(t, balance.Equal(decimal.NewFromInt(15)))
	})

	t.Run("Take Rejects Insufficient Funds", func(t *testing.T) {
		registry, lgr := newTestRegistry(t, ctrl, map[string]*domain.Player{"p1": player}, bricks.Options{})
		assert.NoError(t, lgr.Set(ctx, "p1", decimal.NewFromInt(10)))

		err := registry.Interact(ctx, player, "0,0,0", atmBrick(domain.BrickATMTake, 25))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		balance, _ := lgr.Get(ctx, "p1")
		assert.True(t, balance.Equal(decimal.NewFromInt(10)))
	})

	t.Run("Unknown Brick Type Errors", func(t *testing.T) {
		registry, _ := newTestRegistry(t, ctrl, map[string]*domain.Player{"p1": player}, bricks.Options{})

		err := registry.Interact(ctx, player, "0,0,0", domain.Brick{Type: "mystery"})
		assert.Error(t, err)
	})
}
