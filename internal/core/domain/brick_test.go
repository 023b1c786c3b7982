package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
)

func TestBrick_Validate(t *testing.T) {
	tests := []struct {
		name    string
		brick   domain.Brick
		wantErr bool
	}{
		{
			name:  "Valid Shop",
			brick: domain.Brick{Type: domain.BrickShop, ItemID: "sword", Price: decimal.NewFromInt(100)},
		},
		{
			name:    "Shop Without Item",
			brick:   domain.Brick{Type: domain.BrickShop, Price: decimal.NewFromInt(100)},
			wantErr: true,
		},
		{
			name:    "Shop With Zero Price",
			brick:   domain.Brick{Type: domain.BrickShop, ItemID: "sword"},
			wantErr: true,
		},
		{
			name:    "Shop With Negative Price",
			brick:   domain.Brick{Type: domain.BrickShop, ItemID: "sword", Price: decimal.NewFromInt(-5)},
			wantErr: true,
		},
		{
			name:  "Valid ATM Give",
			brick: domain.Brick{Type: domain.BrickATMGive, Amount: decimal.NewFromInt(50)},
		},
		{
			name:  "Valid ATM Take",
			brick: domain.Brick{Type: domain.BrickATMTake, Amount: decimal.NewFromInt(50)},
		},
		{
			name:    "ATM With Zero Amount",
			brick:   domain.Brick{Type: domain.BrickATMGive},
			wantErr: true,
		},
		{
			name:    "Unknown Type",
			brick:   domain.Brick{Type: "mystery"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.brick.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
