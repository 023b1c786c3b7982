package command

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseTransferArgs(t *testing.T) {
	t.Run("Target And Amount", func(t *testing.T) {
		parsed, ok := parseTransferArgs([]string{"Alice", "50"})
		assert.True(t, ok)
		assert.Equal(t, "Alice", parsed.Target)
		assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "No reason provided", parsed.Reason)
	})

	t.Run("Multi Word Target And Reason", func(t *testing.T) {
		parsed, ok := parseTransferArgs([]string{"Big", "Bob", "25", "for", "stuff"})
		assert.True(t, ok)
		assert.Equal(t, "Big Bob", parsed.Target)
		assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, "for stuff", parsed.Reason)
	})

	t.Run("Rightmost Numeric Token Is The Amount", func(t *testing.T) {
		// 目標名稱本身含數字時，金額取最右邊可解析的 token
		parsed, ok := parseTransferArgs([]string{"Player", "7", "50", "thanks"})
		assert.True(t, ok)
		assert.Equal(t, "Player 7", parsed.Target)
		assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "thanks", parsed.Reason)
	})

	t.Run("Decimal Amount", func(t *testing.T) {
		parsed, ok := parseTransferArgs([]string{"Alice", "12.5"})
		assert.True(t, ok)
		assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("Missing Amount", func(t *testing.T) {
		_, ok := parseTransferArgs([]string{"Alice"})
		assert.False(t, ok)
	})

	t.Run("Missing Target", func(t *testing.T) {
		_, ok := parseTransferArgs([]string{"50"})
		assert.False(t, ok)
	})

	t.Run("Empty Args", func(t *testing.T) {
		_, ok := parseTransferArgs(nil)
		assert.False(t, ok)
	})
}
