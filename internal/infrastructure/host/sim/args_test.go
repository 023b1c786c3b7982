package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Inxects1/omeggabucks/internal/infrastructure/host/sim"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"Plain Tokens", "pay Bob 50", []string{"pay", "Bob", "50"}},
		{"Quoted Name", `pay "Big Bob" 50 thanks`, []string{"pay", "Big Bob", "50", "thanks"}},
		{"Empty Quotes", `check ""`, []string{"check", ""}},
		{"Extra Whitespace", "  a   b\tc  ", []string{"a", "b", "c"}},
		{"Empty Line", "", nil},
		{"Unclosed Quote Takes Rest", `say "tail end`, []string{"say", "tail end"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sim.SplitArgs(tt.line))
		})
	}
}
