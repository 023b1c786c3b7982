package sim_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Inxects1/omeggabucks/internal/infrastructure/host/sim"
)

func TestServer_Roster(t *testing.T) {
	newTestServer := func() *sim.Server {
		server := sim.NewServer(sim.Config{}, slog.Default())
		server.Join(sim.Player{ID: "p1", Name: "One"})
		return server
	}

	t.Run("Lookup By ID And Name", func(t *testing.T) {
		server := newTestServer()

		player, ok := server.Lookup("p1")
		assert.True(t, ok)
		assert.Equal(t, "One", player.Name)

		player, ok = server.Lookup("one")
		assert.True(t, ok)
		assert.Equal(t, "p1", player.ID)

		_, ok = server.Lookup("stranger")
		assert.False(t, ok)
	})

	t.Run("Move Updates Position", func(t *testing.T) {
		server := newTestServer()
		assert.NoError(t, server.Move("p1", 1, 2, 3))

		player, ok := server.Lookup("p1")
		assert.True(t, ok)
		assert.Equal(t, [3]float64{1, 2, 3}, player.Pos)

		assert.Error(t, server.Move("stranger", 0, 0, 0))
	})

	t.Run("Lookup Returns Snapshot", func(t *testing.T) {
		server := newTestServer()
		before, ok := server.Lookup("p1")
		assert.True(t, ok)

		assert.NoError(t, server.Move("p1", 9, 9, 9))
		assert.Equal(t, [3]float64{0, 0, 0}, before.Pos, "earlier snapshot must not see later moves")

		after, _ := server.Lookup("p1")
		assert.Equal(t, [3]float64{9, 9, 9}, after.Pos)
	})

	t.Run("Leave Removes Player", func(t *testing.T) {
		server := newTestServer()
		assert.NoError(t, server.Leave("One"))

		_, ok := server.Lookup("p1")
		assert.False(t, ok)
		assert.Error(t, server.Leave("One"))
	})

	t.Run("Say Requires Known Speaker", func(t *testing.T) {
		server := newTestServer()
		assert.NoError(t, server.Say("p1", "balance", nil))
		assert.Error(t, server.Say("stranger", "balance", nil))
	})
}
