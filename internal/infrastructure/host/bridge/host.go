package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Inxects1/omeggabucks/internal/core/domain"
	"github.com/Inxects1/omeggabucks/internal/core/ports"
)

// ensure interface compliance
var _ ports.Host = (*Bridge)(nil)

var jsonNull = []byte("null")

// GetPlayer implements ports.Host.
func (b *Bridge) GetPlayer(ctx context.Context, identifier string) (*domain.Player, error) {
	result, err := b.call(ctx, "getPlayer", map[string]string{"identifier": identifier})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return nil, domain.ErrPlayerNotFound
	}

	var player wirePlayer
	if err := json.Unmarshal(result, &player); err != nil {
		return nil, fmt.Errorf("malformed getPlayer response: %w", err)
	}
	if player.ID == "" {
		return nil, domain.ErrPlayerNotFound
	}
	return player.toDomain(), nil
}

// GetPlayerPosition implements ports.Host.
func (b *Bridge) GetPlayerPosition(ctx context.Context, playerID string) (domain.Position, error) {
	result, err := b.call(ctx, "getPlayerWorldPos", map[string]string{"id": playerID})
	if err != nil {
		return domain.Position{}, err
	}
	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return domain.Position{}, fmt.Errorf("no position for player %s", playerID)
	}

	// 主機回傳 [x, y, z]
	var coords [3]float64
	if err := json.Unmarshal(result, &coords); err != nil {
		return domain.Position{}, fmt.Errorf("malformed getPlayerWorldPos response: %w", err)
	}
	return domain.Position{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// Whisper implements ports.Host.
func (b *Bridge) Whisper(ctx context.Context, playerID string, text string) error {
	_, err := b.call(ctx, "whisper", map[string]string{"target": playerID, "text": text})
	return err
}

// Broadcast implements ports.Host.
func (b *Bridge) Broadcast(ctx context.Context, text string) error {
	_, err := b.call(ctx, "broadcast", map[string]string{"text": text})
	return err
}
