package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const snapshotKeyPrefix = "game_state:"

// SnapshotRepository persists one game snapshot per session.
type SnapshotRepository interface {
	Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

type redisSnapshot struct {
	client *redis.Client
}

func NewRedisSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &redisSnapshot{
		client: client,
	}
}

func (that *redisSnapshot) Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	err = that.client.Set(ctx, snapshotKeyPrefix+sessionID, snapshotJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *redisSnapshot) GetByID(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, snapshotKeyPrefix+sessionID).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal(response, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *redisSnapshot) DeleteByID(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, snapshotKeyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSnapshotNotFound
	}

	return nil
}
