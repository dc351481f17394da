package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// memorySnapshot keeps snapshots in the process. Nothing survives a restart.
type memorySnapshot struct {
	mu        sync.RWMutex
	snapshots map[string]entity.Snapshot
}

func NewMemorySnapshotRepository() SnapshotRepository {
	return &memorySnapshot{
		snapshots: make(map[string]entity.Snapshot),
	}
}

func (that *memorySnapshot) Save(_ context.Context, sessionID string, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshots[sessionID] = copySnapshot(snapshot)

	return nil
}

func (that *memorySnapshot) GetByID(_ context.Context, sessionID string) (*entity.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot, ok := that.snapshots[sessionID]
	if !ok {
		return nil, apperror.ErrSnapshotNotFound
	}

	stored := copySnapshot(&snapshot)
	return &stored, nil
}

func (that *memorySnapshot) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.snapshots[sessionID]; !ok {
		return apperror.ErrSnapshotNotFound
	}

	delete(that.snapshots, sessionID)

	return nil
}

func copySnapshot(snapshot *entity.Snapshot) entity.Snapshot {
	stored := *snapshot

	stored.Board = make(map[string]entity.Player, len(snapshot.Board))
	for key, player := range snapshot.Board {
		stored.Board[key] = player
	}

	return stored
}
