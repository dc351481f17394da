package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockSnapshotRepo struct {
	mock.Mock
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{}
}

func (that *mockSnapshotRepo) Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error {
	args := that.Called(ctx, sessionID, snapshot)
	return args.Error(0)
}

func (that *mockSnapshotRepo) GetByID(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	args := that.Called(ctx, sessionID)

	snapshot, _ := args.Get(0).(*entity.Snapshot)
	return snapshot, args.Error(1)
}

func (that *mockSnapshotRepo) DeleteByID(ctx context.Context, sessionID string) error {
	args := that.Called(ctx, sessionID)
	return args.Error(0)
}
