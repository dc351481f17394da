package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqliteSnapshot struct {
	conn *sql.DB
}

func NewSQLiteSnapshotRepository(conn *sql.DB) SnapshotRepository {
	return &sqliteSnapshot{
		conn: conn,
	}
}

func (that *sqliteSnapshot) Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	query := `INSERT INTO snapshots (session_id, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`

	if _, err = that.conn.ExecContext(ctx, query, sessionID, string(snapshotJSON)); err != nil {
		return fmt.Errorf("can't save snapshot: %w", err)
	}

	return nil
}

func (that *sqliteSnapshot) GetByID(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	query := `SELECT state FROM snapshots WHERE session_id = ?`

	var state string

	err := that.conn.QueryRowContext(ctx, query, sessionID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(state), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *sqliteSnapshot) DeleteByID(ctx context.Context, sessionID string) error {
	query := `DELETE FROM snapshots WHERE session_id = ?`

	result, err := that.conn.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("can't delete snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't count deleted snapshots: %w", err)
	}

	if affected == 0 {
		return apperror.ErrSnapshotNotFound
	}

	return nil
}
