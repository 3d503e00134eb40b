package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/gamesession/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

func gameStatusToString(status domain.Status) string {
	return status.String()
}

func gameStatusFromString(value string) domain.Status {
	switch value {
	case "active":
		return domain.StatusActive
	case "completed":
		return domain.StatusCompleted
	default:
		return domain.StatusUnspecified
	}
}

// PutGameSession upserts a live game session. Inserting a second active
// session returns storage.ErrActiveSessionExists; the partial unique
// index on status backstops the same rule at the schema level.
func (s *Store) PutGameSession(ctx context.Context, session domain.Session) error {
	modelsJSON, err := marshalJSON(session.Models)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if session.Status == domain.StatusActive {
		var existingID string
		err := tx.QueryRowContext(
			ctx,
			"SELECT id FROM game_sessions WHERE status = 'active' AND id != ?",
			session.ID,
		).Scan(&existingID)
		if err == nil {
			return storage.ErrActiveSessionExists
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check active session: %w", err)
		}
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO game_sessions (
		    id, warband_id, campaign_id, scenario_name, turn, models_json,
		    status, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    turn = excluded.turn,
		    models_json = excluded.models_json,
		    status = excluded.status,
		    updated_at = excluded.updated_at`,
		session.ID,
		session.WarbandID,
		session.CampaignID,
		session.ScenarioName,
		session.Turn,
		modelsJSON,
		gameStatusToString(session.Status),
		toMillis(session.CreatedAt),
		toMillis(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put game session: %w", err)
	}
	return tx.Commit()
}

// GetGameSession loads a game session by ID.
func (s *Store) GetGameSession(ctx context.Context, id string) (domain.Session, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, warband_id, campaign_id, scenario_name, turn, models_json,
		        status, created_at, updated_at
		 FROM game_sessions WHERE id = ?`,
		id,
	)
	session, err := scanGameSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get game session: %w", err)
	}
	return session, nil
}

// GetActiveGameSession returns the single active session.
func (s *Store) GetActiveGameSession(ctx context.Context) (domain.Session, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, warband_id, campaign_id, scenario_name, turn, models_json,
		        status, created_at, updated_at
		 FROM game_sessions WHERE status = 'active'`,
	)
	session, err := scanGameSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get active game session: %w", err)
	}
	return session, nil
}

// ListGameSessions returns a warband's sessions, oldest first.
func (s *Store) ListGameSessions(ctx context.Context, warbandID string) ([]domain.Session, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, warband_id, campaign_id, scenario_name, turn, models_json,
		        status, created_at, updated_at
		 FROM game_sessions WHERE warband_id = ? ORDER BY created_at, id`,
		warbandID,
	)
	if err != nil {
		return nil, fmt.Errorf("list game sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanGameSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list game sessions: %w", err)
	}
	return sessions, nil
}

// DeleteGameSession removes a game session by ID.
func (s *Store) DeleteGameSession(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM game_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete game session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanGameSession(row rowScanner) (domain.Session, error) {
	var session domain.Session
	var modelsJSON, statusText string
	var createdAt, updatedAt int64
	if err := row.Scan(
		&session.ID,
		&session.WarbandID,
		&session.CampaignID,
		&session.ScenarioName,
		&session.Turn,
		&modelsJSON,
		&statusText,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Session{}, err
	}
	if err := unmarshalJSON(modelsJSON, &session.Models); err != nil {
		return domain.Session{}, err
	}
	session.Status = gameStatusFromString(statusText)
	session.CreatedAt = fromMillis(createdAt)
	session.UpdatedAt = fromMillis(updatedAt)
	return session, nil
}
