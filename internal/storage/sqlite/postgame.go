package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/postgame/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// PutPostGameSession upserts a post-game session.
func (s *Store) PutPostGameSession(ctx context.Context, session domain.Session) error {
	stepsJSON, err := marshalJSON(session.CompletedSteps)
	if err != nil {
		return err
	}
	casualtyJSON, err := marshalJSON(session.CasualtySelection)
	if err != nil {
		return err
	}
	traumaJSON, err := marshalJSON(session.TraumaResults)
	if err != nil {
		return err
	}
	promotionJSON, err := marshalJSON(session.PromotionResults)
	if err != nil {
		return err
	}
	explorationJSON, err := marshalJSON(session.ExplorationResults)
	if err != nil {
		return err
	}

	completed := 0
	if session.Completed {
		completed = 1
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO postgame_sessions (
		    id, campaign_id, game_number, current_step, completed_steps_json,
		    casualty_json, trauma_json, promotion_json, exploration_json,
		    completed, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    current_step = excluded.current_step,
		    completed_steps_json = excluded.completed_steps_json,
		    casualty_json = excluded.casualty_json,
		    trauma_json = excluded.trauma_json,
		    promotion_json = excluded.promotion_json,
		    exploration_json = excluded.exploration_json,
		    completed = excluded.completed,
		    updated_at = excluded.updated_at`,
		session.ID,
		session.CampaignID,
		session.GameNumber,
		string(session.CurrentStep),
		stepsJSON,
		casualtyJSON,
		traumaJSON,
		promotionJSON,
		explorationJSON,
		completed,
		toMillis(session.CreatedAt),
		toMillis(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put post-game session: %w", err)
	}
	return nil
}

// GetPostGameSession loads a post-game session by ID.
func (s *Store) GetPostGameSession(ctx context.Context, id string) (domain.Session, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, game_number, current_step, completed_steps_json,
		        casualty_json, trauma_json, promotion_json, exploration_json,
		        completed, created_at, updated_at
		 FROM postgame_sessions WHERE id = ?`,
		id,
	)
	session, err := scanPostGameSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get post-game session: %w", err)
	}
	return session, nil
}

// GetOpenPostGameSession returns the non-completed session for the
// (campaign, game number) pair.
func (s *Store) GetOpenPostGameSession(ctx context.Context, campaignID string, gameNumber int) (domain.Session, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, game_number, current_step, completed_steps_json,
		        casualty_json, trauma_json, promotion_json, exploration_json,
		        completed, created_at, updated_at
		 FROM postgame_sessions WHERE campaign_id = ? AND game_number = ? AND completed = 0`,
		campaignID,
		gameNumber,
	)
	session, err := scanPostGameSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get open post-game session: %w", err)
	}
	return session, nil
}

// DeletePostGameSession removes a post-game session by ID.
func (s *Store) DeletePostGameSession(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM postgame_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post-game session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post-game session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanPostGameSession(row rowScanner) (domain.Session, error) {
	var session domain.Session
	var currentStep, stepsJSON, casualtyJSON, traumaJSON, promotionJSON, explorationJSON string
	var completed int
	var createdAt, updatedAt int64
	if err := row.Scan(
		&session.ID,
		&session.CampaignID,
		&session.GameNumber,
		&currentStep,
		&stepsJSON,
		&casualtyJSON,
		&traumaJSON,
		&promotionJSON,
		&explorationJSON,
		&completed,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Session{}, err
	}
	session.CurrentStep = domain.Step(currentStep)
	if err := unmarshalJSON(stepsJSON, &session.CompletedSteps); err != nil {
		return domain.Session{}, err
	}
	if err := unmarshalJSON(casualtyJSON, &session.CasualtySelection); err != nil {
		return domain.Session{}, err
	}
	if err := unmarshalJSON(traumaJSON, &session.TraumaResults); err != nil {
		return domain.Session{}, err
	}
	if err := unmarshalJSON(promotionJSON, &session.PromotionResults); err != nil {
		return domain.Session{}, err
	}
	if err := unmarshalJSON(explorationJSON, &session.ExplorationResults); err != nil {
		return domain.Session{}, err
	}
	session.Completed = completed != 0
	session.CreatedAt = fromMillis(createdAt)
	session.UpdatedAt = fromMillis(updatedAt)
	return session, nil
}
