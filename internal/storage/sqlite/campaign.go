package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/campaign/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// PutCampaign upserts a campaign aggregate.
func (s *Store) PutCampaign(ctx context.Context, campaign domain.Campaign) error {
	gamesJSON, err := marshalJSON(campaign.Games)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO campaigns (
		    id, warband_id, patron, current_game, threshold_value, field_strength,
		    glory_points, ducat_stash, games_json, notes, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    warband_id = excluded.warband_id,
		    patron = excluded.patron,
		    current_game = excluded.current_game,
		    threshold_value = excluded.threshold_value,
		    field_strength = excluded.field_strength,
		    glory_points = excluded.glory_points,
		    ducat_stash = excluded.ducat_stash,
		    games_json = excluded.games_json,
		    notes = excluded.notes,
		    updated_at = excluded.updated_at`,
		campaign.ID,
		campaign.WarbandID,
		campaign.Patron,
		campaign.CurrentGame,
		campaign.ThresholdValue,
		campaign.FieldStrength,
		campaign.GloryPoints,
		campaign.DucatStash,
		gamesJSON,
		campaign.Notes,
		toMillis(campaign.CreatedAt),
		toMillis(campaign.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put campaign: %w", err)
	}
	return nil
}

// GetCampaign loads a campaign by ID.
func (s *Store) GetCampaign(ctx context.Context, id string) (domain.Campaign, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, warband_id, patron, current_game, threshold_value, field_strength,
		        glory_points, ducat_stash, games_json, notes, created_at, updated_at
		 FROM campaigns WHERE id = ?`,
		id,
	)
	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return domain.Campaign{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns all campaigns ordered by creation time.
func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, warband_id, patron, current_game, threshold_value, field_strength,
		        glory_points, ducat_stash, games_json, notes, created_at, updated_at
		 FROM campaigns ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// DeleteCampaign removes a campaign by ID.
func (s *Store) DeleteCampaign(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (domain.Campaign, error) {
	var campaign domain.Campaign
	var gamesJSON string
	var createdAt, updatedAt int64
	if err := row.Scan(
		&campaign.ID,
		&campaign.WarbandID,
		&campaign.Patron,
		&campaign.CurrentGame,
		&campaign.ThresholdValue,
		&campaign.FieldStrength,
		&campaign.GloryPoints,
		&campaign.DucatStash,
		&gamesJSON,
		&campaign.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Campaign{}, err
	}
	if err := unmarshalJSON(gamesJSON, &campaign.Games); err != nil {
		return domain.Campaign{}, err
	}
	campaign.CreatedAt = fromMillis(createdAt)
	campaign.UpdatedAt = fromMillis(updatedAt)
	return campaign, nil
}
