package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// GetWarband loads a warband by ID.
func (s *Store) GetWarband(ctx context.Context, id string) (domain.Warband, error) {
	var warband domain.Warband
	err := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, name, faction_id FROM warbands WHERE id = ?",
		id,
	).Scan(&warband.ID, &warband.Name, &warband.FactionID)
	if err == sql.ErrNoRows {
		return domain.Warband{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Warband{}, fmt.Errorf("get warband: %w", err)
	}
	return warband, nil
}

// PutWarband upserts a warband.
func (s *Store) PutWarband(ctx context.Context, warband domain.Warband) error {
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO warbands (id, name, faction_id) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    faction_id = excluded.faction_id`,
		warband.ID,
		warband.Name,
		warband.FactionID,
	)
	if err != nil {
		return fmt.Errorf("put warband: %w", err)
	}
	return nil
}

// PutMember upserts a roster member.
func (s *Store) PutMember(ctx context.Context, member domain.Member) error {
	equipmentJSON, err := marshalJSON(member.EquipmentIDs)
	if err != nil {
		return err
	}
	scarsJSON, err := marshalJSON(member.Scars)
	if err != nil {
		return err
	}
	advancementsJSON, err := marshalJSON(member.Advancements)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO members (
		    id, warband_id, template_id, custom_name, equipment_json, campaign_status,
		    scars_json, advancements_json, promotion_earned, promotion_spent,
		    sort_order, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    warband_id = excluded.warband_id,
		    template_id = excluded.template_id,
		    custom_name = excluded.custom_name,
		    equipment_json = excluded.equipment_json,
		    campaign_status = excluded.campaign_status,
		    scars_json = excluded.scars_json,
		    advancements_json = excluded.advancements_json,
		    promotion_earned = excluded.promotion_earned,
		    promotion_spent = excluded.promotion_spent,
		    sort_order = excluded.sort_order,
		    updated_at = excluded.updated_at`,
		member.ID,
		member.WarbandID,
		member.TemplateID,
		member.CustomName,
		equipmentJSON,
		member.CampaignStatus.String(),
		scarsJSON,
		advancementsJSON,
		member.PromotionDiceEarned,
		member.PromotionDiceSpent,
		member.Order,
		toMillis(member.CreatedAt),
		toMillis(member.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put member: %w", err)
	}
	return nil
}

// GetMember loads a roster member by ID.
func (s *Store) GetMember(ctx context.Context, id string) (domain.Member, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, warband_id, template_id, custom_name, equipment_json, campaign_status,
		        scars_json, advancements_json, promotion_earned, promotion_spent,
		        sort_order, created_at, updated_at
		 FROM members WHERE id = ?`,
		id,
	)
	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return domain.Member{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Member{}, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

// ListMembers returns a warband's members ordered by their roster order.
func (s *Store) ListMembers(ctx context.Context, warbandID string) ([]domain.Member, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, warband_id, template_id, custom_name, equipment_json, campaign_status,
		        scars_json, advancements_json, promotion_earned, promotion_spent,
		        sort_order, created_at, updated_at
		 FROM members WHERE warband_id = ? ORDER BY sort_order, id`,
		warbandID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func scanMember(row rowScanner) (domain.Member, error) {
	var member domain.Member
	var equipmentJSON, statusText, scarsJSON, advancementsJSON string
	var createdAt, updatedAt int64
	if err := row.Scan(
		&member.ID,
		&member.WarbandID,
		&member.TemplateID,
		&member.CustomName,
		&equipmentJSON,
		&statusText,
		&scarsJSON,
		&advancementsJSON,
		&member.PromotionDiceEarned,
		&member.PromotionDiceSpent,
		&member.Order,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Member{}, err
	}
	if err := unmarshalJSON(equipmentJSON, &member.EquipmentIDs); err != nil {
		return domain.Member{}, err
	}
	if err := unmarshalJSON(scarsJSON, &member.Scars); err != nil {
		return domain.Member{}, err
	}
	if err := unmarshalJSON(advancementsJSON, &member.Advancements); err != nil {
		return domain.Member{}, err
	}
	member.CampaignStatus = domain.ParseCampaignStatus(statusText)
	member.CreatedAt = fromMillis(createdAt)
	member.UpdatedAt = fromMillis(updatedAt)
	return member, nil
}
