package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// PutTemplate upserts a model template into the faction catalog.
func (s *Store) PutTemplate(ctx context.Context, template domain.ModelTemplate) error {
	tagsJSON, err := marshalJSON(template.Tags)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO model_templates (id, name, faction_id, tags_json, promotion)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    faction_id = excluded.faction_id,
		    tags_json = excluded.tags_json,
		    promotion = excluded.promotion`,
		template.ID,
		template.Name,
		template.FactionID,
		tagsJSON,
		template.Promotion,
	)
	if err != nil {
		return fmt.Errorf("put template: %w", err)
	}
	return nil
}

// GetTemplate loads a model template by ID.
func (s *Store) GetTemplate(ctx context.Context, id string) (domain.ModelTemplate, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, name, faction_id, tags_json, promotion FROM model_templates WHERE id = ?",
		id,
	)
	template, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return domain.ModelTemplate{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.ModelTemplate{}, fmt.Errorf("get template: %w", err)
	}
	return template, nil
}

// ListTemplates returns a faction's model templates.
func (s *Store) ListTemplates(ctx context.Context, factionID string) ([]domain.ModelTemplate, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		"SELECT id, name, faction_id, tags_json, promotion FROM model_templates WHERE faction_id = ? ORDER BY id",
		factionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.ModelTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(row rowScanner) (domain.ModelTemplate, error) {
	var template domain.ModelTemplate
	var tagsJSON string
	if err := row.Scan(&template.ID, &template.Name, &template.FactionID, &tagsJSON, &template.Promotion); err != nil {
		return domain.ModelTemplate{}, err
	}
	if err := unmarshalJSON(tagsJSON, &template.Tags); err != nil {
		return domain.ModelTemplate{}, err
	}
	return template, nil
}

// PutFactionModelEntry upserts one row of a faction's model list.
func (s *Store) PutFactionModelEntry(ctx context.Context, factionID string, entry domain.FactionModelEntry) error {
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO faction_models (faction_id, template_id, cost, cost_type, limit_min, limit_max)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(faction_id, template_id) DO UPDATE SET
		    cost = excluded.cost,
		    cost_type = excluded.cost_type,
		    limit_min = excluded.limit_min,
		    limit_max = excluded.limit_max`,
		factionID,
		entry.TemplateID,
		entry.Cost,
		string(entry.CostType),
		entry.LimitMin,
		entry.LimitMax,
	)
	if err != nil {
		return fmt.Errorf("put faction model entry: %w", err)
	}
	return nil
}

// GetFactionModelEntry loads one row of a faction's model list.
func (s *Store) GetFactionModelEntry(ctx context.Context, factionID, templateID string) (domain.FactionModelEntry, error) {
	var entry domain.FactionModelEntry
	var costType string
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT template_id, cost, cost_type, limit_min, limit_max
		 FROM faction_models WHERE faction_id = ? AND template_id = ?`,
		factionID,
		templateID,
	).Scan(&entry.TemplateID, &entry.Cost, &costType, &entry.LimitMin, &entry.LimitMax)
	if err == sql.ErrNoRows {
		return domain.FactionModelEntry{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.FactionModelEntry{}, fmt.Errorf("get faction model entry: %w", err)
	}
	entry.CostType = domain.CostType(costType)
	return entry, nil
}

// PutFactionEquipmentEntry upserts one row of a faction's equipment list.
func (s *Store) PutFactionEquipmentEntry(ctx context.Context, factionID string, entry domain.FactionEquipmentEntry) error {
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO faction_equipment (faction_id, equipment_id, cost, cost_type, item_limit)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(faction_id, equipment_id) DO UPDATE SET
		    cost = excluded.cost,
		    cost_type = excluded.cost_type,
		    item_limit = excluded.item_limit`,
		factionID,
		entry.EquipmentID,
		entry.Cost,
		string(entry.CostType),
		entry.Limit,
	)
	if err != nil {
		return fmt.Errorf("put faction equipment entry: %w", err)
	}
	return nil
}

// ListFactionEquipment returns a faction's equipment list.
func (s *Store) ListFactionEquipment(ctx context.Context, factionID string) ([]domain.FactionEquipmentEntry, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT equipment_id, cost, cost_type, item_limit
		 FROM faction_equipment WHERE faction_id = ? ORDER BY equipment_id`,
		factionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list faction equipment: %w", err)
	}
	defer rows.Close()

	var entries []domain.FactionEquipmentEntry
	for rows.Next() {
		var entry domain.FactionEquipmentEntry
		var costType string
		if err := rows.Scan(&entry.EquipmentID, &entry.Cost, &costType, &entry.Limit); err != nil {
			return nil, fmt.Errorf("scan faction equipment: %w", err)
		}
		entry.CostType = domain.CostType(costType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list faction equipment: %w", err)
	}
	return entries, nil
}
