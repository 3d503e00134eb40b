package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/postgame/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// PutTraumaTable upserts the trauma table for a model class.
func (s *Store) PutTraumaTable(ctx context.Context, table domain.TraumaTable) error {
	entriesJSON, err := marshalJSON(table.Entries)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO trauma_tables (model_class, id, name, dice_type, entries_json)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(model_class) DO UPDATE SET
		    id = excluded.id,
		    name = excluded.name,
		    dice_type = excluded.dice_type,
		    entries_json = excluded.entries_json`,
		string(table.ModelClass),
		table.ID,
		table.Name,
		string(table.DiceType),
		entriesJSON,
	)
	if err != nil {
		return fmt.Errorf("put trauma table: %w", err)
	}
	return nil
}

// GetTraumaTable loads the trauma table for a model class.
func (s *Store) GetTraumaTable(ctx context.Context, class domain.ModelClass) (domain.TraumaTable, error) {
	var table domain.TraumaTable
	var modelClass, diceType, entriesJSON string
	err := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT model_class, id, name, dice_type, entries_json FROM trauma_tables WHERE model_class = ?",
		string(class),
	).Scan(&modelClass, &table.ID, &table.Name, &diceType, &entriesJSON)
	if err == sql.ErrNoRows {
		return domain.TraumaTable{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.TraumaTable{}, fmt.Errorf("get trauma table: %w", err)
	}
	table.ModelClass = domain.ModelClass(modelClass)
	table.DiceType = domain.DiceType(diceType)
	if err := unmarshalJSON(entriesJSON, &table.Entries); err != nil {
		return domain.TraumaTable{}, err
	}
	return table, nil
}

// PutSkillTable upserts a promotion skill table.
func (s *Store) PutSkillTable(ctx context.Context, table domain.SkillTable) error {
	entriesJSON, err := marshalJSON(table.Entries)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO skill_tables (id, name, entries_json) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    entries_json = excluded.entries_json`,
		table.ID,
		table.Name,
		entriesJSON,
	)
	if err != nil {
		return fmt.Errorf("put skill table: %w", err)
	}
	return nil
}

// GetSkillTable loads a promotion skill table by ID.
func (s *Store) GetSkillTable(ctx context.Context, id string) (domain.SkillTable, error) {
	var table domain.SkillTable
	var entriesJSON string
	err := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, name, entries_json FROM skill_tables WHERE id = ?",
		id,
	).Scan(&table.ID, &table.Name, &entriesJSON)
	if err == sql.ErrNoRows {
		return domain.SkillTable{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.SkillTable{}, fmt.Errorf("get skill table: %w", err)
	}
	if err := unmarshalJSON(entriesJSON, &table.Entries); err != nil {
		return domain.SkillTable{}, err
	}
	return table, nil
}

// ListSkillTables returns every promotion skill table.
func (s *Store) ListSkillTables(ctx context.Context) ([]domain.SkillTable, error) {
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT id, name, entries_json FROM skill_tables ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list skill tables: %w", err)
	}
	defer rows.Close()

	var tables []domain.SkillTable
	for rows.Next() {
		var table domain.SkillTable
		var entriesJSON string
		if err := rows.Scan(&table.ID, &table.Name, &entriesJSON); err != nil {
			return nil, fmt.Errorf("scan skill table: %w", err)
		}
		if err := unmarshalJSON(entriesJSON, &table.Entries); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list skill tables: %w", err)
	}
	return tables, nil
}

// PutExplorationTable upserts the exploration table for a tier.
func (s *Store) PutExplorationTable(ctx context.Context, table domain.ExplorationTable) error {
	entriesJSON, err := marshalJSON(table.Entries)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO exploration_tables (tier, id, name, entries_json) VALUES (?, ?, ?, ?)
		 ON CONFLICT(tier) DO UPDATE SET
		    id = excluded.id,
		    name = excluded.name,
		    entries_json = excluded.entries_json`,
		string(table.Tier),
		table.ID,
		table.Name,
		entriesJSON,
	)
	if err != nil {
		return fmt.Errorf("put exploration table: %w", err)
	}
	return nil
}

// GetExplorationTable loads the exploration table for a tier.
func (s *Store) GetExplorationTable(ctx context.Context, tier domain.ExplorationTier) (domain.ExplorationTable, error) {
	var table domain.ExplorationTable
	var tierText, entriesJSON string
	err := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT tier, id, name, entries_json FROM exploration_tables WHERE tier = ?",
		string(tier),
	).Scan(&tierText, &table.ID, &table.Name, &entriesJSON)
	if err == sql.ErrNoRows {
		return domain.ExplorationTable{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.ExplorationTable{}, fmt.Errorf("get exploration table: %w", err)
	}
	table.Tier = domain.ExplorationTier(tierText)
	if err := unmarshalJSON(entriesJSON, &table.Entries); err != nil {
		return domain.ExplorationTable{}, err
	}
	return table, nil
}
