// Package compendium ships the embedded rules reference: trauma tables,
// promotion skill tables, and exploration tables. The data is validated
// on load and seeded into a TableStore at startup.
package compendium

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/trench-tools/trenchmate/internal/postgame/domain"
	"github.com/trench-tools/trenchmate/internal/rangetable"
	"github.com/trench-tools/trenchmate/internal/storage"
)

//go:embed data/*.json
var dataFS embed.FS

// Compendium is the parsed rules reference.
type Compendium struct {
	TraumaTables      []domain.TraumaTable
	SkillTables       []domain.SkillTable
	ExplorationTables []domain.ExplorationTable
}

// Load parses and validates the embedded reference data.
func Load() (Compendium, error) {
	var c Compendium
	if err := loadJSON("data/trauma_tables.json", &c.TraumaTables); err != nil {
		return Compendium{}, err
	}
	if err := loadJSON("data/skill_tables.json", &c.SkillTables); err != nil {
		return Compendium{}, err
	}
	if err := loadJSON("data/exploration_tables.json", &c.ExplorationTables); err != nil {
		return Compendium{}, err
	}

	for _, table := range c.TraumaTables {
		if table.DiceType != domain.DiceD6 && table.DiceType != domain.DiceD66 {
			return Compendium{}, fmt.Errorf("trauma table %s: unknown dice type %q", table.ID, table.DiceType)
		}
		if err := rangetable.Validate(table.Entries); err != nil {
			return Compendium{}, fmt.Errorf("trauma table %s: %w", table.ID, err)
		}
	}
	for _, table := range c.SkillTables {
		if err := rangetable.Validate(table.Entries); err != nil {
			return Compendium{}, fmt.Errorf("skill table %s: %w", table.ID, err)
		}
	}
	for _, table := range c.ExplorationTables {
		if _, ok := domain.ParseExplorationTier(string(table.Tier)); !ok {
			return Compendium{}, fmt.Errorf("exploration table %s: unknown tier %q", table.ID, table.Tier)
		}
		if err := rangetable.Validate(table.Entries); err != nil {
			return Compendium{}, fmt.Errorf("exploration table %s: %w", table.ID, err)
		}
	}
	return c, nil
}

// Seed writes the compendium into a table store. Existing rows for the
// same keys are overwritten, so reseeding on startup is safe.
func Seed(ctx context.Context, store storage.TableStore) error {
	c, err := Load()
	if err != nil {
		return err
	}
	for _, table := range c.TraumaTables {
		if err := store.PutTraumaTable(ctx, table); err != nil {
			return fmt.Errorf("seed trauma table %s: %w", table.ID, err)
		}
	}
	for _, table := range c.SkillTables {
		if err := store.PutSkillTable(ctx, table); err != nil {
			return fmt.Errorf("seed skill table %s: %w", table.ID, err)
		}
	}
	for _, table := range c.ExplorationTables {
		if err := store.PutExplorationTable(ctx, table); err != nil {
			return fmt.Errorf("seed exploration table %s: %w", table.ID, err)
		}
	}
	return nil
}

func loadJSON(path string, target any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
