package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trench-tools/trenchmate/internal/id"
)

// GameResult describes the outcome of one recorded battle.
type GameResult int

const (
	// GameResultUnspecified represents an invalid game result value.
	GameResultUnspecified GameResult = iota
	// GameResultWin indicates the warband won the battle.
	GameResultWin
	// GameResultLoss indicates the warband lost the battle.
	GameResultLoss
	// GameResultDraw indicates the battle ended in a draw.
	GameResultDraw
)

func (r GameResult) String() string {
	switch r {
	case GameResultWin:
		return "win"
	case GameResultLoss:
		return "loss"
	case GameResultDraw:
		return "draw"
	default:
		return "unspecified"
	}
}

var (
	// ErrEmptyWarbandID indicates a missing warband ID.
	ErrEmptyWarbandID = errors.New("warband id is required")
	// ErrInvalidResult indicates a missing or invalid game result.
	ErrInvalidResult = errors.New("game result is required")
	// ErrPostGamePending indicates the previous battle's post-game
	// sequence has not been completed.
	ErrPostGamePending = errors.New("previous game's post-game sequence is incomplete")
	// ErrNegativeAmount indicates a negative resource adjustment where
	// only non-negative amounts are allowed.
	ErrNegativeAmount = errors.New("amount must be non-negative")
	// ErrInsufficientFunds indicates a spend exceeding the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// CampaignGame records one completed battle's outcome. Games are append-only
// and indexed by game number.
type CampaignGame struct {
	GameNumber        int
	Result            GameResult
	OpponentName      string
	ScenarioName      string
	Notes             string
	PostGameCompleted bool
	CompletedAt       time.Time
}

// Campaign is the aggregate root for one warband's multi-battle arc.
//
// CurrentGame is the 1-based index of the next battle to record, and the
// cached caps are always consistent with ProgressionFor(CurrentGame).
type Campaign struct {
	ID             string
	WarbandID      string
	Patron         string
	CurrentGame    int
	ThresholdValue int
	FieldStrength  int
	GloryPoints    int
	DucatStash     int
	Games          []CampaignGame
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateCampaignInput describes the metadata needed to create a campaign.
type CreateCampaignInput struct {
	WarbandID string
	Patron    string
}

// CreateCampaign creates a new campaign with a generated ID and the
// game-one resource caps.
func CreateCampaign(input CreateCampaignInput, now func() time.Time, idGenerator func() (string, error)) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCampaignInput(input)
	if err != nil {
		return Campaign{}, err
	}

	campaignID, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}

	starting := ProgressionFor(1)
	createdAt := now().UTC()
	return Campaign{
		ID:             campaignID,
		WarbandID:      normalized.WarbandID,
		Patron:         normalized.Patron,
		CurrentGame:    1,
		ThresholdValue: starting.ThresholdValue,
		FieldStrength:  starting.FieldStrength,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}, nil
}

// NormalizeCreateCampaignInput trims and validates campaign input metadata.
func NormalizeCreateCampaignInput(input CreateCampaignInput) (CreateCampaignInput, error) {
	input.WarbandID = strings.TrimSpace(input.WarbandID)
	if input.WarbandID == "" {
		return CreateCampaignInput{}, ErrEmptyWarbandID
	}
	input.Patron = strings.TrimSpace(input.Patron)
	// Patron is optional narrative flavor, so empty string is allowed.
	return input, nil
}

// RecordGameInput describes one battle outcome to record.
type RecordGameInput struct {
	Result       GameResult
	OpponentName string
	ScenarioName string
	Notes        string
}

// RecordGame appends the battle at CurrentGame, advances to the next game,
// and refreshes the cached caps from the progression table.
//
// Recording is rejected while a previous game's post-game sequence is
// still pending: the pending game must be resolved or its session
// abandoned and re-run first.
func (c *Campaign) RecordGame(input RecordGameInput, now func() time.Time) (CampaignGame, error) {
	if now == nil {
		now = time.Now
	}
	if input.Result == GameResultUnspecified {
		return CampaignGame{}, ErrInvalidResult
	}
	if pending, ok := c.PendingPostGame(); ok {
		return CampaignGame{}, fmt.Errorf("game %d: %w", pending.GameNumber, ErrPostGamePending)
	}

	recorded := CampaignGame{
		GameNumber:        c.CurrentGame,
		Result:            input.Result,
		OpponentName:      strings.TrimSpace(input.OpponentName),
		ScenarioName:      strings.TrimSpace(input.ScenarioName),
		Notes:             input.Notes,
		PostGameCompleted: false,
		CompletedAt:       now().UTC(),
	}

	next := c.CurrentGame + 1
	progression := ProgressionFor(next)

	c.Games = append(c.Games, recorded)
	c.CurrentGame = next
	c.ThresholdValue = progression.ThresholdValue
	c.FieldStrength = progression.FieldStrength
	c.UpdatedAt = now().UTC()

	return recorded, nil
}

// PendingPostGame returns the earliest recorded game whose post-game
// sequence has not completed.
func (c *Campaign) PendingPostGame() (CampaignGame, bool) {
	for _, game := range c.Games {
		if !game.PostGameCompleted {
			return game, true
		}
	}
	return CampaignGame{}, false
}

// Game returns the recorded game with the given number.
func (c *Campaign) Game(gameNumber int) (CampaignGame, bool) {
	for _, game := range c.Games {
		if game.GameNumber == gameNumber {
			return game, true
		}
	}
	return CampaignGame{}, false
}

// MarkPostGameCompleted flips the recorded game's post-game flag.
func (c *Campaign) MarkPostGameCompleted(gameNumber int, now func() time.Time) bool {
	if now == nil {
		now = time.Now
	}
	for i := range c.Games {
		if c.Games[i].GameNumber == gameNumber {
			c.Games[i].PostGameCompleted = true
			c.UpdatedAt = now().UTC()
			return true
		}
	}
	return false
}

// AddDucats credits ducats to the campaign stash.
func (c *Campaign) AddDucats(amount int, now func() time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if now == nil {
		now = time.Now
	}
	c.DucatStash += amount
	c.UpdatedAt = now().UTC()
	return nil
}

// AddGlory credits glory points to the campaign.
func (c *Campaign) AddGlory(amount int, now func() time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if now == nil {
		now = time.Now
	}
	c.GloryPoints += amount
	c.UpdatedAt = now().UTC()
	return nil
}

// SpendDucats debits the campaign stash. The stash never goes negative.
func (c *Campaign) SpendDucats(amount int, now func() time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > c.DucatStash {
		return fmt.Errorf("%w: need %d ducats, have %d", ErrInsufficientFunds, amount, c.DucatStash)
	}
	if now == nil {
		now = time.Now
	}
	c.DucatStash -= amount
	c.UpdatedAt = now().UTC()
	return nil
}

// SpendGlory debits glory points. The balance never goes negative.
func (c *Campaign) SpendGlory(amount int, now func() time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > c.GloryPoints {
		return fmt.Errorf("%w: need %d glory, have %d", ErrInsufficientFunds, amount, c.GloryPoints)
	}
	if now == nil {
		now = time.Now
	}
	c.GloryPoints -= amount
	c.UpdatedAt = now().UTC()
	return nil
}
