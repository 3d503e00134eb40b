// Package service runs the live battle tracker: one active session at a
// time, mutated through snapshot-journaled operations with bounded undo.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/trench-tools/trenchmate/internal/gamesession/domain"
	"github.com/trench-tools/trenchmate/internal/id"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

var (
	// ErrNothingToUndo indicates an empty undo stack.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo indicates an empty redo stack.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Stores groups the storage interfaces the tracker depends on.
type Stores struct {
	GameSession storage.GameSessionStore
	Roster      storage.RosterStore
	Campaign    storage.CampaignStore
	Catalog     storage.CatalogStore
}

// Tracker drives live game sessions: per-model battlefield state, the
// turn sequence, and a bounded undo/redo history over model mutations.
//
// The history is process-local and scoped to one session at a time; it
// is discarded when a different session is mutated, when the turn
// advances, and when the session ends.
type Tracker struct {
	stores      Stores
	clock       func() time.Time
	idGenerator func() (string, error)

	mu        sync.Mutex
	sessionID string
	hist      history
}

// NewTracker creates a Tracker with default clock and ID generation.
func NewTracker(stores Stores) *Tracker {
	return &Tracker{
		stores:      stores,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// StartInput describes a new live game session.
type StartInput struct {
	WarbandID    string
	CampaignID   string
	ScenarioName string
	// ExcludeMemberIDs lists roster members sitting this game out.
	ExcludeMemberIDs []string
}

// Start creates and persists a new active session seeded from the
// warband's roster. At most one active session may exist at a time;
// starting while one is in progress returns
// storage.ErrActiveSessionExists.
//
// For campaign-linked sessions only members with an active campaign
// status are fielded. Standalone sessions field the full roster, minus
// explicit exclusions in both cases.
func (t *Tracker) Start(ctx context.Context, input StartInput) (domain.Session, error) {
	if _, err := t.stores.GameSession.GetActiveGameSession(ctx); err == nil {
		return domain.Session{}, storage.ErrActiveSessionExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.Session{}, fmt.Errorf("check active session: %w", err)
	}

	warband, err := t.stores.Roster.GetWarband(ctx, input.WarbandID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load warband: %w", err)
	}
	if input.CampaignID != "" {
		if _, err := t.stores.Campaign.GetCampaign(ctx, input.CampaignID); err != nil {
			return domain.Session{}, fmt.Errorf("load campaign: %w", err)
		}
	}

	members, err := t.stores.Roster.ListMembers(ctx, warband.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("list members: %w", err)
	}

	excluded := make(map[string]bool, len(input.ExcludeMemberIDs))
	for _, memberID := range input.ExcludeMemberIDs {
		excluded[memberID] = true
	}

	var models []domain.ModelState
	for _, member := range members {
		if excluded[member.ID] {
			continue
		}
		if input.CampaignID != "" && member.CampaignStatus != rosterdomain.CampaignStatusActive {
			continue
		}
		models = append(models, domain.NewModelState(member.ID, member.TemplateID, member.CustomName))
	}

	session, err := domain.CreateSession(domain.CreateSessionInput{
		WarbandID:    warband.ID,
		CampaignID:   input.CampaignID,
		ScenarioName: input.ScenarioName,
		Models:       models,
	}, t.clock, t.idGenerator)
	if err != nil {
		return domain.Session{}, err
	}

	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	t.mu.Lock()
	t.sessionID = session.ID
	t.hist.clear()
	t.mu.Unlock()

	return session, nil
}

// Get returns a session by ID.
func (t *Tracker) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	return t.stores.GameSession.GetGameSession(ctx, sessionID)
}

// Active returns the single active session, or storage.ErrNotFound.
func (t *Tracker) Active(ctx context.Context) (domain.Session, error) {
	return t.stores.GameSession.GetActiveGameSession(ctx)
}

// mutate loads the session, captures a pre-mutation snapshot, applies
// the mutation and persists the result. The snapshot joins the undo
// history only after the write succeeds.
func (t *Tracker) mutate(ctx context.Context, sessionID string, apply func(*domain.Session) error) (domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := t.stores.GameSession.GetGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	snapshot := session.SnapshotModels()
	if err := apply(&session); err != nil {
		return domain.Session{}, err
	}
	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	if t.sessionID != sessionID {
		t.sessionID = sessionID
		t.hist.clear()
	}
	t.hist.push(snapshot)
	return session, nil
}

// ToggleActivated flips a model's activation flag for the current turn.
func (t *Tracker) ToggleActivated(ctx context.Context, sessionID, modelID string) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.ToggleActivated(modelID, t.clock)
	})
}

// SetBloodMarkers sets a model's blood markers, clamped to [0,6].
func (t *Tracker) SetBloodMarkers(ctx context.Context, sessionID, modelID string, count int) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SetBloodMarkers(modelID, count, t.clock)
	})
}

// SetBlessingMarkers sets a model's blessing markers.
func (t *Tracker) SetBlessingMarkers(ctx context.Context, sessionID, modelID string, count int) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SetBlessingMarkers(modelID, count, t.clock)
	})
}

// SetInfectionMarkers sets a model's infection markers.
func (t *Tracker) SetInfectionMarkers(ctx context.Context, sessionID, modelID string, count int) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.SetInfectionMarkers(modelID, count, t.clock)
	})
}

// CycleStatus advances a model one step through
// active → down → out → active.
//
// When the model is about to go out of action and still carries an
// unspent Tough capability, the transition is intercepted: the session
// is returned unchanged with intercepted=true, and the caller resolves
// the choice through UseTough or DeclineTough.
func (t *Tracker) CycleStatus(ctx context.Context, sessionID, modelID string) (domain.Session, bool, error) {
	hasTough, err := t.modelHasTough(ctx, modelID)
	if err != nil {
		return domain.Session{}, false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := t.stores.GameSession.GetGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("load session: %w", err)
	}

	snapshot := session.SnapshotModels()
	intercepted, err := session.CycleStatus(modelID, hasTough, t.clock)
	if err != nil {
		return domain.Session{}, false, err
	}
	if intercepted {
		// Nothing changed; the pending choice is resolved through
		// UseTough or DeclineTough, so the history stays untouched.
		return session, true, nil
	}

	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, false, fmt.Errorf("persist session: %w", err)
	}
	if t.sessionID != sessionID {
		t.sessionID = sessionID
		t.hist.clear()
	}
	t.hist.push(snapshot)
	return session, false, nil
}

// modelHasTough reports whether the fielded roster member carries the
// Tough capability, from its template tags or an earned advancement.
// Models without a roster record never have it.
func (t *Tracker) modelHasTough(ctx context.Context, modelID string) (bool, error) {
	member, err := t.stores.Roster.GetMember(ctx, modelID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load member: %w", err)
	}

	var tags []string
	template, err := t.stores.Catalog.GetTemplate(ctx, member.TemplateID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("load template: %w", err)
	}
	if err == nil {
		tags = template.Tags
	}
	return member.HasTough(tags), nil
}

// UseTough resolves a pending interception: the model stays down and the
// capability is consumed for the rest of the session.
func (t *Tracker) UseTough(ctx context.Context, sessionID, modelID string) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.UseTough(modelID, t.clock)
	})
}

// DeclineTough resolves a pending interception: the model goes out of
// action and keeps the capability.
func (t *Tracker) DeclineTough(ctx context.Context, sessionID, modelID string) (domain.Session, error) {
	return t.mutate(ctx, sessionID, func(session *domain.Session) error {
		return session.DeclineTough(modelID, t.clock)
	})
}

// AdvanceTurn moves the session to the next turn, resetting every
// model's activation flag and discarding the undo history.
func (t *Tracker) AdvanceTurn(ctx context.Context, sessionID string) (domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := t.stores.GameSession.GetGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := session.AdvanceTurn(t.clock); err != nil {
		return domain.Session{}, err
	}
	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	t.hist.clear()
	return session, nil
}

// End completes the session. The record is retained for reference; the
// undo history is discarded.
func (t *Tracker) End(ctx context.Context, sessionID string) (domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, err := t.stores.GameSession.GetGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := session.End(t.clock); err != nil {
		return domain.Session{}, err
	}
	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	t.hist.clear()
	return session, nil
}

// Undo restores the most recent pre-mutation snapshot of the session's
// model states. Turn counter and session status are not part of the
// history and stay untouched.
func (t *Tracker) Undo(ctx context.Context, sessionID string) (domain.Session, error) {
	return t.restore(ctx, sessionID, func(current []domain.ModelState) ([]domain.ModelState, bool) {
		return t.hist.undo(current)
	}, ErrNothingToUndo)
}

// Redo re-applies the most recently undone mutation.
func (t *Tracker) Redo(ctx context.Context, sessionID string) (domain.Session, error) {
	return t.restore(ctx, sessionID, func(current []domain.ModelState) ([]domain.ModelState, bool) {
		return t.hist.redo(current)
	}, ErrNothingToRedo)
}

func (t *Tracker) restore(ctx context.Context, sessionID string, exchange func([]domain.ModelState) ([]domain.ModelState, bool), emptyErr error) (domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sessionID != sessionID {
		return domain.Session{}, emptyErr
	}

	session, err := t.stores.GameSession.GetGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.Status != domain.StatusActive {
		return domain.Session{}, domain.ErrSessionEnded
	}

	snapshot, ok := exchange(session.SnapshotModels())
	if !ok {
		return domain.Session{}, emptyErr
	}
	session.Models = snapshot
	session.UpdatedAt = t.clock().UTC()
	if err := t.stores.GameSession.PutGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}
