package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trench-tools/trenchmate/internal/id"
)

// Status describes the lifecycle state of a game session.
type Status int

const (
	// StatusUnspecified represents an invalid session status value.
	StatusUnspecified Status = iota
	// StatusActive indicates the session is being played.
	StatusActive
	// StatusCompleted indicates the session has ended. Completed
	// sessions are archived, never deleted implicitly.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unspecified"
	}
}

// ModelStatus describes one model's battlefield state.
type ModelStatus string

const (
	ModelActive ModelStatus = "active"
	ModelDown   ModelStatus = "down"
	ModelOut    ModelStatus = "out"
)

// MaxBloodMarkers caps blood markers per model.
const MaxBloodMarkers = 6

var (
	// ErrEmptyWarbandID indicates a missing warband ID.
	ErrEmptyWarbandID = errors.New("warband id is required")
	// ErrNoModels indicates a session with no eligible models.
	ErrNoModels = errors.New("at least one model is required")
	// ErrUnknownModel indicates a model ID outside the session.
	ErrUnknownModel = errors.New("model is not part of the session")
	// ErrSessionEnded indicates a mutation against a completed session.
	ErrSessionEnded = errors.New("game session has ended")
	// ErrToughNotOffered indicates a tough resolution without a pending
	// interception.
	ErrToughNotOffered = errors.New("no tough interception is pending")
)

// ModelState is one model's battlefield status within a session.
type ModelState struct {
	ModelID          string
	TemplateID       string
	CustomName       string
	Activated        bool
	BloodMarkers     int
	BlessingMarkers  int
	InfectionMarkers int
	Status           ModelStatus
	ToughUsed        bool
}

// NewModelState seeds the battlefield state for one roster member.
func NewModelState(modelID, templateID, customName string) ModelState {
	return ModelState{
		ModelID:    modelID,
		TemplateID: templateID,
		CustomName: customName,
		Status:     ModelActive,
	}
}

// nextStatus is the forward cycle active → down → out → active.
func nextStatus(status ModelStatus) ModelStatus {
	switch status {
	case ModelActive:
		return ModelDown
	case ModelDown:
		return ModelOut
	default:
		return ModelActive
	}
}

// Session tracks per-model battlefield state across the turn sequence of
// one game. CampaignID is empty for standalone (non-campaign) games.
type Session struct {
	ID           string
	WarbandID    string
	CampaignID   string
	ScenarioName string
	Turn         int
	Models       []ModelState
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateSessionInput describes a new live game session.
type CreateSessionInput struct {
	WarbandID    string
	CampaignID   string
	ScenarioName string
	Models       []ModelState
}

// CreateSession creates an active session at turn 1.
func CreateSession(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.WarbandID = strings.TrimSpace(input.WarbandID)
	if input.WarbandID == "" {
		return Session{}, ErrEmptyWarbandID
	}
	if len(input.Models) == 0 {
		return Session{}, ErrNoModels
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:           sessionID,
		WarbandID:    input.WarbandID,
		CampaignID:   strings.TrimSpace(input.CampaignID),
		ScenarioName: strings.TrimSpace(input.ScenarioName),
		Turn:         1,
		Models:       input.Models,
		Status:       StatusActive,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// Model returns a pointer to the tracked state for the given model.
func (s *Session) Model(modelID string) (*ModelState, error) {
	for i := range s.Models {
		if s.Models[i].ModelID == modelID {
			return &s.Models[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelID)
}

// SnapshotModels returns an independent copy of the per-model states.
func (s *Session) SnapshotModels() []ModelState {
	return append([]ModelState(nil), s.Models...)
}

func (s *Session) ensureActive() error {
	if s.Status != StatusActive {
		return ErrSessionEnded
	}
	return nil
}

// ToggleActivated flips a model's activation flag for the current turn.
func (s *Session) ToggleActivated(modelID string, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	model.Activated = !model.Activated
	s.touch(now)
	return nil
}

// SetBloodMarkers sets a model's blood markers, clamped to [0,6].
func (s *Session) SetBloodMarkers(modelID string, count int, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	if count < 0 {
		count = 0
	}
	if count > MaxBloodMarkers {
		count = MaxBloodMarkers
	}
	model.BloodMarkers = count
	s.touch(now)
	return nil
}

// SetBlessingMarkers sets a model's blessing markers, clamped to >= 0.
func (s *Session) SetBlessingMarkers(modelID string, count int, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	if count < 0 {
		count = 0
	}
	model.BlessingMarkers = count
	s.touch(now)
	return nil
}

// SetInfectionMarkers sets a model's infection markers, clamped to >= 0.
func (s *Session) SetInfectionMarkers(modelID string, count int, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	if count < 0 {
		count = 0
	}
	model.InfectionMarkers = count
	s.touch(now)
	return nil
}

// CycleStatus advances a model's status one step through
// active → down → out → active.
//
// The down → out transition is intercepted for a model that carries the
// Tough capability and has not consumed it: the status is left unchanged
// and intercepted=true is returned so the operator can choose between
// staying down (UseTough) or proceeding out (DeclineTough).
func (s *Session) CycleStatus(modelID string, hasTough bool, now func() time.Time) (intercepted bool, err error) {
	if err := s.ensureActive(); err != nil {
		return false, err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return false, err
	}
	next := nextStatus(model.Status)
	if model.Status == ModelDown && next == ModelOut && hasTough && !model.ToughUsed {
		return true, nil
	}
	model.Status = next
	s.touch(now)
	return false, nil
}

// UseTough resolves a pending interception by keeping the model down and
// marking the capability consumed.
func (s *Session) UseTough(modelID string, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	if model.Status != ModelDown || model.ToughUsed {
		return ErrToughNotOffered
	}
	model.ToughUsed = true
	s.touch(now)
	return nil
}

// DeclineTough resolves a pending interception by letting the model go
// out of action. The capability is retained.
func (s *Session) DeclineTough(modelID string, now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	model, err := s.Model(modelID)
	if err != nil {
		return err
	}
	if model.Status != ModelDown {
		return ErrToughNotOffered
	}
	model.Status = ModelOut
	s.touch(now)
	return nil
}

// AdvanceTurn increments the turn counter and resets every model's
// activation flag. History does not cross a turn boundary; the tracker
// clears its undo stacks when this is called.
func (s *Session) AdvanceTurn(now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	s.Turn++
	for i := range s.Models {
		s.Models[i].Activated = false
	}
	s.touch(now)
	return nil
}

// End marks the session completed. The record is retained.
func (s *Session) End(now func() time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	s.Status = StatusCompleted
	s.touch(now)
	return nil
}

func (s *Session) touch(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.UpdatedAt = now().UTC()
}
