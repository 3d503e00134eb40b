package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trench-tools/trenchmate/internal/id"
)

// Step identifies one stage of the post-game sequence.
type Step string

const (
	StepTrauma         Step = "trauma"
	StepPromotions     Step = "promotions"
	StepReinforcements Step = "reinforcements"
	StepExploration    Step = "exploration"
	StepQuartermaster  Step = "quartermaster"
)

// Steps lists the sequence in its strict linear order.
var Steps = [5]Step{StepTrauma, StepPromotions, StepReinforcements, StepExploration, StepQuartermaster}

// StepIndex returns a step's position in the sequence, or -1 when the
// value is not a known step.
func StepIndex(step Step) int {
	for i, known := range Steps {
		if known == step {
			return i
		}
	}
	return -1
}

var (
	// ErrEmptyCampaignID indicates a missing campaign ID.
	ErrEmptyCampaignID = errors.New("campaign id is required")
	// ErrInvalidGameNumber indicates a non-positive game number.
	ErrInvalidGameNumber = errors.New("game number must be positive")
	// ErrUnknownStep indicates a step value outside the sequence.
	ErrUnknownStep = errors.New("unknown post-game step")
	// ErrStepNotReachable indicates forward navigation past the first
	// incomplete step.
	ErrStepNotReachable = errors.New("step is not reachable yet")
	// ErrSessionCompleted indicates a mutation against a finished session.
	ErrSessionCompleted = errors.New("post-game session is completed")
	// ErrCasualtiesUnrolled indicates selected casualties that have not
	// rolled trauma yet.
	ErrCasualtiesUnrolled = errors.New("selected casualties still need trauma rolls")
)

// TraumaResult logs one casualty's trauma roll.
type TraumaResult struct {
	MemberID   string
	MemberName string
	Roll       int
	EntryID    string
	EntryName  string
	Outcome    TraumaOutcome
}

// PromotionResult logs one promotion roll.
type PromotionResult struct {
	MemberID   string
	MemberName string
	TableID    string
	TableName  string
	Roll       int
	EntryID    string
	SkillName  string
}

// ExplorationResult logs one exploration roll.
type ExplorationResult struct {
	Tier      ExplorationTier
	Roll      int
	EntryID   string
	EntryName string
	Summary   string
}

// Session is one working instance of the post-game sequence, scoped to a
// single (campaign, game number) pair. At most one non-completed session
// exists per pair. Result logs are append-only; an unmatched roll is still
// logged with an empty entry ID.
type Session struct {
	ID                 string
	CampaignID         string
	GameNumber         int
	CurrentStep        Step
	CompletedSteps     []Step
	CasualtySelection  []string
	TraumaResults      []TraumaResult
	PromotionResults   []PromotionResult
	ExplorationResults []ExplorationResult
	Completed          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateSessionInput describes the battle a session resolves.
type CreateSessionInput struct {
	CampaignID string
	GameNumber int
}

// CreateSession creates a post-game session positioned at the trauma step.
func CreateSession(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.CampaignID = strings.TrimSpace(input.CampaignID)
	if input.CampaignID == "" {
		return Session{}, ErrEmptyCampaignID
	}
	if input.GameNumber < 1 {
		return Session{}, ErrInvalidGameNumber
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:          sessionID,
		CampaignID:  input.CampaignID,
		GameNumber:  input.GameNumber,
		CurrentStep: StepTrauma,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// StepCompleted reports whether the given step has been completed.
func (s *Session) StepCompleted(step Step) bool {
	for _, completed := range s.CompletedSteps {
		if completed == step {
			return true
		}
	}
	return false
}

// frontierIndex is the highest step index the operator may occupy: one
// past the furthest completed step, capped at the final step.
func (s *Session) frontierIndex() int {
	frontier := 0
	for _, completed := range s.CompletedSteps {
		if index := StepIndex(completed); index+1 > frontier {
			frontier = index + 1
		}
	}
	if frontier > len(Steps)-1 {
		frontier = len(Steps) - 1
	}
	return frontier
}

// NavigateTo moves the active step. Moving backward to any completed or
// current step is always allowed; moving forward past the first incomplete
// step is rejected.
func (s *Session) NavigateTo(step Step, now func() time.Time) error {
	if s.Completed {
		return ErrSessionCompleted
	}
	index := StepIndex(step)
	if index < 0 {
		return ErrUnknownStep
	}
	if index > s.frontierIndex() {
		return fmt.Errorf("%w: %s", ErrStepNotReachable, step)
	}
	if now == nil {
		now = time.Now
	}
	s.CurrentStep = step
	s.UpdatedAt = now().UTC()
	return nil
}

// CompleteStep marks a step done and advances the active step to the next
// one in sequence. Completing an already-completed step is a no-op beyond
// the advance. CompletedSteps never shrinks.
func (s *Session) CompleteStep(step Step, now func() time.Time) error {
	if s.Completed {
		return ErrSessionCompleted
	}
	index := StepIndex(step)
	if index < 0 {
		return ErrUnknownStep
	}
	if index > s.frontierIndex() {
		return fmt.Errorf("%w: %s", ErrStepNotReachable, step)
	}
	if step == StepTrauma {
		if unrolled := s.UnrolledCasualties(); len(unrolled) > 0 {
			return fmt.Errorf("%w: %s", ErrCasualtiesUnrolled, strings.Join(unrolled, ", "))
		}
	}
	if now == nil {
		now = time.Now
	}
	if !s.StepCompleted(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
	if index < len(Steps)-1 {
		s.CurrentStep = Steps[index+1]
	}
	s.UpdatedAt = now().UTC()
	return nil
}

// SelectCasualty adds a member to the trauma casualty selection.
func (s *Session) SelectCasualty(memberID string, now func() time.Time) {
	for _, selected := range s.CasualtySelection {
		if selected == memberID {
			return
		}
	}
	if now == nil {
		now = time.Now
	}
	s.CasualtySelection = append(s.CasualtySelection, memberID)
	s.UpdatedAt = now().UTC()
}

// UnrolledCasualties lists selected casualties without a trauma result.
func (s *Session) UnrolledCasualties() []string {
	rolled := make(map[string]bool, len(s.TraumaResults))
	for _, result := range s.TraumaResults {
		rolled[result.MemberID] = true
	}
	var unrolled []string
	for _, selected := range s.CasualtySelection {
		if !rolled[selected] {
			unrolled = append(unrolled, selected)
		}
	}
	return unrolled
}

// TraumaRolled reports whether the member already rolled trauma this session.
func (s *Session) TraumaRolled(memberID string) bool {
	for _, result := range s.TraumaResults {
		if result.MemberID == memberID {
			return true
		}
	}
	return false
}

// PromotionRollsLogged counts this session's promotion rolls for a member.
func (s *Session) PromotionRollsLogged(memberID string) int {
	count := 0
	for _, result := range s.PromotionResults {
		if result.MemberID == memberID {
			count++
		}
	}
	return count
}
