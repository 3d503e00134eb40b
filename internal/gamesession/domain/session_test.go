package domain

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func stubID() (string, error) {
	return "game-1", nil
}

func newSession(t *testing.T) Session {
	t.Helper()
	session, err := CreateSession(CreateSessionInput{
		WarbandID: "warband-1",
		Models: []ModelState{
			NewModelState("model-1", "tpl-yeoman", ""),
			NewModelState("model-2", "tpl-brute", "Gravel"),
		},
	}, fixedClock, stubID)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	return session
}

func TestCreateSessionDefaults(t *testing.T) {
	session := newSession(t)
	if session.Turn != 1 {
		t.Fatalf("expected turn 1, got %d", session.Turn)
	}
	if session.Status != StatusActive {
		t.Fatalf("expected active session, got %v", session.Status)
	}
	for _, model := range session.Models {
		if model.Status != ModelActive || model.Activated {
			t.Fatalf("expected fresh model state, got %+v", model)
		}
	}
}

func TestCreateSessionValidation(t *testing.T) {
	if _, err := CreateSession(CreateSessionInput{Models: []ModelState{NewModelState("m", "t", "")}}, fixedClock, stubID); !errors.Is(err, ErrEmptyWarbandID) {
		t.Fatalf("expected ErrEmptyWarbandID, got %v", err)
	}
	if _, err := CreateSession(CreateSessionInput{WarbandID: "warband-1"}, fixedClock, stubID); !errors.Is(err, ErrNoModels) {
		t.Fatalf("expected ErrNoModels, got %v", err)
	}
}

func TestBloodMarkersClamp(t *testing.T) {
	session := newSession(t)

	if err := session.SetBloodMarkers("model-1", 9, fixedClock); err != nil {
		t.Fatalf("SetBloodMarkers returned error: %v", err)
	}
	model, err := session.Model("model-1")
	if err != nil {
		t.Fatalf("Model returned error: %v", err)
	}
	if model.BloodMarkers != MaxBloodMarkers {
		t.Fatalf("expected clamp to %d, got %d", MaxBloodMarkers, model.BloodMarkers)
	}

	if err := session.SetBloodMarkers("model-1", -2, fixedClock); err != nil {
		t.Fatalf("SetBloodMarkers returned error: %v", err)
	}
	if model.BloodMarkers != 0 {
		t.Fatalf("expected clamp to 0, got %d", model.BloodMarkers)
	}
}

func TestBlessingAndInfectionFloorAtZero(t *testing.T) {
	session := newSession(t)
	if err := session.SetBlessingMarkers("model-2", -1, fixedClock); err != nil {
		t.Fatalf("SetBlessingMarkers returned error: %v", err)
	}
	if err := session.SetInfectionMarkers("model-2", 11, fixedClock); err != nil {
		t.Fatalf("SetInfectionMarkers returned error: %v", err)
	}
	model, err := session.Model("model-2")
	if err != nil {
		t.Fatalf("Model returned error: %v", err)
	}
	if model.BlessingMarkers != 0 {
		t.Fatalf("expected blessing floor 0, got %d", model.BlessingMarkers)
	}
	if model.InfectionMarkers != 11 {
		t.Fatalf("expected infection markers uncapped, got %d", model.InfectionMarkers)
	}
}

func TestStatusCycleWithoutTough(t *testing.T) {
	session := newSession(t)

	for _, want := range []ModelStatus{ModelDown, ModelOut, ModelActive} {
		intercepted, err := session.CycleStatus("model-1", false, fixedClock)
		if err != nil {
			t.Fatalf("CycleStatus returned error: %v", err)
		}
		if intercepted {
			t.Fatalf("unexpected interception without tough")
		}
		model, err := session.Model("model-1")
		if err != nil {
			t.Fatalf("Model returned error: %v", err)
		}
		if model.Status != want {
			t.Fatalf("expected %s, got %s", want, model.Status)
		}
	}
}

func TestToughInterception(t *testing.T) {
	session := newSession(t)
	if _, err := session.CycleStatus("model-2", true, fixedClock); err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}

	intercepted, err := session.CycleStatus("model-2", true, fixedClock)
	if err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}
	if !intercepted {
		t.Fatalf("expected interception for a tough model going out")
	}
	model, err := session.Model("model-2")
	if err != nil {
		t.Fatalf("Model returned error: %v", err)
	}
	if model.Status != ModelDown {
		t.Fatalf("interception must leave status unchanged, got %s", model.Status)
	}

	if err := session.UseTough("model-2", fixedClock); err != nil {
		t.Fatalf("UseTough returned error: %v", err)
	}
	if model.Status != ModelDown || !model.ToughUsed {
		t.Fatalf("expected down with tough consumed, got %+v", *model)
	}

	// Tough is spent; the next cycle attempt goes out uncontested.
	intercepted, err = session.CycleStatus("model-2", true, fixedClock)
	if err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}
	if intercepted {
		t.Fatalf("expected no second interception after tough is consumed")
	}
	if model.Status != ModelOut {
		t.Fatalf("expected out, got %s", model.Status)
	}
}

func TestDeclineToughGoesOut(t *testing.T) {
	session := newSession(t)
	if _, err := session.CycleStatus("model-2", true, fixedClock); err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}
	if _, err := session.CycleStatus("model-2", true, fixedClock); err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}

	if err := session.DeclineTough("model-2", fixedClock); err != nil {
		t.Fatalf("DeclineTough returned error: %v", err)
	}
	model, err := session.Model("model-2")
	if err != nil {
		t.Fatalf("Model returned error: %v", err)
	}
	if model.Status != ModelOut || model.ToughUsed {
		t.Fatalf("expected out with tough retained, got %+v", *model)
	}
}

func TestAdvanceTurnResetsActivations(t *testing.T) {
	session := newSession(t)
	if err := session.ToggleActivated("model-1", fixedClock); err != nil {
		t.Fatalf("ToggleActivated returned error: %v", err)
	}
	if err := session.AdvanceTurn(fixedClock); err != nil {
		t.Fatalf("AdvanceTurn returned error: %v", err)
	}
	if session.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", session.Turn)
	}
	for _, model := range session.Models {
		if model.Activated {
			t.Fatalf("expected activations reset, got %+v", model)
		}
	}
}

func TestEndedSessionRejectsMutation(t *testing.T) {
	session := newSession(t)
	if err := session.End(fixedClock); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	if err := session.ToggleActivated("model-1", fixedClock); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("expected ErrSessionEnded, got %v", err)
	}
	if err := session.AdvanceTurn(fixedClock); !errors.Is(err, ErrSessionEnded) {
		t.Fatalf("expected ErrSessionEnded, got %v", err)
	}
}

func TestUnknownModelRejected(t *testing.T) {
	session := newSession(t)
	if err := session.SetBloodMarkers("model-9", 1, fixedClock); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestSnapshotModelsIsIndependent(t *testing.T) {
	session := newSession(t)
	snapshot := session.SnapshotModels()
	if err := session.SetBloodMarkers("model-1", 3, fixedClock); err != nil {
		t.Fatalf("SetBloodMarkers returned error: %v", err)
	}
	if snapshot[0].BloodMarkers != 0 {
		t.Fatalf("snapshot must not alias live state")
	}
}
