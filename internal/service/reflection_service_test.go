package service

import (
	"context"
	"reflect"
	"testing"

	"reflect360-be/internal/dto"
	"reflect360-be/pkg/mapstate"
	"reflect360-be/pkg/statestore"

	"github.com/google/uuid"
)

func TestGetMapRecoversFromCorruption(t *testing.T) {
	store := statestore.NewMemoryStore()
	svc := NewReflectionService(store)
	userId := uuid.New()
	key := statestore.KeyMapPrefix + userId.String()

	store.SetRaw(key, []byte(`{"goal": "broken`))

	m := svc.GetMap(context.Background(), userId)
	if m.Goal != "" || len(m.Behaviors) != 0 {
		t.Errorf("corrupted state must recover to defaults, got %+v", m)
	}

	// The broken entry was dropped.
	if _, ok := store.LoadRaw(context.Background(), key); ok {
		t.Error("corrupted entry should have been deleted")
	}
}

func TestGetMapDecodesLegacyBehaviors(t *testing.T) {
	store := statestore.NewMemoryStore()
	svc := NewReflectionService(store)
	userId := uuid.New()

	store.SetRaw(statestore.KeyMapPrefix+userId.String(),
		[]byte(`{"goal":"delegate","behaviors":"doing it myself\nmicromanaging"}`))

	m := svc.GetMap(context.Background(), userId)
	want := []string{"doing it myself", "micromanaging"}
	if !reflect.DeepEqual(m.Behaviors, want) {
		t.Errorf("Behaviors = %v, want %v", m.Behaviors, want)
	}
}

func TestSaveMapFiltersBlankBehaviors(t *testing.T) {
	svc := NewReflectionService(statestore.NewMemoryStore())
	userId := uuid.New()

	m := mapstate.NewMapData()
	m.Behaviors = []string{"", "a", "  "}
	saved := svc.SaveMap(context.Background(), userId, m)

	if !reflect.DeepEqual(saved.Behaviors, []string{"a"}) {
		t.Errorf("Behaviors = %v, want [a]", saved.Behaviors)
	}
}

func TestUpdateSlot(t *testing.T) {
	svc := NewReflectionService(statestore.NewMemoryStore())
	userId := uuid.New()

	if _, err := svc.UpdateSlot(context.Background(), userId, &dto.UpdateSlotRequest{
		ColumnId: mapstate.ColumnGoal,
		Text:     "listen more",
	}); err != nil {
		t.Fatalf("goal: %v", err)
	}

	if _, err := svc.UpdateSlot(context.Background(), userId, &dto.UpdateSlotRequest{
		ColumnId: mapstate.ColumnBehaviors,
		Entries:  []string{"interrupting", "", "multitasking"},
	}); err != nil {
		t.Fatalf("behaviors: %v", err)
	}

	if _, err := svc.UpdateSlot(context.Background(), userId, &dto.UpdateSlotRequest{
		ColumnId: mapstate.ColumnCommitments,
		Text:     "staying in control",
		Worries:  "losing respect",
	}); err != nil {
		t.Fatalf("commitments: %v", err)
	}

	m := svc.GetMap(context.Background(), userId)
	if m.Goal != "listen more" {
		t.Errorf("Goal = %q", m.Goal)
	}
	if !reflect.DeepEqual(m.Behaviors, []string{"interrupting", "multitasking"}) {
		t.Errorf("Behaviors = %v", m.Behaviors)
	}
	if m.HiddenCommitments.Commitments != "staying in control" || m.HiddenCommitments.Worries != "losing respect" {
		t.Errorf("HiddenCommitments = %+v", m.HiddenCommitments)
	}
}

func TestUpdateSlotRejectsUnknownColumn(t *testing.T) {
	svc := NewReflectionService(statestore.NewMemoryStore())

	if _, err := svc.UpdateSlot(context.Background(), uuid.New(), &dto.UpdateSlotRequest{
		ColumnId: 7,
		Text:     "x",
	}); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
