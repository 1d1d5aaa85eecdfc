// FILE: internal/service/reflection_service.go
package service

import (
	"context"
	"fmt"

	"reflect360-be/internal/dto"
	"reflect360-be/pkg/mapstate"
	"reflect360-be/pkg/statestore"

	"github.com/google/uuid"
)

// IReflectionService owns the persisted per-user reflection state: the map,
// the dialogue transcript and the insights cache.
type IReflectionService interface {
	GetMap(ctx context.Context, userId uuid.UUID) mapstate.MapData
	SaveMap(ctx context.Context, userId uuid.UUID, m mapstate.MapData) mapstate.MapData
	UpdateSlot(ctx context.Context, userId uuid.UUID, req *dto.UpdateSlotRequest) (mapstate.MapData, error)
	GetTranscript(ctx context.Context, userId uuid.UUID) mapstate.Transcript
	SaveTranscript(ctx context.Context, userId uuid.UUID, t mapstate.Transcript)
	GetInsights(ctx context.Context, userId uuid.UUID) mapstate.Insights
	SaveInsights(ctx context.Context, userId uuid.UUID, ins mapstate.Insights)
}

type reflectionService struct {
	store statestore.Store
}

func NewReflectionService(store statestore.Store) IReflectionService {
	return &reflectionService{store: store}
}

func mapKey(userId uuid.UUID) string {
	return statestore.KeyMapPrefix + userId.String()
}

func transcriptKey(userId uuid.UUID) string {
	return statestore.KeyTranscriptPrefix + userId.String()
}

func insightsKey(userId uuid.UUID) string {
	return statestore.KeyInsightsPrefix + userId.String()
}

// GetMap always returns a usable map: absent or corrupted state recovers
// silently to an empty one, and legacy shapes are normalized on the way out.
func (s *reflectionService) GetMap(ctx context.Context, userId uuid.UUID) mapstate.MapData {
	raw, ok := s.store.LoadRaw(ctx, mapKey(userId))
	if !ok {
		return mapstate.NewMapData()
	}

	m, err := mapstate.DecodeMapData(raw)
	if err != nil {
		s.store.Delete(ctx, mapKey(userId))
		return mapstate.NewMapData()
	}
	m.Normalize()
	return m
}

func (s *reflectionService) SaveMap(ctx context.Context, userId uuid.UUID, m mapstate.MapData) mapstate.MapData {
	m.Normalize()
	m.Behaviors = mapstate.FilterBlank(m.Behaviors)
	s.store.Save(ctx, mapKey(userId), m)
	return m
}

// UpdateSlot commits one slot's edit. Text slots take Text; the behaviors
// slot takes Entries (blanks filtered on commit); the commitments slot
// carries the paired worries text alongside.
func (s *reflectionService) UpdateSlot(ctx context.Context, userId uuid.UUID, req *dto.UpdateSlotRequest) (mapstate.MapData, error) {
	if !mapstate.ValidColumn(req.ColumnId) {
		return mapstate.MapData{}, fmt.Errorf("unknown column %d", req.ColumnId)
	}

	m := s.GetMap(ctx, userId)

	switch req.ColumnId {
	case mapstate.ColumnGoal:
		m.Goal = req.Text
	case mapstate.ColumnBehaviors:
		if req.Entries != nil {
			m.Behaviors = mapstate.FilterBlank(req.Entries)
		} else {
			m.Behaviors = mapstate.SplitEntries(req.Text)
		}
	case mapstate.ColumnCommitments:
		m.HiddenCommitments.Commitments = req.Text
		m.HiddenCommitments.Worries = req.Worries
	case mapstate.ColumnAssumptions:
		m.BigAssumptions = req.Text
	}

	s.store.Save(ctx, mapKey(userId), m)
	return m, nil
}

func (s *reflectionService) GetTranscript(ctx context.Context, userId uuid.UUID) mapstate.Transcript {
	raw, ok := s.store.LoadRaw(ctx, transcriptKey(userId))
	if !ok {
		return mapstate.Transcript{}
	}

	t, err := mapstate.DecodeTranscript(raw)
	if err != nil {
		s.store.Delete(ctx, transcriptKey(userId))
		return mapstate.Transcript{}
	}
	return t
}

func (s *reflectionService) SaveTranscript(ctx context.Context, userId uuid.UUID, t mapstate.Transcript) {
	s.store.Save(ctx, transcriptKey(userId), t)
}

func (s *reflectionService) GetInsights(ctx context.Context, userId uuid.UUID) mapstate.Insights {
	ins := mapstate.NewInsights()
	s.store.Load(ctx, insightsKey(userId), &ins)
	return ins
}

func (s *reflectionService) SaveInsights(ctx context.Context, userId uuid.UUID, ins mapstate.Insights) {
	s.store.Save(ctx, insightsKey(userId), ins)
}
