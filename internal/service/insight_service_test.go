package service

import (
	"context"
	"testing"
	"time"

	"reflect360-be/pkg/aicall"
	"reflect360-be/pkg/llm"
	"reflect360-be/pkg/mapstate"
	"reflect360-be/pkg/statestore"

	"github.com/google/uuid"
)

func TestGenerateStoresInsight(t *testing.T) {
	reflection := NewReflectionService(statestore.NewMemoryStore())
	fake := &fakeLLM{reply: "Your goal is framed well."}
	svc := NewInsightService(reflection, fake, aicall.NewOrchestrator(), time.Second, time.Second)
	userId := uuid.New()

	text, callErr := svc.Generate(context.Background(), userId, mapstate.ColumnGoal, mapstate.NewMapData())
	if callErr != nil {
		t.Fatalf("Generate: %v", callErr)
	}
	if text != "Your goal is framed well." {
		t.Errorf("text = %q", text)
	}

	ins := reflection.GetInsights(context.Background(), userId)
	if ins[mapstate.ColumnGoal] != "Your goal is framed well." {
		t.Errorf("persisted insight = %q", ins[mapstate.ColumnGoal])
	}
}

// blockingLLM parks until released, letting the test observe mid-flight state.
type blockingLLM struct {
	started chan struct{}
	release chan struct{}
	reply   string
}

func (b *blockingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	close(b.started)
	select {
	case <-b.release:
		return b.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *blockingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return b.Generate(ctx, "", options...)
}

func TestGenerateClearsEntryWhileInFlight(t *testing.T) {
	store := statestore.NewMemoryStore()
	reflection := NewReflectionService(store)
	userId := uuid.New()

	// Pre-existing stale insight.
	reflection.SaveInsights(context.Background(), userId, mapstate.Insights{mapstate.ColumnGoal: "stale"})

	block := &blockingLLM{started: make(chan struct{}), release: make(chan struct{}), reply: "fresh"}
	svc := NewInsightService(reflection, block, aicall.NewOrchestrator(), time.Second, time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Generate(context.Background(), userId, mapstate.ColumnGoal, mapstate.NewMapData())
	}()

	<-block.started
	ins := reflection.GetInsights(context.Background(), userId)
	if ins[mapstate.ColumnGoal] != "" {
		t.Errorf("in-flight insight = %q, want empty string", ins[mapstate.ColumnGoal])
	}

	close(block.release)
	<-done

	ins = reflection.GetInsights(context.Background(), userId)
	if ins[mapstate.ColumnGoal] != "fresh" {
		t.Errorf("final insight = %q, want fresh", ins[mapstate.ColumnGoal])
	}
}

func TestGenerateTimeoutLeavesEntryCleared(t *testing.T) {
	reflection := NewReflectionService(statestore.NewMemoryStore())
	userId := uuid.New()
	reflection.SaveInsights(context.Background(), userId, mapstate.Insights{mapstate.ColumnGoal: "stale"})

	block := &blockingLLM{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewInsightService(reflection, block, aicall.NewOrchestrator(), 10*time.Millisecond, 10*time.Millisecond)

	_, callErr := svc.Generate(context.Background(), userId, mapstate.ColumnGoal, mapstate.NewMapData())
	if callErr == nil || callErr.Kind != aicall.KindTimeout {
		t.Fatalf("callErr = %v, want timeout", callErr)
	}

	// Stale value never comes back after a failed request.
	ins := reflection.GetInsights(context.Background(), userId)
	if ins[mapstate.ColumnGoal] != "" {
		t.Errorf("insight after timeout = %q, want empty", ins[mapstate.ColumnGoal])
	}
}

func TestGenerateRejectsUnknownColumn(t *testing.T) {
	reflection := NewReflectionService(statestore.NewMemoryStore())
	svc := NewInsightService(reflection, &fakeLLM{reply: "x"}, aicall.NewOrchestrator(), time.Second, time.Second)

	_, callErr := svc.Generate(context.Background(), uuid.New(), 9, mapstate.NewMapData())
	if callErr == nil {
		t.Fatal("expected error for unknown column")
	}
}
