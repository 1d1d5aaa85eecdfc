package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reflect360-be/internal/dto"
	"reflect360-be/pkg/aicall"

	"github.com/google/uuid"
)

const analysisJSON = "```json\n" + `{"summary":"Mostly positive.","themes":["listening"],"per_group":{"peer":"peers agree"},"advice":"Keep going."}` + "\n```"

func newTestAnalysisService(factory *fakeUowFactory, fake *fakeLLM) IAnalysisService {
	return NewAnalysisService(factory, fake, aicall.NewOrchestrator(), time.Second, false)
}

func seedResponses(t *testing.T, factory *fakeUowFactory, mail *fakeMailer) uuid.UUID {
	t.Helper()
	svc := newTestFeedbackService(factory, mail)
	owner := seedUser(factory, "owner@example.com")
	if err := svc.AddResponse(context.Background(), owner, &dto.SubmitResponseRequest{
		Relationship: "peer", QChange: "listen more", QActions: "fewer meetings",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return owner
}

func TestAnalyzeParsesModelEnvelope(t *testing.T) {
	factory := newFakeUowFactory()
	owner := seedResponses(t, factory, &fakeMailer{})
	fake := &fakeLLM{reply: analysisJSON}
	svc := newTestAnalysisService(factory, fake)

	res, err := svc.Analyze(context.Background(), owner)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Summary != "Mostly positive." {
		t.Errorf("Summary = %q", res.Summary)
	}
	if len(res.Themes) != 1 || res.Themes[0] != "listening" {
		t.Errorf("Themes = %v", res.Themes)
	}
	if res.PerGroup["peer"] != "peers agree" {
		t.Errorf("PerGroup = %v", res.PerGroup)
	}
	if res.Cached {
		t.Error("first call must not be cached")
	}
}

func TestAnalyzeCachesAndInvalidates(t *testing.T) {
	factory := newFakeUowFactory()
	owner := seedResponses(t, factory, &fakeMailer{})
	fake := &fakeLLM{reply: analysisJSON}
	svc := newTestAnalysisService(factory, fake)

	if _, err := svc.Analyze(context.Background(), owner); err != nil {
		t.Fatalf("first: %v", err)
	}
	res, err := svc.Analyze(context.Background(), owner)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !res.Cached {
		t.Error("second call should be served from cache")
	}
	if fake.calls != 1 {
		t.Errorf("llm calls = %d, want 1", fake.calls)
	}

	svc.Invalidate(owner)
	if _, err := svc.Analyze(context.Background(), owner); err != nil {
		t.Fatalf("after invalidate: %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("llm calls after invalidate = %d, want 2", fake.calls)
	}
}

func TestAnalyzeNoResponses(t *testing.T) {
	factory := newFakeUowFactory()
	seedUser(factory, "owner@example.com")
	svc := newTestAnalysisService(factory, &fakeLLM{reply: analysisJSON})

	// Unknown user, zero responses.
	_, err := svc.Analyze(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAnalyzeMalformedModelOutput(t *testing.T) {
	factory := newFakeUowFactory()
	owner := seedResponses(t, factory, &fakeMailer{})
	svc := newTestAnalysisService(factory, &fakeLLM{reply: "sorry, I can't do JSON today"})

	if _, err := svc.Analyze(context.Background(), owner); err == nil {
		t.Fatal("expected error for unparseable model output")
	}
}
