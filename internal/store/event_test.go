package store

import (
	"context"
	"testing"
)

func TestFormEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []FormEventData{
		{SessionID: "s1", Action: "data_updated", Detail: "name,email"},
		{SessionID: "s1", Action: "form_completed", CategoryID: "category1", FormID: "form1_1"},
		{SessionID: "s1", Action: "navigated", CategoryID: "category1", FormID: "form1_2", Route: "/forms/category1/form2"},
	}
	for _, e := range events {
		if err := repo.AppendFormEvent(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.Action, err)
		}
	}

	got, err := repo.QueryFormEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[0].Action != "navigated" || got[2].Action != "data_updated" {
		t.Errorf("expected newest first, got %q ... %q", got[0].Action, got[2].Action)
	}
	if got[0].Route != "/forms/category1/form2" {
		t.Errorf("route = %q", got[0].Route)
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestFormEvents_QueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendFormEvent(ctx, FormEventData{SessionID: "s", Action: "navigated"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	limited, err := repo.QueryFormEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit: got %d, want 2", len(limited))
	}

	after, err := repo.QueryFormEvents(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after: got %d, want 2", len(after))
	}

	before, err := repo.QueryFormEvents(ctx, QueryOpts{Before: 3})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("before: got %d, want 2", len(before))
	}
}

func TestLLMRequests_ShareSequenceWithFormEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendFormEvent(ctx, FormEventData{SessionID: "s", Action: "form_completed"}); err != nil {
		t.Fatalf("append form event: %v", err)
	}
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock-model",
		Purpose:      "review",
		InputTokens:  10,
		OutputTokens: 20,
		LatencyMs:    42,
		Success:      true,
		RequestBody:  "[user]\nreview\n",
		ResponseBody: `{"summary":"ok","issues":[]}`,
	})
	if err != nil {
		t.Fatalf("append LLM request: %v", err)
	}

	reqs, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query LLM requests: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d LLM requests, want 1", len(reqs))
	}
	r := reqs[0]
	if r.Sequence != 2 {
		t.Errorf("sequence = %d, want 2", r.Sequence)
	}
	if r.Purpose != "review" || r.OutputTokens != 20 || !r.Success {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.RequestBody != "[user]\nreview\n" || r.ResponseBody != `{"summary":"ok","issues":[]}` {
		t.Errorf("bodies not round-tripped: %q / %q", r.RequestBody, r.ResponseBody)
	}
}
