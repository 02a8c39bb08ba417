package analyze

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lintwell/src/broker"
	"lintwell/src/contracts"
	"lintwell/src/logger"
	"lintwell/src/store"
)

func TestAgent_PublishesAndPersistsFindings(t *testing.T) {
	brk := broker.NewInMemory()
	defer brk.Close()
	st := store.NewInMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	findingsCh, err := brk.Subscribe(ctx, contracts.TopicFindings, "test")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	agent := NewAgent(brk, st, logger.NewSilentLogger())
	go agent.Run(ctx)

	// Give the agent a moment to subscribe before publishing.
	time.Sleep(100 * time.Millisecond)

	if err := st.CreateRun(ctx, "req-1", "/src"); err != nil {
		t.Fatal(err)
	}

	chunk := contracts.OutputChunk{
		RequestID:   "req-1",
		Root:        "/src",
		ChunkIndex:  0,
		TotalChunks: 1,
		Content:     "a.py:1:0: E0602: Undefined variable 'ht' (undefined-variable)",
		ExitCode:    2,
	}
	payload, _ := json.Marshal(chunk)
	if err := brk.Publish(ctx, contracts.TopicOutputRaw, "req-1", payload); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	select {
	case msg := <-findingsCh:
		var card contracts.LintCard
		if err := json.Unmarshal(msg.Value, &card); err != nil {
			t.Fatalf("bad finding payload: %v", err)
		}
		if card.Code != "E0602" || card.RequestID != "req-1" {
			t.Errorf("unexpected card: %+v", card)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a finding")
	}

	// The finding is persisted and the run marked completed.
	deadline := time.Now().Add(2 * time.Second)
	for {
		status, err := st.GetRunStatus(ctx, "req-1")
		if err == nil && status.Status == "completed" {
			if status.FindingsCount != 1 || status.ChunksProcessed != 1 {
				t.Errorf("unexpected final status: %+v", status)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("run never reached completed status")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cards, err := st.GetFindings(ctx, "req-1")
	if err != nil {
		t.Fatalf("GetFindings() error: %v", err)
	}
	if len(cards) != 1 {
		t.Errorf("expected 1 stored finding, got %d", len(cards))
	}
}

func TestAgent_StopsOnContextCancel(t *testing.T) {
	brk := broker.NewInMemory()
	defer brk.Close()

	ctx, cancel := context.WithCancel(context.Background())
	agent := NewAgent(brk, nil, logger.NewSilentLogger())

	done := make(chan error, 1)
	go func() { done <- agent.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("agent did not stop on cancel")
	}
}
