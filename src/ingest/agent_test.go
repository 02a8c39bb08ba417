package ingest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"lintwell/src/broker"
	"lintwell/src/contracts"
	"lintwell/src/logger"
	"lintwell/src/runner"
	"lintwell/src/store"
)

func fakePylint(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake linter script requires a POSIX shell")
	}

	script := `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "pylint 3.0.0"
  exit 0
fi
for f in "$@"; do
  echo "$f:1:0: W0611: Unused import os (unused-import)"
done
exit 4
`
	path := filepath.Join(t.TempDir(), "fake-pylint")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAgent_LintsRequestAndPublishesChunks(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.py"), []byte("import os\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	brk := broker.NewInMemory()
	defer brk.Close()
	st := store.NewInMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chunksCh, err := brk.Subscribe(ctx, contracts.TopicOutputRaw, "test")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	agent := NewAgent(brk, runner.New(fakePylint(t)), st, logger.NewSilentLogger())
	go agent.Run(ctx)

	// Give the agent a moment to subscribe before publishing.
	time.Sleep(100 * time.Millisecond)

	request := contracts.LintRequest{
		RequestID: "req-1",
		Root:      root,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	payload, _ := json.Marshal(request)
	if err := brk.Publish(ctx, contracts.TopicRequests, "req-1", payload); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	select {
	case msg := <-chunksCh:
		var chunk contracts.OutputChunk
		if err := json.Unmarshal(msg.Value, &chunk); err != nil {
			t.Fatalf("bad chunk payload: %v", err)
		}
		if chunk.RequestID != "req-1" || chunk.TotalChunks != 1 {
			t.Errorf("unexpected chunk: %+v", chunk)
		}
		if chunk.ExitCode != runner.ExitWarning {
			t.Errorf("chunk exit code = %d, want %d", chunk.ExitCode, runner.ExitWarning)
		}
		if chunk.Metadata["file_count"] != "1" {
			t.Errorf("unexpected metadata: %v", chunk.Metadata)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an output chunk")
	}
}

func TestAgent_EmptyTreeCompletesWithoutChunks(t *testing.T) {
	root := t.TempDir()

	brk := broker.NewInMemory()
	defer brk.Close()
	st := store.NewInMemory()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chunksCh, err := brk.Subscribe(ctx, contracts.TopicOutputRaw, "test")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	agent := NewAgent(brk, runner.New("pylint"), st, logger.NewSilentLogger())
	go agent.Run(ctx)
	time.Sleep(100 * time.Millisecond)

	request := contracts.LintRequest{RequestID: "req-empty", Root: root}
	payload, _ := json.Marshal(request)
	if err := brk.Publish(ctx, contracts.TopicRequests, "req-empty", payload); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	// The run completes without publishing any chunk.
	deadline := time.Now().Add(2 * time.Second)
	for {
		status, err := st.GetRunStatus(ctx, "req-empty")
		if err == nil && status.Status == "completed" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("empty run never completed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case chunk := <-chunksCh:
		t.Errorf("unexpected chunk for an empty tree: %+v", chunk)
	case <-time.After(100 * time.Millisecond):
	}
}
