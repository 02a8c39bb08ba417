// Package ingest runs the linter for incoming requests and publishes the
// raw output in chunks.
package ingest

import (
	"bufio"
	"strings"

	"lintwell/src/contracts"
)

// TargetChunkSize is the target size for each output chunk (500KB).
const TargetChunkSize = 500 * 1024

// ChunkOutput splits linter output into ~500KB chunks. Chunks always split
// on line boundaries: one diagnostic is one line, so no diagnostic ever
// spans two chunks and the analyzer can process chunks independently.
func ChunkOutput(content string, requestID, root string, exitCode int, metadata map[string]string) []contracts.OutputChunk {
	if len(content) == 0 {
		return []contracts.OutputChunk{}
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return []contracts.OutputChunk{}
	}

	if len(content) <= TargetChunkSize {
		return []contracts.OutputChunk{{
			RequestID:   requestID,
			Root:        root,
			ChunkIndex:  0,
			TotalChunks: 1,
			Content:     content,
			LineStart:   1,
			LineEnd:     len(lines),
			ExitCode:    exitCode,
			Metadata:    copyMetadata(metadata),
		}}
	}

	var chunks []contracts.OutputChunk
	var current []string
	currentSize := 0
	lineStart := 1

	flush := func(lineEnd int) {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, contracts.OutputChunk{
			RequestID:  requestID,
			Root:       root,
			ChunkIndex: len(chunks),
			Content:    strings.Join(current, "\n"),
			LineStart:  lineStart,
			LineEnd:    lineEnd,
			ExitCode:   exitCode,
			Metadata:   copyMetadata(metadata),
		})
		lineStart = lineEnd + 1
		current = current[:0]
		currentSize = 0
	}

	for i, line := range lines {
		lineSize := len(line) + 1
		if currentSize+lineSize > TargetChunkSize && len(current) > 0 {
			flush(i)
		}
		current = append(current, line)
		currentSize += lineSize
	}
	flush(len(lines))

	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]string, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return copied
}
