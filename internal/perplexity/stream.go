package perplexity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stream is a single-pass iterator over the content fragments of a streaming
// chat completion. Each Next advances to the next fragment that carries
// content; chunks with an empty delta are skipped. Iterate until Next
// returns false, then consult Err. Fragments already yielded before a
// mid-stream failure stand. A Stream is not restartable.
//
//	stream, err := client.ChatStream(input, nil)
//	if err != nil { ... }
//	defer stream.Close()
//	for stream.Next() {
//		fmt.Print(stream.Text())
//	}
//	if err := stream.Err(); err != nil { ... }
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	text    string
	err     error
	done    bool
}

func newStream(resp *http.Response) *Stream {
	return &Stream{
		body:    resp.Body,
		scanner: bufio.NewScanner(resp.Body),
	}
}

// Next advances to the next non-empty content fragment. It returns false
// when the provider signals completion, the stream ends, or reading fails.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			s.done = true
			return false
		}
		var chunk StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.text = chunk.Choices[0].Delta.Content
		return true
	}
	s.done = true
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("read stream: %w", err)
	}
	return false
}

// Text returns the fragment produced by the most recent successful Next.
func (s *Stream) Text() string { return s.text }

// Err returns the error that ended iteration, if any.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying response body. Safe to call at any point;
// Next returns false afterwards.
func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}
