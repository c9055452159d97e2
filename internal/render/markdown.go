// Package render provides markdown rendering for terminal output.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders assistant markdown to the terminal.
type Renderer struct {
	gr     *glamour.TermRenderer
	writer io.Writer
}

// NewRenderer creates a Renderer writing to w. If w is nil, os.Stdout is used.
func NewRenderer(w io.Writer) (*Renderer, error) {
	if w == nil {
		w = os.Stdout
	}
	gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("create glamour renderer: %w", err)
	}
	return &Renderer{gr: gr, writer: w}, nil
}

// Render renders a complete markdown string to the writer.
func (r *Renderer) Render(markdown string) error {
	out, err := r.gr.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(r.writer, out)
	return err
}

// RenderStream progressively renders streamed content. Fragments accumulate
// until a block boundary (a blank line or the end of a fenced code block)
// or until flush is true, at which point the accumulated text is rendered
// and the returned accumulator is reset to empty.
func (r *Renderer) RenderStream(accumulated string, fragment string, flush bool) (string, error) {
	accumulated += fragment
	if accumulated == "" {
		return "", nil
	}
	if flush || strings.Contains(fragment, "\n\n") || strings.HasSuffix(accumulated, "```\n") {
		if err := r.Render(accumulated); err != nil {
			return "", err
		}
		return "", nil
	}
	return accumulated, nil
}
