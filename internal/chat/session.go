// Package chat manages the interactive PDF chat session.
package chat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tnglemongrass/pdfchat/internal/commands"
	"github.com/tnglemongrass/pdfchat/internal/config"
	"github.com/tnglemongrass/pdfchat/internal/models"
	"github.com/tnglemongrass/pdfchat/internal/pdf"
	"github.com/tnglemongrass/pdfchat/internal/perplexity"
	"github.com/tnglemongrass/pdfchat/internal/prompts"
	"github.com/tnglemongrass/pdfchat/internal/render"
)

// previewLimit is how many characters of extracted PDF text /pdf shows.
const previewLimit = 500

// InputReader reads a line of user input. Returns the line and any error
// (io.EOF on end of input).
type InputReader func(prompt string) (string, error)

// Session holds the state of one chat conversation: the ordered message
// history, the extracted document text, and the active model and system
// prompt. State is mutated only between turns; one request is outstanding
// at a time. Nothing survives the end of the session.
type Session struct {
	cfg      *config.Config
	client   *perplexity.Client
	renderer *render.Renderer
	cmdReg   *commands.Registry

	history []perplexity.Message
	docText string
	docName string
	writer  io.Writer
}

// NewSession creates a session from the given configuration. It fails when
// the client cannot be constructed, which includes a missing API key.
func NewSession(cfg *config.Config, w io.Writer) (*Session, error) {
	if w == nil {
		w = os.Stdout
	}
	r, err := render.NewRenderer(w)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	client, err := perplexity.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		client:   client,
		renderer: r,
		writer:   w,
	}

	reg := commands.NewRegistry()
	commands.RegisterDefaults(reg, commands.Callbacks{
		OnClear:  s.clearHistory,
		OnModel:  s.switchModel,
		OnSystem: s.systemPrompt,
		OnConfig: s.showConfig,
		OnLoad:   s.loadDocument,
		OnUnload: s.unloadDocument,
		OnPDF:    s.showDocument,
	})
	s.cmdReg = reg

	if cfg.PDFPath != "" {
		fmt.Fprintln(w, s.loadDocument(cfg.PDFPath))
	}

	return s, nil
}

// Run starts the main chat loop using the provided input reader.
func (s *Session) Run(readInput InputReader) error {
	for {
		input, err := readInput("pdfchat> ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if output, isCmd := s.cmdReg.Execute(input); isCmd {
			if output == commands.QuitSentinel {
				return nil
			}
			fmt.Fprintln(s.writer, output)
			continue
		}

		s.sendMessage(input)
	}
}

// Messages returns the current message history (read-only copy).
func (s *Session) Messages() []perplexity.Message {
	out := make([]perplexity.Message, len(s.history))
	copy(out, s.history)
	return out
}

// DocumentText returns the extracted text of the loaded PDF, if any.
func (s *Session) DocumentText() string {
	return s.docText
}

// outgoingMessages builds the conversation sent to the API: the session
// system prompt followed by a copy of the history. When a document is
// loaded, the first user message of the copy is rewritten to carry the
// document text; stored history is never touched.
func (s *Session) outgoingMessages() []perplexity.Message {
	msgs := make([]perplexity.Message, 0, len(s.history)+1)
	msgs = append(msgs, perplexity.Message{Role: perplexity.RoleSystem, Content: s.cfg.SystemPrompt})

	hist := make([]perplexity.Message, len(s.history))
	copy(hist, s.history)
	if s.docText != "" {
		for i := range hist {
			if hist[i].Role == perplexity.RoleUser {
				hist[i].Content = prompts.WithDocumentContext(s.docText, hist[i].Content)
				break
			}
		}
	}
	return append(msgs, hist...)
}

// sendMessage runs one turn. Errors never abort the session: whatever the
// request produced before failing is kept and a single "[Error: ...]"
// fragment is appended to the assistant reply.
func (s *Session) sendMessage(input string) {
	s.history = append(s.history, perplexity.Message{Role: perplexity.RoleUser, Content: input})

	opts := &perplexity.ChatOptions{
		Model:    s.cfg.Model,
		Messages: s.outgoingMessages(),
	}

	var reply string
	if s.cfg.Stream {
		reply = s.streamTurn(opts)
	} else {
		content, err := s.client.Chat("", opts)
		if err != nil {
			reply = errorFragment(err)
			fmt.Fprintln(s.writer, reply)
		} else {
			reply = content
			if err := s.renderer.Render(content); err != nil {
				fmt.Fprintf(s.writer, "\nRender error: %v\n", err)
			}
		}
	}

	s.history = append(s.history, perplexity.Message{Role: perplexity.RoleAssistant, Content: reply})
}

func (s *Session) streamTurn(opts *perplexity.ChatOptions) string {
	stream, err := s.client.ChatStream("", opts)
	if err != nil {
		frag := errorFragment(err)
		fmt.Fprintln(s.writer, frag)
		return frag
	}
	defer stream.Close()

	var reply strings.Builder
	var acc string
	for stream.Next() {
		reply.WriteString(stream.Text())
		var renderErr error
		acc, renderErr = s.renderer.RenderStream(acc, stream.Text(), false)
		if renderErr != nil {
			fmt.Fprintf(s.writer, "\nRender error: %v\n", renderErr)
		}
	}
	if err := stream.Err(); err != nil {
		frag := errorFragment(err)
		reply.WriteString(frag)
		acc += frag
	}
	if acc != "" {
		if _, renderErr := s.renderer.RenderStream(acc, "", true); renderErr != nil {
			fmt.Fprintf(s.writer, "\nRender error: %v\n", renderErr)
		}
	}
	return reply.String()
}

func errorFragment(err error) string {
	return fmt.Sprintf("[Error: %v]", err)
}

func (s *Session) clearHistory() {
	s.history = nil
}

func (s *Session) switchModel(args string) string {
	if args == "" {
		var sb strings.Builder
		sb.WriteString("Available models:\n")
		for _, m := range models.List() {
			marker := "  "
			if m.ID == s.cfg.Model {
				marker = "* "
			}
			sb.WriteString(fmt.Sprintf("%s%s - %s\n", marker, m.ID, m.Description))
		}
		return sb.String()
	}
	if !models.Has(args) {
		return fmt.Sprintf("Unknown model: %s. Use /model to list available models.", args)
	}
	s.cfg.Model = args
	s.client.Model = args
	return fmt.Sprintf("Switched to model: %s", args)
}

func (s *Session) systemPrompt(args string) string {
	if args == "" {
		return s.cfg.SystemPrompt
	}
	s.cfg.SystemPrompt = args
	return fmt.Sprintf("System prompt set to: %s", args)
}

func (s *Session) showConfig() string {
	doc := "none"
	if s.docName != "" {
		doc = fmt.Sprintf("%s (%d characters)", s.docName, len(s.docText))
	}
	return fmt.Sprintf("Model: %s\nAPI Base: %s\nStream: %v\nSystem Prompt: %s\nDocument: %s",
		s.cfg.Model, s.cfg.BaseURL, s.cfg.Stream, s.cfg.SystemPrompt, doc)
}

func (s *Session) loadDocument(args string) string {
	if args == "" {
		return "Usage: /load <file.pdf>"
	}
	text, err := pdf.ExtractFile(args)
	if err != nil {
		return fmt.Sprintf("Error reading %s: %v", args, err)
	}
	s.docText = text
	s.docName = args
	if text == "" {
		return fmt.Sprintf("Loaded %s, but no text could be extracted.", args)
	}
	return fmt.Sprintf("Loaded %s (%d characters of text).", args, len(text))
}

func (s *Session) unloadDocument() string {
	if s.docName == "" {
		return "No document loaded."
	}
	name := s.docName
	s.docText = ""
	s.docName = ""
	return fmt.Sprintf("Removed %s from context.", name)
}

func (s *Session) showDocument() string {
	if s.docText == "" {
		return "No PDF loaded yet."
	}
	return pdf.Preview(s.docText, previewLimit)
}
