// Package commands provides slash command handling for the chat session.
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// QuitSentinel is returned by quit commands to signal the session loop to end.
const QuitSentinel = "__QUIT__"

// Handler handles a slash command. It receives the arguments after the
// command name and returns output text.
type Handler func(args string) string

// Registry holds all registered slash commands.
type Registry struct {
	commands map[string]entry
}

type entry struct {
	handler     Handler
	description string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]entry)}
}

// Register adds a command to the registry.
func (r *Registry) Register(name, description string, handler Handler) {
	r.commands[name] = entry{handler: handler, description: description}
}

// Execute runs a slash command. Returns the command output and whether the
// input was a command at all.
func (r *Registry) Execute(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	name, args, _ := strings.Cut(input[1:], " ")
	args = strings.TrimSpace(args)

	e, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Type /help for available commands.", name), true
	}
	return e.handler(args), true
}

// IsCommand reports whether the input starts with a slash command prefix.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Callbacks holds the session hooks behind the default commands.
type Callbacks struct {
	OnClear  func()
	OnModel  func(args string) string
	OnSystem func(args string) string
	OnConfig func() string
	OnLoad   func(args string) string
	OnUnload func() string
	OnPDF    func() string
}

// RegisterDefaults registers the standard set of slash commands.
func RegisterDefaults(r *Registry, callbacks Callbacks) {
	r.Register("help", "Show available commands", func(_ string) string {
		return r.helpText()
	})
	r.Register("quit", "Exit the application", func(_ string) string {
		return QuitSentinel
	})
	r.Register("exit", "Exit the application", func(_ string) string {
		return QuitSentinel
	})
	r.Register("clear", "Clear chat history", func(_ string) string {
		if callbacks.OnClear != nil {
			callbacks.OnClear()
		}
		return "Chat history cleared."
	})
	r.Register("model", "Switch model or list available", func(args string) string {
		if callbacks.OnModel != nil {
			return callbacks.OnModel(args)
		}
		return "Model switching not configured."
	})
	r.Register("system", "Show or set the system prompt", func(args string) string {
		if callbacks.OnSystem != nil {
			return callbacks.OnSystem(args)
		}
		return "System prompt management not configured."
	})
	r.Register("config", "Show current configuration", func(_ string) string {
		if callbacks.OnConfig != nil {
			return callbacks.OnConfig()
		}
		return "Configuration display not configured."
	})
	r.Register("load", "Load a PDF into the chat context", func(args string) string {
		if callbacks.OnLoad != nil {
			return callbacks.OnLoad(args)
		}
		return "Document loading not configured."
	})
	r.Register("unload", "Remove the loaded PDF from context", func(_ string) string {
		if callbacks.OnUnload != nil {
			return callbacks.OnUnload()
		}
		return "Document loading not configured."
	})
	r.Register("pdf", "Show a preview of the extracted PDF text", func(_ string) string {
		if callbacks.OnPDF != nil {
			return callbacks.OnPDF()
		}
		return "Document loading not configured."
	})
}

func (r *Registry) helpText() string {
	var names []string
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  /%s - %s\n", name, r.commands[name].description))
	}
	return sb.String()
}
