// Package prompts provides the prompt strings pdfchat sends to the model.
package prompts

import "fmt"

// WithDocumentContext prefixes a user message with the extracted document
// text. The session applies this to the first user message of the outgoing
// conversation only, so the document is transmitted once per request.
func WithDocumentContext(docText, content string) string {
	return fmt.Sprintf("Context from PDF:\n%s\n\n%s", docText, content)
}
