// Package models defines the catalog of Perplexity models pdfchat can use.
package models

// Model describes one catalog entry.
type Model struct {
	ID          string
	Description string
}

// Catalog is the fixed list of selectable models. Perplexity exposes no
// OpenAI-compatible model listing endpoint, so the catalog is maintained
// here from the published model documentation.
var Catalog = []Model{
	{ID: "sonar-pro", Description: "Advanced search model with grounding"},
	{ID: "sonar", Description: "Lightweight, cost-effective search model"},
	{ID: "sonar-deep-research", Description: "Expert-level research model"},
	{ID: "r1-1776", Description: "Offline DeepSeek R1 variant"},
}

// Default returns the model used when none is configured.
func Default() string { return "sonar" }

// Has reports whether id names a catalog model.
func Has(id string) bool {
	for _, m := range Catalog {
		if m.ID == id {
			return true
		}
	}
	return false
}

// List returns a copy of the catalog.
func List() []Model {
	out := make([]Model, len(Catalog))
	copy(out, Catalog)
	return out
}
