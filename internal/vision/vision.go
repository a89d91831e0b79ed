package vision

import "context"

// SuggestionPrompt is the shared prompt used by all vision adapters.
const SuggestionPrompt = `This photo shows a single household item being cataloged for a personal
inventory. Identify it and respond with exactly one line in the format:
name | category | estimated resale value in dollars (number only) | short note
Pick the category from: Antiques, Books, Clothing, Electronics, Furniture,
Keepsakes, Tools, Miscellaneous.
Example: Brass table lamp | Furniture | 40 | Some tarnish on the base`

// Suggester proposes a draft catalog entry from a captured photo.
type Suggester interface {
	Suggest(ctx context.Context, photo []byte, mimeType string) (*Suggestion, error)
}

// Suggestion is a model-proposed prefill for the item form. It is advice,
// never written to the inventory directly.
type Suggestion struct {
	Name        string
	Category    string
	Value       float64
	Note        string
	RawResponse string
}
