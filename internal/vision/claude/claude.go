package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/Rockhound-GO/Attic-Inventory/internal/vision"
)

// Suggester asks the Anthropic Messages API to identify a photographed item.
type Suggester struct {
	client *anthropic.Client
	model  string
}

func NewSuggester(apiKey, model string) *Suggester {
	return &Suggester{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (s *Suggester) Suggest(ctx context.Context, photo []byte, mimeType string) (*vision.Suggestion, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(s.model),
		// A suggestion is a single line; 256 tokens leaves room for a
		// chatty model.
		MaxTokens: 256,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(
							anthropic.MessagesContentSourceTypeBase64,
							normaliseMIME(mimeType),
							photo,
						),
					),
					anthropic.NewTextMessageContent(vision.SuggestionPrompt),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	text := resp.GetFirstContentText()
	suggestion := vision.ParseSuggestion(text)
	if suggestion == nil {
		return nil, fmt.Errorf("no usable suggestion in response: %q", text)
	}
	return suggestion, nil
}

// normaliseMIME maps MIME types to the values the Anthropic API accepts.
// Unknown types are coerced to jpeg as the most universally supported lossy
// fallback.
func normaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
