package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Rockhound-GO/Attic-Inventory/internal/vision"
)

// Suggester asks a local Ollama model to identify a photographed item.
type Suggester struct {
	host   string
	model  string
	client *http.Client
}

func NewSuggester(host, model string) *Suggester {
	return &Suggester{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (s *Suggester) Suggest(ctx context.Context, photo []byte, mimeType string) (*vision.Suggestion, error) {
	reqBody := map[string]interface{}{
		"model":  s.model,
		"prompt": vision.SuggestionPrompt,
		"images": []string{base64.StdEncoding.EncodeToString(photo)},
		"stream": false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	suggestion := vision.ParseSuggestion(respBody.Response)
	if suggestion == nil {
		return nil, fmt.Errorf("no usable suggestion in response: %q", respBody.Response)
	}
	return suggestion, nil
}
