package gemini

import (
	"fmt"
	"strings"

	"github.com/productadvisor/backend/internal/domain"
)

// generateRequest is the generateContent request envelope
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response we read
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// newGenerateRequest wraps a prompt in a single-part request
func newGenerateRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}

// extractText returns candidates[0].content.parts[0].text
func extractText(resp *generateResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: response has no candidates", domain.ErrParseError)
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content parts (finish reason %q)", domain.ErrParseError, resp.Candidates[0].FinishReason)
	}
	text := parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: candidate text is empty", domain.ErrParseError)
	}
	return text, nil
}
