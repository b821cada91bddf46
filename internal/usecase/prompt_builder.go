package usecase

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
)

// maxQueryLength bounds the query embedded in a prompt
const maxQueryLength = 500

const promptTemplate = `
You are an expert product advisor. A user is looking for products and has described their needs as: %q

Here is the available product catalog:
%s

Please analyze the user's query and recommend the top %d most suitable products. For each recommendation, provide:
1. The exact product ID from the catalog
2. A match score (0-100) indicating how well it fits their needs
3. Clear reasoning for why this product matches their requirements
4. 2-3 key pros specific to their needs
5. 1-2 potential cons or considerations

Format your response as a JSON array with this structure:
[
  {
    "productId": number,
    "matchScore": number,
    "reasoning": "string",
    "pros": ["string", "string"],
    "cons": ["string"]
  }
]

Focus on understanding the user's underlying needs, use case, and context. Consider factors like:
- Primary use case and functionality needed
- Budget considerations (if mentioned)
- User demographics (if implied)
- Quality vs price trade-offs
- Specific features mentioned

Provide only the JSON response, no additional text.
`

// NormalizeQuery collapses whitespace and bounds the length of a user query
func NormalizeQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) > maxQueryLength {
		normalized = normalized[:maxQueryLength]
		// cut at a word boundary when one is reasonably close
		if lastSpace := strings.LastIndex(normalized, " "); lastSpace > maxQueryLength/2 {
			normalized = normalized[:lastSpace]
		}
	}
	return normalized
}

// PromptBuilder renders the instruction sent to the text-generation service
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build embeds the query and the pretty-printed catalog in the instruction text
func (b *PromptBuilder) Build(query string, catalog []domain.Product) (string, error) {
	encoded, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode catalog: %w", err)
	}
	return fmt.Sprintf(promptTemplate, NormalizeQuery(query), encoded, maxRecommendations), nil
}
