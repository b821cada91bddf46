package usecase

import (
	"context"
	"fmt"

	"github.com/productadvisor/backend/internal/domain"
)

// RemoteRecommender implements domain.RecommendationClient on top of a text generator.
// Any failure is returned as a single error; callers decide whether to fall back.
type RemoteRecommender struct {
	generator domain.TextGenerator
	parser    domain.ResponseParser
	prompts   *PromptBuilder
}

// NewRemoteRecommender wires a generator and parser. A nil parser means JSONArrayParser.
func NewRemoteRecommender(generator domain.TextGenerator, parser domain.ResponseParser) *RemoteRecommender {
	if parser == nil {
		parser = NewJSONArrayParser()
	}
	return &RemoteRecommender{
		generator: generator,
		parser:    parser,
		prompts:   NewPromptBuilder(),
	}
}

// FetchRecommendations builds the prompt, calls the generator and parses its answer
func (r *RemoteRecommender) FetchRecommendations(
	ctx context.Context,
	query string,
	catalog []domain.Product,
) ([]domain.Recommendation, error) {
	if r.generator == nil {
		return nil, domain.ErrRemoteUnavailable
	}

	prompt, err := r.prompts.Build(query, catalog)
	if err != nil {
		return nil, err
	}

	text, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	recs, err := r.parser.Parse(text, catalog)
	if err != nil {
		return nil, fmt.Errorf("parse generation: %w", err)
	}
	return recs, nil
}
