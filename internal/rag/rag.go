// Package rag ties retrieval and answer generation into the question
// answering service.
package rag

import (
	"context"

	"regolamento-rag/internal/models"
)

type Retriever interface {
	Retrieve(ctx context.Context, question string) (*models.Hit, error)
}

type Composer interface {
	Compose(ctx context.Context, question, contextText string) string
}

type RAG struct {
	retriever Retriever
	composer  Composer
}

func New(retriever Retriever, composer Composer) *RAG {
	return &RAG{retriever: retriever, composer: composer}
}

// Ask retrieves the best-matching article and generates a grounded answer.
// When retrieval comes back empty the generator is not called at all and the
// fixed no-documents sentence is returned.
func (r *RAG) Ask(ctx context.Context, question string) models.PromptResponse {
	response := models.PromptResponse{Query: question}

	hit, err := r.retriever.Retrieve(ctx, question)
	if err != nil || hit == nil {
		response.Content = models.NoDocumentsAnswer
		return response
	}

	response.Source = hit.Title
	response.Content = r.composer.Compose(ctx, question, hit.Content)
	return response
}
