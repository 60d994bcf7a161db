package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"regolamento-rag/internal/models"
)

type fakeRetriever struct {
	hit *models.Hit
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string) (*models.Hit, error) {
	return f.hit, nil
}

type fakeComposer struct {
	called      bool
	gotQuestion string
	gotContext  string
}

func (f *fakeComposer) Compose(ctx context.Context, question, contextText string) string {
	f.called = true
	f.gotQuestion = question
	f.gotContext = contextText
	return "risposta generata"
}

func TestAskGroundsAnswerOnRetrievedArticle(t *testing.T) {
	composer := &fakeComposer{}
	svc := New(&fakeRetriever{hit: &models.Hit{
		ID:      "Regolamento Didattico 2",
		Title:   "ARTICOLO 2 Obblighi formativi",
		Content: "corpo articolo",
		Score:   0.9,
	}}, composer)

	response := svc.Ask(context.Background(), "quali obblighi?")

	assert.Equal(t, "quali obblighi?", response.Query)
	assert.Equal(t, "ARTICOLO 2 Obblighi formativi", response.Source)
	assert.Equal(t, "risposta generata", response.Content)
	assert.Equal(t, "corpo articolo", composer.gotContext)
}

func TestAskWithoutDocumentsSkipsGeneration(t *testing.T) {
	composer := &fakeComposer{}
	svc := New(&fakeRetriever{hit: nil}, composer)

	response := svc.Ask(context.Background(), "domanda")

	assert.Equal(t, models.NoDocumentsAnswer, response.Content)
	assert.Empty(t, response.Source)
	assert.False(t, composer.called)
}
