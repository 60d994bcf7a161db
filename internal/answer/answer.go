// Package answer turns a question and a retrieved article into a generated
// answer via an OpenAI-compatible completions endpoint.
package answer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"regolamento-rag/internal/config"
	"regolamento-rag/internal/models"
)

type Composer struct {
	client *openai.Client
	model  string
}

// NewComposer builds a composer for the configured completions endpoint,
// typically a local ollama server's /v1 API.
func NewComposer(llmConfig *config.LLMConfig) *Composer {
	clientConfig := openai.DefaultConfig(llmConfig.Key)
	if llmConfig.BaseURL != "" {
		clientConfig.BaseURL = llmConfig.BaseURL
	}
	return &Composer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  llmConfig.Model,
	}
}

// Compose embeds the question and the article body in a fixed prompt and
// returns the first completion's text. The caller always receives a
// printable string; any failure collapses to a fixed sentence.
func (c *Composer) Compose(ctx context.Context, question, contextText string) string {
	prompt := fmt.Sprintf(models.AnswerPromptTemplate, question, contextText)

	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:  c.model,
		Prompt: prompt,
	})
	if err != nil {
		log.Warn().Err(err).Msg("completion request failed")
		return models.GenerationFailedAnswer
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Text == "" {
		log.Warn().Msg("no answer text in completion response")
		return models.GenerationFailedAnswer
	}
	return resp.Choices[0].Text
}
